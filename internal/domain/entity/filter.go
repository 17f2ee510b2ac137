package entity

// DoctorFilter is a domain-level filter for doctor searches.
// Zero-value fields are ignored; the repository applies the name/specialty
// axes and the usecase applies the half-day axis in memory.
type DoctorFilter struct {
	Name      string // substring match, case-insensitive
	Specialty string // exact match, case-insensitive
	Period    string // "AM" or "PM"; any template slot in that half-day keeps the doctor
}

// AppointmentFilter narrows a patient's appointment listing.
type AppointmentFilter struct {
	Condition  string // "past" (completed) or "future" (scheduled)
	DoctorName string // substring match on the doctor's name, case-insensitive
}

// ConditionStatus maps a condition bucket to its appointment status.
// The second return is false for anything but "past" and "future".
func ConditionStatus(condition string) (AppointmentStatus, bool) {
	switch condition {
	case "future":
		return StatusScheduled, true
	case "past":
		return StatusCompleted, true
	default:
		return 0, false
	}
}
