package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prescription is the document a doctor writes against a completed visit.
// Prescriptions live in MongoDB, one per appointment. AppointmentID is the
// relational appointment's UUID in string form.
type Prescription struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppointmentID string             `bson:"appointment_id" json:"appointment_id"`
	PatientName   string             `bson:"patient_name" json:"patient_name"`
	Medication    string             `bson:"medication" json:"medication"`
	Dosage        string             `bson:"dosage" json:"dosage"`
	DoctorNotes   string             `bson:"doctor_notes,omitempty" json:"doctor_notes,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
