package repository

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-api/internal/domain/entity"
	domainRepo "clinic-appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// CreateIfSlotFree inserts the appointment only if no scheduled appointment
// for the same doctor occupies an hour window overlapping the new one. The
// check and the insert share one transaction holding a row lock on the
// doctor, so two concurrent bookings for the same window serialize; the
// exclusion constraint on (doctor_id, occupancy window) backstops anything
// that slips past.
func (r *appointmentRepository) CreateIfSlotFree(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDoctorRow(tx, appointment.DoctorID); err != nil {
			return err
		}
		if err := checkWindowFree(tx, appointment.DoctorID, appointment.AppointmentTime, uuid.Nil); err != nil {
			return err
		}
		return translateConflict(tx.Create(appointment).Error)
	})
}

// UpdateIfSlotFree persists the merged record with the same window guard as
// CreateIfSlotFree, against the (possibly new) target doctor. The record's
// own row is excluded so a sub-hour move never conflicts with itself.
func (r *appointmentRepository) UpdateIfSlotFree(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDoctorRow(tx, appointment.DoctorID); err != nil {
			return err
		}
		if err := checkWindowFree(tx, appointment.DoctorID, appointment.AppointmentTime, appointment.ID); err != nil {
			return err
		}
		return translateConflict(tx.Save(appointment).Error)
	})
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	return translateConflict(r.db.WithContext(ctx).Save(appointment).Error)
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").Preload("Patient").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Appointment{}, "id = ?", id).Error
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) error {
	return r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *appointmentRepository) FindByDoctorBetween(ctx context.Context, doctorID uuid.UUID, start, end time.Time, patientName string) ([]entity.Appointment, error) {
	q := r.db.WithContext(ctx).
		Preload("Doctor").Preload("Patient").
		Where("appointments.doctor_id = ? AND appointments.appointment_time >= ? AND appointments.appointment_time < ?",
			doctorID, start, end)

	if patientName != "" {
		q = q.Joins("JOIN patients ON patients.id = appointments.patient_id").
			Where("patients.name ILIKE ?", "%"+patientName+"%")
	}

	var appointments []entity.Appointment
	err := q.Order("appointments.appointment_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatient(ctx context.Context, patientID uuid.UUID, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	q := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("appointments.patient_id = ?", patientID)

	if status, ok := entity.ConditionStatus(filter.Condition); ok {
		q = q.Where("appointments.status = ?", status)
	}
	if filter.DoctorName != "" {
		q = q.Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
			Where("doctors.name ILIKE ?", "%"+filter.DoctorName+"%")
	}

	var appointments []entity.Appointment
	err := q.Order("appointments.appointment_time ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// lockDoctorRow takes a FOR UPDATE lock on the doctor so concurrent window
// checks for the same doctor serialize.
func lockDoctorRow(tx *gorm.DB, doctorID uuid.UUID) error {
	var doctor entity.Doctor
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Take(&doctor, "id = ?", doctorID).Error
}

// checkWindowFree rejects the instant when any scheduled appointment for the
// doctor starts within the open interval (at-1h, at+1h): two one-hour
// occupancy windows overlap exactly when their starts are less than an hour
// apart. The exclude id skips the row being rescheduled.
func checkWindowFree(tx *gorm.DB, doctorID uuid.UUID, at time.Time, exclude uuid.UUID) error {
	q := tx.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND status = ? AND appointment_time > ? AND appointment_time < ?",
			doctorID, entity.StatusScheduled, at.Add(-time.Hour), at.Add(time.Hour))
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domainRepo.ErrSlotTaken
	}
	return nil
}

// translateConflict maps the occupancy-window exclusion constraint (and the
// exact-instant unique index) to ErrSlotTaken so the database-level backstop
// surfaces like the application-level check.
func translateConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23P01" || pgErr.Code == "23505" {
			return domainRepo.ErrSlotTaken
		}
	}
	return err
}
