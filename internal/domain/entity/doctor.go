package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor carries the profile plus the recurring daily slot template: an
// ordered set of time-of-day strings (e.g. "09:00") offered every day, not
// date-specific bookings.
type Doctor struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null;index" json:"name"`
	Specialty      string    `gorm:"type:varchar(50);not null;index" json:"specialty"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"type:text;not null" json:"-"`
	Phone          string    `gorm:"type:varchar(20);not null" json:"phone"`
	AvailableTimes []string  `gorm:"serializer:json;type:jsonb" json:"available_times"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
