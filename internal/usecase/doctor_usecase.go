package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"clinic-appointment-api/internal/converter"
	"clinic-appointment-api/internal/delivery/dto"
	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"
	"clinic-appointment-api/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorEmailExists = errors.New("a doctor with this email already exists")
	ErrInvalidPeriod     = errors.New("period must be AM or PM")
)

// DoctorTemplateStore serves a doctor's declared slot template, possibly
// from a cache in front of the doctors table.
type DoctorTemplateStore interface {
	AvailableTimes(ctx context.Context, doctorID uuid.UUID) ([]string, error)
	Invalidate(ctx context.Context, doctorID uuid.UUID)
}

type DoctorUsecase interface {
	GetAvailability(ctx context.Context, doctorID uuid.UUID, date time.Time) (*dto.AvailabilityResponse, error)
	QueryDoctors(ctx context.Context, filter entity.DoctorFilter) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, id uuid.UUID) error
}

type doctorUsecase struct {
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	templates       DoctorTemplateStore
	hashPassword    func(string) (string, error)
}

func NewDoctorUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	templates DoctorTemplateStore,
	hashPassword func(string) (string, error),
) DoctorUsecase {
	return &doctorUsecase{
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		templates:       templates,
		hashPassword:    hashPassword,
	}
}

// GetAvailability returns the doctor's template slots that are not booked on
// the given date, in canonical form and ascending order. An unknown doctor
// or an empty template yields an empty slot list rather than an error.
func (u *doctorUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID, date time.Time) (*dto.AvailabilityResponse, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	response := &dto.AvailabilityResponse{
		DoctorID:       doctorID,
		Date:           day.Format("2006-01-02"),
		AvailableSlots: []string{},
	}

	template, err := u.templates.AvailableTimes(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to load slot template for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if len(template) == 0 {
		return response, nil
	}

	appointments, err := u.appointmentRepo.FindByDoctorBetween(ctx, doctorID, day, day.Add(24*time.Hour), "")
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	booked := make(map[string]struct{}, len(appointments))
	for _, appointment := range appointments {
		booked[timeslot.FromTime(appointment.AppointmentTime).String()] = struct{}{}
	}

	free := make([]timeslot.Slot, 0, len(template))
	for _, raw := range template {
		slot := timeslot.Normalize(raw)
		if _, taken := booked[slot.String()]; !taken {
			free = append(free, slot)
		}
	}
	sort.Slice(free, func(i, j int) bool {
		return free[i].Compare(free[j]) < 0
	})

	for _, slot := range free {
		response.AvailableSlots = append(response.AvailableSlots, slot.String())
	}
	return response, nil
}

// QueryDoctors narrows doctors by name, specialty, and time-of-day period.
// Name and specialty are pushed down to the repository; the period axis is
// applied in memory because it depends on slot normalization. A doctor
// passes the period axis when any template slot falls in that half of the
// day.
func (u *doctorUsecase) QueryDoctors(ctx context.Context, filter entity.DoctorFilter) (*dto.DoctorListResponse, error) {
	period := timeslot.Period(strings.ToUpper(strings.TrimSpace(filter.Period)))
	if period != timeslot.PeriodUnknown && period != timeslot.PeriodMorning && period != timeslot.PeriodAfternoon {
		return nil, ErrInvalidPeriod
	}

	var doctors []entity.Doctor
	var err error
	if filter.Name == "" && filter.Specialty == "" {
		doctors, err = u.doctorRepo.FindAll(ctx)
	} else {
		doctors, err = u.doctorRepo.FindByFilter(ctx, filter)
	}
	if err != nil {
		u.log.Warnf("Failed to query doctors: %+v", err)
		return nil, err
	}

	if period != timeslot.PeriodUnknown {
		matched := doctors[:0]
		for _, doctor := range doctors {
			if anySlotInPeriod(doctor.AvailableTimes, period) {
				matched = append(matched, doctor)
			}
		}
		doctors = matched
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func anySlotInPeriod(template []string, period timeslot.Period) bool {
	for _, raw := range template {
		if timeslot.Normalize(raw).Period() == period {
			return true
		}
	}
	return false
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to look up doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	existing, err := u.doctorRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed doctor uniqueness check for %s: %+v", req.Email, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDoctorEmailExists
	}

	hashedPassword, err := u.hashPassword(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	doctor := &entity.Doctor{
		Name:           req.Name,
		Specialty:      req.Specialty,
		Email:          req.Email,
		Password:       hashedPassword,
		Phone:          req.Phone,
		AvailableTimes: req.AvailableTimes,
	}

	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDoctorEmailExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to look up doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialty != nil {
		doctor.Specialty = *req.Specialty
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.AvailableTimes != nil {
		doctor.AvailableTimes = *req.AvailableTimes
	}

	if err := u.doctorRepo.Update(ctx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor %s: %+v", id, err)
		return nil, err
	}

	u.templates.Invalidate(ctx, id)
	return converter.DoctorToResponse(doctor), nil
}

// DeleteDoctor removes the doctor together with all their appointments.
func (u *doctorUsecase) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to look up doctor %s: %+v", id, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	if err := u.doctorRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete doctor %s: %+v", id, err)
		return err
	}

	u.templates.Invalidate(ctx, id)
	return nil
}
