package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"clinic-appointment-api/internal/domain/entity"
	"clinic-appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// stubAppointmentRepo mimics the Postgres repository in memory, including
// the atomic window check in CreateIfSlotFree and UpdateIfSlotFree.
type stubAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*entity.Appointment
	doctors      *stubDoctorRepo
	patients     *stubPatientRepo
}

func newStubAppointmentRepo(doctors *stubDoctorRepo, patients *stubPatientRepo) *stubAppointmentRepo {
	return &stubAppointmentRepo{
		appointments: make(map[uuid.UUID]*entity.Appointment),
		doctors:      doctors,
		patients:     patients,
	}
}

// windowTaken mirrors the Postgres predicate: two one-hour occupancy windows
// overlap exactly when their starts are less than an hour apart.
func (s *stubAppointmentRepo) windowTaken(doctorID uuid.UUID, at time.Time, exclude uuid.UUID) bool {
	lower := at.Add(-time.Hour)
	upper := at.Add(time.Hour)
	for _, a := range s.appointments {
		if a.ID == exclude {
			continue
		}
		if a.DoctorID == doctorID && a.Status == entity.StatusScheduled &&
			a.AppointmentTime.After(lower) && a.AppointmentTime.Before(upper) {
			return true
		}
	}
	return false
}

func (s *stubAppointmentRepo) CreateIfSlotFree(ctx context.Context, appointment *entity.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.windowTaken(appointment.DoctorID, appointment.AppointmentTime, uuid.Nil) {
		return repository.ErrSlotTaken
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	stored := *appointment
	s.appointments[appointment.ID] = &stored
	return nil
}

func (s *stubAppointmentRepo) UpdateIfSlotFree(ctx context.Context, appointment *entity.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.windowTaken(appointment.DoctorID, appointment.AppointmentTime, appointment.ID) {
		return repository.ErrSlotTaken
	}
	stored := *appointment
	s.appointments[appointment.ID] = &stored
	return nil
}

func (s *stubAppointmentRepo) Update(ctx context.Context, appointment *entity.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *appointment
	s.appointments[appointment.ID] = &stored
	return nil
}

func (s *stubAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appointment, ok := s.appointments[id]
	if !ok {
		return nil, nil
	}
	found := *appointment
	if s.doctors != nil {
		if doctor, _ := s.doctors.FindByID(ctx, found.DoctorID); doctor != nil {
			found.Doctor = *doctor
		}
	}
	if s.patients != nil {
		if patient, _ := s.patients.FindByID(ctx, found.PatientID); patient != nil {
			found.Patient = *patient
		}
	}
	return &found, nil
}

func (s *stubAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.appointments, id)
	return nil
}

func (s *stubAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if appointment, ok := s.appointments[id]; ok {
		appointment.Status = status
	}
	return nil
}

func (s *stubAppointmentRepo) FindByDoctorBetween(ctx context.Context, doctorID uuid.UUID, start, end time.Time, patientName string) ([]entity.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []entity.Appointment
	for _, a := range s.appointments {
		if a.DoctorID != doctorID || a.AppointmentTime.Before(start) || !a.AppointmentTime.Before(end) {
			continue
		}
		found := *a
		if s.patients != nil {
			if patient, _ := s.patients.FindByID(ctx, found.PatientID); patient != nil {
				found.Patient = *patient
			}
		}
		if patientName != "" && !strings.Contains(strings.ToLower(found.Patient.Name), strings.ToLower(patientName)) {
			continue
		}
		result = append(result, found)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AppointmentTime.Before(result[j].AppointmentTime)
	})
	return result, nil
}

func (s *stubAppointmentRepo) FindByPatient(ctx context.Context, patientID uuid.UUID, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, filterStatus := entity.ConditionStatus(filter.Condition)
	var result []entity.Appointment
	for _, a := range s.appointments {
		if a.PatientID != patientID {
			continue
		}
		if filterStatus && a.Status != status {
			continue
		}
		found := *a
		if s.doctors != nil {
			if doctor, _ := s.doctors.FindByID(ctx, found.DoctorID); doctor != nil {
				found.Doctor = *doctor
			}
		}
		if filter.DoctorName != "" && !strings.Contains(strings.ToLower(found.Doctor.Name), strings.ToLower(filter.DoctorName)) {
			continue
		}
		result = append(result, found)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AppointmentTime.Before(result[j].AppointmentTime)
	})
	return result, nil
}

type stubDoctorRepo struct {
	mu      sync.Mutex
	doctors map[uuid.UUID]*entity.Doctor
}

func newStubDoctorRepo() *stubDoctorRepo {
	return &stubDoctorRepo{doctors: make(map[uuid.UUID]*entity.Doctor)}
}

func (s *stubDoctorRepo) Create(ctx context.Context, doctor *entity.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	stored := *doctor
	s.doctors[doctor.ID] = &stored
	return nil
}

func (s *stubDoctorRepo) Update(ctx context.Context, doctor *entity.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *doctor
	s.doctors[doctor.ID] = &stored
	return nil
}

func (s *stubDoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.doctors, id)
	return nil
}

func (s *stubDoctorRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doctor, ok := s.doctors[id]
	if !ok {
		return nil, nil
	}
	found := *doctor
	return &found, nil
}

func (s *stubDoctorRepo) FindByEmail(ctx context.Context, email string) (*entity.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doctor := range s.doctors {
		if doctor.Email == email {
			found := *doctor
			return &found, nil
		}
	}
	return nil, nil
}

func (s *stubDoctorRepo) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	return s.FindByFilter(ctx, entity.DoctorFilter{})
}

func (s *stubDoctorRepo) FindByFilter(ctx context.Context, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []entity.Doctor
	for _, doctor := range s.doctors {
		if filter.Name != "" && !strings.Contains(strings.ToLower(doctor.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Specialty != "" && !strings.EqualFold(doctor.Specialty, filter.Specialty) {
			continue
		}
		result = append(result, *doctor)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

type stubPatientRepo struct {
	mu       sync.Mutex
	patients map[uuid.UUID]*entity.Patient
}

func newStubPatientRepo() *stubPatientRepo {
	return &stubPatientRepo{patients: make(map[uuid.UUID]*entity.Patient)}
}

func (s *stubPatientRepo) Create(ctx context.Context, patient *entity.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	stored := *patient
	s.patients[patient.ID] = &stored
	return nil
}

func (s *stubPatientRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	patient, ok := s.patients[id]
	if !ok {
		return nil, nil
	}
	found := *patient
	return &found, nil
}

func (s *stubPatientRepo) FindByEmail(ctx context.Context, email string) (*entity.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, patient := range s.patients {
		if patient.Email == email {
			found := *patient
			return &found, nil
		}
	}
	return nil, nil
}

func (s *stubPatientRepo) FindByEmailOrPhone(ctx context.Context, email, phone string) (*entity.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, patient := range s.patients {
		if patient.Email == email || patient.Phone == phone {
			found := *patient
			return &found, nil
		}
	}
	return nil, nil
}

func (s *stubPatientRepo) remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.patients, id)
}

type stubAdminRepo struct {
	admins map[string]*entity.Admin
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*entity.Admin)}
}

func (s *stubAdminRepo) FindByUsername(ctx context.Context, username string) (*entity.Admin, error) {
	admin, ok := s.admins[username]
	if !ok {
		return nil, nil
	}
	found := *admin
	return &found, nil
}

type stubPrescriptionRepo struct {
	mu            sync.Mutex
	prescriptions map[string]*entity.Prescription
}

func newStubPrescriptionRepo() *stubPrescriptionRepo {
	return &stubPrescriptionRepo{prescriptions: make(map[string]*entity.Prescription)}
}

func (s *stubPrescriptionRepo) Insert(ctx context.Context, prescription *entity.Prescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prescription.ID.IsZero() {
		prescription.ID = primitive.NewObjectID()
	}
	if prescription.CreatedAt.IsZero() {
		prescription.CreatedAt = time.Now()
	}
	stored := *prescription
	s.prescriptions[prescription.AppointmentID] = &stored
	return nil
}

func (s *stubPrescriptionRepo) FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*entity.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prescription, ok := s.prescriptions[appointmentID.String()]
	if !ok {
		return nil, nil
	}
	found := *prescription
	return &found, nil
}

// stubTemplateStore stands in for the Redis-backed template cache.
type stubTemplateStore struct {
	templates   map[uuid.UUID][]string
	invalidated []uuid.UUID
}

func newStubTemplateStore() *stubTemplateStore {
	return &stubTemplateStore{templates: make(map[uuid.UUID][]string)}
}

func (s *stubTemplateStore) AvailableTimes(ctx context.Context, doctorID uuid.UUID) ([]string, error) {
	return s.templates[doctorID], nil
}

func (s *stubTemplateStore) Invalidate(ctx context.Context, doctorID uuid.UUID) {
	s.invalidated = append(s.invalidated, doctorID)
}

func plainHash(plain string) (string, error) {
	return "hashed:" + plain, nil
}
