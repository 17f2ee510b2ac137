package repository

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-api/internal/domain/entity"
	domainRepo "clinic-appointment-api/internal/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const prescriptionCollection = "prescriptions"

type prescriptionRepository struct {
	coll *mongo.Collection
}

func NewPrescriptionRepository(db *mongo.Database) domainRepo.PrescriptionRepository {
	return &prescriptionRepository{coll: db.Collection(prescriptionCollection)}
}

func (r *prescriptionRepository) Insert(ctx context.Context, prescription *entity.Prescription) error {
	if prescription.CreatedAt.IsZero() {
		prescription.CreatedAt = time.Now().UTC()
	}

	result, err := r.coll.InsertOne(ctx, prescription)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		prescription.ID = oid
	}
	return nil
}

func (r *prescriptionRepository) FindByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := r.coll.FindOne(ctx, bson.M{"appointment_id": appointmentID.String()}).Decode(&prescription)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}
