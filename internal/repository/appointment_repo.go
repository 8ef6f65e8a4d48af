package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mediplan/api/internal/apperr"
	"github.com/mediplan/api/internal/models"
)

// AppointmentFilter narrows a listing. Empty fields are ignored.
type AppointmentFilter struct {
	PatientID string
	DoctorID  string
	Status    string
}

type AppointmentRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

func NewAppointmentRepository(db *mongo.Database, logger *zap.Logger) *AppointmentRepository {
	col := db.Collection("appointments")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "patientId", Value: 1}}},
		{Keys: bson.D{{Key: "doctorId", Value: 1}}},
		{Keys: bson.D{{Key: "appointmentDate", Value: 1}}},
	})
	if err != nil {
		logger.Warn("failed to ensure appointment indexes", zap.Error(err))
	}

	return &AppointmentRepository{col: col, logger: logger.Named("AppointmentRepository")}
}

func (r *AppointmentRepository) Insert(ctx context.Context, apt *models.Appointment) error {
	if apt.ID.IsZero() {
		apt.ID = primitive.NewObjectID()
	}
	now := time.Now()
	apt.CreatedAt = now
	apt.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, apt); err != nil {
		r.logger.Error("insert appointment failed", zap.Error(err))
		return err
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	var apt models.Appointment
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&apt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		r.logger.Error("find appointment failed", zap.String("appointmentID", id), zap.Error(err))
		return nil, err
	}
	return &apt, nil
}

// List returns appointments matching the filter, newest scheduled first
// (date descending, time descending as tiebreak).
func (r *AppointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, error) {
	query := bson.M{}
	if filter.PatientID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.PatientID)
		if err != nil {
			return nil, apperr.ErrNotFound
		}
		query["patientId"] = oid
	}
	if filter.DoctorID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.DoctorID)
		if err != nil {
			return nil, apperr.ErrNotFound
		}
		query["doctorId"] = oid
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "appointmentDate", Value: -1},
		{Key: "appointmentTime", Value: -1},
	})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error("list appointments failed", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = make([]models.Appointment, 0)
	}
	return appointments, nil
}

// Update applies a partial patch and bumps updatedAt. Callers pass only the
// fields being changed.
func (r *AppointmentRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.ErrNotFound
	}
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		r.logger.Error("update appointment failed", zap.String("appointmentID", id), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.ErrNotFound
	}
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("delete appointment failed", zap.String("appointmentID", id), zap.Error(err))
		return err
	}
	if result.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
