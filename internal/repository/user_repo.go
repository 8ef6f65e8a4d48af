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

type UserRepository struct {
	col    *mongo.Collection
	logger *zap.Logger
}

// NewUserRepository wires the users collection and ensures the unique email
// index. Index creation is idempotent.
func NewUserRepository(db *mongo.Database, logger *zap.Logger) *UserRepository {
	col := db.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.Warn("failed to ensure users email index", zap.Error(err))
	}

	return &UserRepository{col: col, logger: logger.Named("UserRepository")}
}

// Create inserts the user, assigning ID and timestamps. The password must
// already be hashed by the caller.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.ErrDuplicateIdentity
		}
		r.logger.Error("insert user failed", zap.String("email", user.Email), zap.Error(err))
		return err
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		r.logger.Error("find user by email failed", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	var user models.User
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		r.logger.Error("find user by id failed", zap.String("userID", id), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// ListDoctors returns all doctor accounts sorted by full name ascending.
func (r *UserRepository) ListDoctors(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fullName", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"role": models.RoleDoctor}, opts)
	if err != nil {
		r.logger.Error("list doctors failed", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var doctors []models.User
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// ListAll returns every user sorted by creation time descending.
func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("list users failed", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetResetToken persists a password-reset token and its expiry on the user.
func (r *UserRepository) SetResetToken(ctx context.Context, id string, token string, expiry time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"resetToken":       token,
		"resetTokenExpiry": expiry,
		"updatedAt":        time.Now(),
	}}
	result, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		r.logger.Error("set reset token failed", zap.String("userID", id), zap.Error(err))
		return err
	}
	if result.MatchedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
