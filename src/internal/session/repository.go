package session

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"gatepass-portal-svc/src/clients"
	"gatepass-portal-svc/src/internal/models"
)

// Repository is the durable home of session records. Sessions survive Redis
// eviction and portal restarts through this collection.
type Repository interface {
	Insert(ctx context.Context, record *models.SessionRecord) error
	GetByID(ctx context.Context, sessionID string) (*models.SessionRecord, error)
	UpdateActivity(ctx context.Context, sessionID string) error
	Deactivate(ctx context.Context, sessionID string) error
}

type repository struct {
	collection *mongo.Collection
}

func NewSessionRepository(db *clients.MongoDB, collectionName string) Repository {
	collection := db.Database.Collection(collectionName)
	return &repository{collection: collection}
}

func (r *repository) Insert(ctx context.Context, record *models.SessionRecord) error {
	_, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		logrus.WithError(err).WithField("session_id", record.SessionID).Error("Failed to insert session record")
		return models.ErrSessionCreating
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, sessionID string) (*models.SessionRecord, error) {
	var record models.SessionRecord
	filter := bson.M{"session_id": sessionID}

	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrSessionNotFound
		}
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to get session record")
		return nil, models.ErrDatabaseQuery
	}

	return &record, nil
}

func (r *repository) UpdateActivity(ctx context.Context, sessionID string) error {
	filter := bson.M{
		"session_id": sessionID,
		"is_active":  true,
	}

	update := bson.M{
		"$set": bson.M{
			"last_active_at": time.Now(),
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to update session activity")
		return models.ErrSessionUpdating
	}

	return nil
}

func (r *repository) Deactivate(ctx context.Context, sessionID string) error {
	now := time.Now()
	filter := bson.M{"session_id": sessionID}

	update := bson.M{
		"$set": bson.M{
			"is_active": false,
			"logout_at": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to deactivate session")
		return models.ErrSessionDeleting
	}

	return nil
}
