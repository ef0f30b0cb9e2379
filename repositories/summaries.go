package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"wiki-summary/models"
)

type SummaryRepository struct {
	col *mongo.Collection
}

func NewSummaryRepository(db *mongo.Database) *SummaryRepository {
	return &SummaryRepository{col: db.Collection("summaries")}
}

// GetByID returns the summary stored under id, or ErrNotFound.
func (r *SummaryRepository) GetByID(ctx context.Context, id string) (*models.Summary, error) {
	var s models.Summary
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, classifyMongoError(err)
	}
	return &s, nil
}

// Create inserts a new summary. A duplicate _id or url yields ErrConflict.
func (r *SummaryRepository) Create(ctx context.Context, id, url, summary string) (*models.Summary, error) {
	s := &models.Summary{
		ID:      id,
		URL:     url,
		Summary: summary,
		// mongo keeps millisecond precision, truncate so the returned value matches what is read back
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return nil, classifyMongoError(err)
	}
	return s, nil
}

// Ping checks connectivity of the underlying client.
func (r *SummaryRepository) Ping(ctx context.Context) error {
	if err := r.col.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

func classifyMongoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err), errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return err
}
