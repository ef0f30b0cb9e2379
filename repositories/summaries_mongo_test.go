package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestClassifyMongoError(t *testing.T) {
	assert.NoError(t, classifyMongoError(nil))
	assert.ErrorIs(t, classifyMongoError(mongo.ErrNoDocuments), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}
	assert.ErrorIs(t, classifyMongoError(dup), ErrConflict)

	assert.ErrorIs(t, classifyMongoError(mongo.ErrClientDisconnected), ErrStorageUnavailable)
	assert.ErrorIs(t, classifyMongoError(context.DeadlineExceeded), ErrStorageUnavailable)

	other := errors.New("boom")
	assert.Equal(t, other, classifyMongoError(other))
}
