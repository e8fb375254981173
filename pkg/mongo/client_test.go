package mongo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supersub/supersub/pkg/mongo"
)

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := mongo.New(context.Background(), mongo.Config{})
	assert.ErrorIs(t, err, mongo.ErrEmptyConnectionURL)

	_, err = mongo.NewDatabase(context.Background(), mongo.Config{ConnectionURL: "mongodb://localhost"})
	assert.ErrorIs(t, err, mongo.ErrEmptyDatabaseName)
}
