package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studiobook/pkg/config"
	"studiobook/pkg/model"
)

const ClassCollection = "Classes"

type ClassRepository interface {
	FindUpcoming(ctx context.Context, after time.Time) ([]*model.ClassSession, error)
}

type mongoClassRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoClassRepository(cfg *config.Config) ClassRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoClassRepository{
		cfg:        cfg,
		collection: db.Collection(ClassCollection),
	}
}

// FindUpcoming returns classes starting at or after the given instant,
// ascending by start time with id as the tie-break.
func (r *mongoClassRepository) FindUpcoming(ctx context.Context, after time.Time) ([]*model.ClassSession, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "start_time", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{"start_time": bson.M{"$gte": after}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find upcoming classes: %w", err)
	}
	defer cursor.Close(ctx)

	var classes []*model.ClassSession
	if err = cursor.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("failed to decode classes: %w", err)
	}

	return classes, nil
}
