package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"studiobook/pkg/logger"
	"studiobook/pkg/model"
)

type seedClass struct {
	name       string
	instructor string
	daysAhead  int
	hour       int
	minute     int
	totalSlots int
}

// The sample catalog. Start times are studio-local and relative to seeding
// time, so a freshly seeded store always has bookable classes.
var seedClasses = []seedClass{
	{name: "Yoga Flow", instructor: "Priya Sharma", daysAhead: 1, hour: 7, minute: 0, totalSlots: 20},
	{name: "Zumba Dance", instructor: "Rahul Kumar", daysAhead: 1, hour: 18, minute: 30, totalSlots: 25},
	{name: "HIIT Training", instructor: "Anjali Singh", daysAhead: 2, hour: 6, minute: 30, totalSlots: 15},
	{name: "Power Yoga", instructor: "Priya Sharma", daysAhead: 2, hour: 19, minute: 0, totalSlots: 20},
	{name: "Cardio Blast", instructor: "Vikram Patel", daysAhead: 3, hour: 7, minute: 30, totalSlots: 18},
}

// SeedClasses inserts the sample catalog once. An already-populated class
// collection is left untouched so reruns are safe.
func SeedClasses(ctx context.Context, client *mongo.Client, dbName string, studio *time.Location, log *logger.Logger) error {
	coll := client.Database(dbName).Collection(ClassCollection)

	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count classes: %w", err)
	}
	if count > 0 {
		log.Info("Class catalog already seeded", "classes", count)
		return nil
	}

	now := time.Now().In(studio)
	docs := make([]any, 0, len(seedClasses))
	for i, sc := range seedClasses {
		day := now.AddDate(0, 0, sc.daysAhead)
		start := time.Date(day.Year(), day.Month(), day.Day(), sc.hour, sc.minute, 0, 0, studio)

		docs = append(docs, &model.ClassSession{
			ID:          int64(i + 1),
			Name:        sc.name,
			Instructor:  sc.instructor,
			StartTime:   start,
			TotalSlots:  sc.totalSlots,
			BookedSlots: 0,
		})
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed classes: %w", err)
	}

	log.Info("Seeded class catalog", "classes", len(docs))
	return nil
}
