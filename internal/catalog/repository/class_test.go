package repository

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"studiobook/pkg/client"
	"studiobook/pkg/config"
	"studiobook/pkg/logger"
)

func testConfig(mt *mtest.T) *config.Config {
	return &config.Config{
		MongoDatabaseName: "studiobook",
		ReadTimeout:       time.Second,
		WriteTimeout:      time.Second,
		Log:               logger.New(logger.Config{Level: "error", Service: "test"}),
		Client:            &client.Client{Mongo: &client.MongoClient{Client: mt.Client}},
	}
}

func TestFindUpcoming_QueryShape(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("filters started classes and sorts ascending", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "studiobook.Classes", mtest.FirstBatch))

		repo := NewMongoClassRepository(testConfig(mt))
		if _, err := repo.FindUpcoming(context.Background(), time.Now()); err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}

		evt := mt.GetStartedEvent()
		if evt == nil || evt.CommandName != "find" {
			mt.Fatalf("expected a find command, got %+v", evt)
		}

		// Only classes at or after the cutoff may come back.
		filter := evt.Command.Lookup("filter").Document()
		if _, err := filter.LookupErr("start_time", "$gte"); err != nil {
			mt.Errorf("expected start_time $gte cutoff in filter, got %v", filter)
		}

		sortVal, err := evt.Command.LookupErr("sort")
		if err != nil {
			mt.Fatal("expected the find command to carry a sort")
		}
		var sort bson.D
		if err := bson.Unmarshal(sortVal.Document(), &sort); err != nil {
			mt.Fatalf("failed to decode sort: %v", err)
		}
		if len(sort) != 2 || sort[0].Key != "start_time" || sort[1].Key != "_id" {
			mt.Fatalf("expected sort by start_time then _id, got %v", sort)
		}
		for _, field := range sort {
			if dir, ok := field.Value.(int32); !ok || dir != 1 {
				mt.Errorf("expected ascending sort on %s, got %v", field.Key, field.Value)
			}
		}
	})
}
