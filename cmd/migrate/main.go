package main

import (
	"context"
	"time"

	migrations "studiobook/internal/migrations/mongo"
	"studiobook/pkg/config"
	"studiobook/pkg/timezone"
)

const ServiceName = "studiobook-migrate"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	converter, err := timezone.NewConverter(cfg.StudioTimezone)
	if err != nil {
		cfg.Log.Fatal("Invalid studio timezone", "timezone", cfg.StudioTimezone, "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := cfg.Client.Mongo.Client
	if err := migrations.RunMigration(ctx, client, cfg.MongoDatabaseName, cfg.Log); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	if err := migrations.SeedClasses(ctx, client, cfg.MongoDatabaseName, converter.Studio(), cfg.Log); err != nil {
		cfg.Log.Fatal("Seeding failed", "error", err)
	}

	cfg.Log.Info("Migration and seed completed")
}
