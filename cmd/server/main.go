package main

import (
	bookinghandler "studiobook/internal/bookings/handler"
	bookingrepo "studiobook/internal/bookings/repository"
	bookingservice "studiobook/internal/bookings/service"
	"studiobook/internal/bookings/validator"
	cataloghandler "studiobook/internal/catalog/handler"
	catalogrepo "studiobook/internal/catalog/repository"
	catalogservice "studiobook/internal/catalog/service"
	"studiobook/pkg/app"
	"studiobook/pkg/config"
	"studiobook/pkg/contracts"
	"studiobook/pkg/events"
	"studiobook/pkg/timezone"
)

const ServiceName = "studiobook"

func main() {
	cfg := config.Load(ServiceName)
	cfg.LogConfiguration()
	cfg.SetMongo()

	cfg.Log.Info("Starting booking service")

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(initHandlers(cfg)...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config) []contracts.Handler {
	converter, err := timezone.NewConverter(cfg.StudioTimezone)
	if err != nil {
		cfg.Log.Fatal("Invalid studio timezone", "timezone", cfg.StudioTimezone, "error", err)
	}

	publisher := initPublisher(cfg)

	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	bookingSvc := bookingservice.NewBookingService(bookingRepo, bookingValidator, converter, publisher, cfg)

	classRepo := catalogrepo.NewMongoClassRepository(cfg)
	catalogSvc := catalogservice.NewCatalogService(classRepo, converter, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		bookinghandler.NewBookingHandler(bookingSvc, cfg.Log),
		cataloghandler.NewClassHandler(catalogSvc, cfg.Log),
	}
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka publishing disabled")
		return events.NoopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize kafka publisher", "error", err)
	}

	cfg.Log.Info("Kafka publishing enabled", "topic", cfg.KafkaTopic)
	return publisher
}
