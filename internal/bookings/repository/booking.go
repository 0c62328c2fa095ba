package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingserrors "studiobook/internal/bookings/errors"
	"studiobook/pkg/config"
	mongotx "studiobook/pkg/db/mongo"
	"studiobook/pkg/model"
)

const (
	ClassCollection   = "Classes"
	BookingCollection = "Bookings"
	CounterCollection = "Counters"

	bookingSequence = "bookings"
)

type BookingRepository interface {
	FindClassByID(ctx context.Context, id int64) (*model.ClassSession, error)
	FindClassesByIDs(ctx context.Context, ids []int64) (map[int64]*model.ClassSession, error)
	HasBooking(ctx context.Context, classID int64, clientEmail string) (bool, error)
	NextBookingID(ctx context.Context) (int64, error)
	InsertBooking(ctx context.Context, booking *model.Booking) error
	IncrementBookedSlots(ctx context.Context, classID int64) error
	FindByEmail(ctx context.Context, clientEmail string) ([]*model.Booking, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg       *config.Config
	classes   *mongo.Collection
	bookings  *mongo.Collection
	counters  *mongo.Collection
	txManager mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:       cfg,
		classes:   db.Collection(ClassCollection),
		bookings:  db.Collection(BookingCollection),
		counters:  db.Collection(CounterCollection),
		txManager: mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

// withTimeout wraps the context with a timeout unless we are already inside a
// transaction. A SessionContext cannot be wrapped without breaking
// transaction semantics, so it is returned unchanged with a no-op cancel.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithTimeout(ctx, time.Until(deadline))
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) FindClassByID(ctx context.Context, id int64) (*model.ClassSession, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var class model.ClassSession
	err := r.classes.FindOne(ctx, bson.M{"_id": id}).Decode(&class)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("failed to find class: %w", err)
	}

	return &class, nil
}

func (r *mongoBookingRepository) FindClassesByIDs(ctx context.Context, ids []int64) (map[int64]*model.ClassSession, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.classes.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find classes: %w", err)
	}
	defer cursor.Close(ctx)

	var classes []*model.ClassSession
	if err = cursor.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("failed to decode classes: %w", err)
	}

	byID := make(map[int64]*model.ClassSession, len(classes))
	for _, class := range classes {
		byID[class.ID] = class
	}
	return byID, nil
}

func (r *mongoBookingRepository) HasBooking(ctx context.Context, classID int64, clientEmail string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.bookings.CountDocuments(ctx, bson.M{
		"class_id":     classID,
		"client_email": clientEmail,
	})
	if err != nil {
		return false, fmt.Errorf("failed to check existing booking: %w", err)
	}
	return count > 0, nil
}

// NextBookingID allocates the next value of the booking id sequence.
func (r *mongoBookingRepository) NextBookingID(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": bookingSequence},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate booking id: %w", err)
	}

	return counter.Seq, nil
}

func (r *mongoBookingRepository) InsertBooking(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.bookings.InsertOne(ctx, booking)
	if err != nil {
		// Unique index on (class_id, client_email) closes the race window
		// left by the duplicate pre-check.
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrDuplicateBooking
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// IncrementBookedSlots bumps booked_slots only while capacity remains. A
// no-match result means the class filled up; callers must abort the
// transaction so the inserted booking rolls back with it.
func (r *mongoBookingRepository) IncrementBookedSlots(ctx context.Context, classID int64) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"_id":   classID,
		"$expr": bson.M{"$lt": bson.A{"$booked_slots", "$total_slots"}},
	}

	result, err := r.classes.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"booked_slots": 1}})
	if err != nil {
		return fmt.Errorf("failed to update class slots: %w", err)
	}

	if result.MatchedCount == 0 {
		return bookingserrors.ErrClassFull
	}
	return nil
}

func (r *mongoBookingRepository) FindByEmail(ctx context.Context, clientEmail string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.bookings.Find(ctx, bson.M{"client_email": clientEmail}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
