package booking

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"photostudio/models"
)

// MongoRepo stores bookings in a MongoDB collection. Selected when the
// configured storage backend is "mongo".
type MongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo returns a booking repository over db's "bookings" collection.
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection("bookings")}
}

func (r *MongoRepo) Create(ctx context.Context, b *models.Booking) error {
	_, err := r.coll.InsertOne(ctx, b)
	return err
}

func (r *MongoRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	var b models.Booking
	err := r.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *MongoRepo) Update(ctx context.Context, b *models.Booking) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"booking_id": b.BookingID}, b)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) List(ctx context.Context) ([]models.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoRepo) ListByHall(ctx context.Context, hallID string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"hall_id": hallID})
}

func (r *MongoRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Booking
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
