package payment

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"photostudio/models"
)

// MongoRepo stores payments in a MongoDB collection.
type MongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo returns a payment repository over db's "payments" collection.
func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection("payments")}
}

func (r *MongoRepo) Create(ctx context.Context, p *models.Payment) error {
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *MongoRepo) GetByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	return r.findOne(ctx, bson.M{"payment_id": paymentID})
}

func (r *MongoRepo) GetByExternalID(ctx context.Context, externalPaymentID string) (*models.Payment, error) {
	return r.findOne(ctx, bson.M{"external_payment_id": externalPaymentID})
}

func (r *MongoRepo) Update(ctx context.Context, p *models.Payment) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"payment_id": p.PaymentID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) findOne(ctx context.Context, filter bson.M) (*models.Payment, error) {
	var p models.Payment
	err := r.coll.FindOne(ctx, filter).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
