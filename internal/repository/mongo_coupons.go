package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seyedali-rafazi/urbam-state-backend/internal/domain"
)

type mongoCouponRepository struct {
	collection *mongo.Collection
}

func NewMongoCouponRepository(db *mongo.Database) CouponRepository {
	return &mongoCouponRepository{collection: db.Collection("coupons")}
}

func (m *mongoCouponRepository) FindByID(ctx context.Context, couponID string) (*domain.Coupon, error) {
	return m.findOne(ctx, bson.M{"_id": couponID})
}

func (m *mongoCouponRepository) FindByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	return m.findOne(ctx, bson.M{"code": code})
}

func (m *mongoCouponRepository) findOne(ctx context.Context, filter bson.M) (*domain.Coupon, error) {
	var coupon domain.Coupon

	err := m.collection.FindOne(ctx, filter).Decode(&coupon)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return &coupon, nil
}

func (m *mongoCouponRepository) Insert(ctx context.Context, coupon *domain.Coupon) error {
	_, err := m.collection.InsertOne(ctx, coupon)
	if err != nil {
		return fmt.Errorf("failed to insert coupon: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the queries rely on. Called once at
// startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	couponIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := db.Collection("coupons").Indexes().CreateMany(ctx, couponIndexes); err != nil {
		return fmt.Errorf("failed to create coupon indexes: %w", err)
	}
	return nil
}
