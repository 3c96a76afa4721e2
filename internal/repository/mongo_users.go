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

type mongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{collection: db.Collection("users")}
}

func (m *mongoUserRepository) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User

	filter := bson.M{"_id": userID}
	err := m.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (m *mongoUserRepository) Exists(ctx context.Context, userID string) (bool, error) {
	filter := bson.M{"_id": userID}
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})

	err := m.collection.FindOne(ctx, filter, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return true, nil
}

func (m *mongoUserRepository) FindCartLine(ctx context.Context, userID, productID string) (*domain.CartLine, error) {
	filter := bson.M{
		"_id":                     userID,
		"cart.products.productId": productID,
	}
	// Positional projection returns only the matching line.
	opts := options.FindOne().SetProjection(bson.M{"cart.products.$": 1})

	var user domain.User
	err := m.collection.FindOne(ctx, filter, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cart line: %w", err)
	}
	if len(user.Cart.Products) == 0 {
		return nil, nil
	}

	line := user.Cart.Products[0]
	return &line, nil
}

func (m *mongoUserRepository) IncrementLineQuantity(ctx context.Context, userID, productID string, delta int) error {
	filter := bson.M{
		"_id":                     userID,
		"cart.products.productId": productID,
	}
	update := bson.M{
		"$inc": bson.M{"cart.products.$.quantity": delta},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to change line quantity: %w", err)
	}
	if result.ModifiedCount == 0 {
		return ErrNoChange
	}
	return nil
}

func (m *mongoUserRepository) PushLine(ctx context.Context, userID string, line domain.CartLine) error {
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$push": bson.M{"cart.products": line},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to push cart line: %w", err)
	}
	if result.ModifiedCount == 0 {
		return ErrNoChange
	}
	return nil
}

func (m *mongoUserRepository) PullLine(ctx context.Context, userID, productID string) (int, error) {
	filter := bson.M{
		"_id":                     userID,
		"cart.products.productId": productID,
	}
	update := bson.M{
		"$pull": bson.M{"cart.products": bson.M{"productId": productID}},
	}
	// Return the document after the pull so the caller sees the remaining lines.
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, ErrNoChange
	}
	if err != nil {
		return 0, fmt.Errorf("failed to pull cart line: %w", err)
	}

	return len(user.Cart.Products), nil
}

func (m *mongoUserRepository) SetCoupon(ctx context.Context, userID, couponID string) error {
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$set": bson.M{"cart.coupon": couponID},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set coupon: %w", err)
	}
	if result.ModifiedCount == 0 {
		return ErrNoChange
	}
	return nil
}

func (m *mongoUserRepository) ClearCoupon(ctx context.Context, userID string) error {
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$unset": bson.M{"cart.coupon": 1},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to clear coupon: %w", err)
	}
	if result.ModifiedCount == 0 {
		return ErrNoChange
	}
	return nil
}
