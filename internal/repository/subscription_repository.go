package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SubscriptionRepository stores newsletter signups in MongoDB.
type SubscriptionRepository interface {
	// Upsert creates the subscription or reactivates an existing one for
	// the same email address.
	Upsert(ctx context.Context, sub *domain.Subscription) error
	UpdateStatusByEmail(ctx context.Context, email string, status domain.SubscriptionStatus, at time.Time) error
	List(ctx context.Context, status *domain.SubscriptionStatus, limit, offset int64) ([]domain.Subscription, error)
}

type subscriptionDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Status       string             `bson:"status"`
	SubscribedAt time.Time          `bson:"subscribedAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

type subscriptionRepository struct {
	collection *mongo.Collection
}

// NewSubscriptionRepository instantiates the repository; db may be nil when
// the marketing store is disabled.
func NewSubscriptionRepository(db *mongo.Database) SubscriptionRepository {
	repo := &subscriptionRepository{}
	if db != nil {
		repo.collection = db.Collection("subscriptions")
	}
	return repo
}

func (r *subscriptionRepository) Upsert(ctx context.Context, sub *domain.Subscription) error {
	if r.collection == nil {
		return ErrMarketingStoreDisabled
	}
	email := strings.ToLower(strings.TrimSpace(sub.Email))
	after := options.After
	upsert := true
	var doc subscriptionDocument
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{
			"$set":         bson.M{"status": string(sub.Status), "updatedAt": sub.UpdatedAt},
			"$setOnInsert": bson.M{"email": email, "subscribedAt": sub.SubscribedAt},
		},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after, Upsert: &upsert},
	).Decode(&doc)
	if err != nil {
		return err
	}
	sub.ID = doc.ID.Hex()
	sub.Email = doc.Email
	sub.SubscribedAt = doc.SubscribedAt
	return nil
}

func (r *subscriptionRepository) UpdateStatusByEmail(ctx context.Context, email string, status domain.SubscriptionStatus, at time.Time) error {
	if r.collection == nil {
		return ErrMarketingStoreDisabled
	}
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"email": strings.ToLower(strings.TrimSpace(email))},
		bson.M{"$set": bson.M{"status": string(status), "updatedAt": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *subscriptionRepository) List(ctx context.Context, status *domain.SubscriptionStatus, limit, offset int64) ([]domain.Subscription, error) {
	if r.collection == nil {
		return nil, ErrMarketingStoreDisabled
	}
	query := bson.M{}
	if status != nil {
		query["status"] = string(*status)
	}
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.M{"subscribedAt": -1}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []domain.Subscription
	for cursor.Next(ctx) {
		var doc subscriptionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, domain.Subscription{
			ID:           doc.ID.Hex(),
			Email:        doc.Email,
			Status:       domain.SubscriptionStatus(doc.Status),
			SubscribedAt: doc.SubscribedAt,
			UpdatedAt:    doc.UpdatedAt,
		})
	}
	return result, cursor.Err()
}
