package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ErrMarketingStoreDisabled is returned when MongoDB was not configured.
var ErrMarketingStoreDisabled = errors.New("marketing store not configured")

// InquiryFilter captures list parameters for the inquiry read path.
type InquiryFilter struct {
	Search *string
	Status *domain.InquiryStatus
	Limit  int64
	Offset int64
}

// InquiryRepository stores contact-form submissions in MongoDB.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus, at time.Time) (*domain.Inquiry, error)
	GetByID(ctx context.Context, id string) (*domain.Inquiry, error)
	ListWithFilter(ctx context.Context, filter InquiryFilter) ([]domain.Inquiry, error)
}

type inquiryDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone,omitempty"`
	Subject   string             `bson:"subject"`
	Message   string             `bson:"message"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type inquiryRepository struct {
	collection *mongo.Collection
}

// NewInquiryRepository instantiates the repository; db may be nil when the
// marketing store is disabled.
func NewInquiryRepository(db *mongo.Database) InquiryRepository {
	repo := &inquiryRepository{}
	if db != nil {
		repo.collection = db.Collection("inquiries")
	}
	return repo
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	if r.collection == nil {
		return ErrMarketingStoreDisabled
	}
	doc := inquiryDocument{
		Name:      inquiry.Name,
		Email:     strings.ToLower(inquiry.Email),
		Phone:     inquiry.Phone,
		Subject:   inquiry.Subject,
		Message:   inquiry.Message,
		Status:    string(inquiry.Status),
		CreatedAt: inquiry.CreatedAt,
		UpdatedAt: inquiry.UpdatedAt,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		inquiry.ID = oid.Hex()
	}
	return nil
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus, at time.Time) (*domain.Inquiry, error) {
	if r.collection == nil {
		return nil, ErrMarketingStoreDisabled
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	after := options.After
	var doc inquiryDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status), "updatedAt": at}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *inquiryRepository) GetByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	if r.collection == nil {
		return nil, ErrMarketingStoreDisabled
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var doc inquiryDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *inquiryRepository) ListWithFilter(ctx context.Context, filter InquiryFilter) ([]domain.Inquiry, error) {
	if r.collection == nil {
		return nil, ErrMarketingStoreDisabled
	}
	query := bson.M{}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		pattern := searchRegex(strings.TrimSpace(*filter.Search))
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
			bson.M{"subject": pattern},
		}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(filter.Offset).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []domain.Inquiry
	for cursor.Next(ctx) {
		var doc inquiryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, *doc.toDomain())
	}
	return result, cursor.Err()
}

// searchRegex builds a case-insensitive substring matcher. The term is a
// literal, so regex metacharacters in user input are escaped.
func searchRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

func (d *inquiryDocument) toDomain() *domain.Inquiry {
	return &domain.Inquiry{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Subject:   d.Subject,
		Message:   d.Message,
		Status:    domain.InquiryStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
