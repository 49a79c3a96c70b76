package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// InquiryService handles the marketing-site contact form and newsletter
// flow backed by the MongoDB store.
type InquiryService struct {
	inquiries     repository.InquiryRepository
	subscriptions repository.SubscriptionRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	now           func() time.Time
}

// InquiryInput is a contact-form submission.
type InquiryInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// NewInquiryService constructs the service.
func NewInquiryService(inquiries repository.InquiryRepository, subscriptions repository.SubscriptionRepository, dispatcher events.Dispatcher, logger *zap.Logger) *InquiryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InquiryService{
		inquiries:     inquiries,
		subscriptions: subscriptions,
		dispatcher:    dispatcher,
		logger:        logger,
		now:           time.Now,
	}
}

// SubmitInquiry records a contact-form lead with status "new".
func (s *InquiryService) SubmitInquiry(ctx context.Context, input InquiryInput) (*domain.Inquiry, error) {
	if input.Name == "" || input.Email == "" || strings.TrimSpace(input.Message) == "" {
		return nil, apperrors.NewValidationError("name, email, message required", nil)
	}
	now := s.now()
	inquiry := &domain.Inquiry{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   strings.TrimSpace(input.Message),
		Status:    domain.InquiryStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, mapMarketingErr(err, "inquiry")
	}
	if s.dispatcher != nil {
		event := events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventInquiryReceived,
			SubjectID: inquiry.ID,
			Timestamp: now,
			Payload: events.InquiryReceivedPayload{
				Email:   inquiry.Email,
				Subject: inquiry.Subject,
			},
		}
		// Handler failures must not fail the submission itself.
		if err := s.dispatcher.Publish(ctx, event); err != nil {
			s.logger.Warn("event handler failed",
				zap.String("event_type", string(event.Type)),
				zap.String("subject_id", event.SubjectID),
				zap.Error(err))
		}
	}
	return inquiry, nil
}

// UpdateInquiryStatus moves a lead to any status in the enum; the pipeline
// has no ordering rules.
func (s *InquiryService) UpdateInquiryStatus(ctx context.Context, id string, status domain.InquiryStatus) (*domain.Inquiry, error) {
	if !domain.ValidInquiryStatus(status) {
		return nil, apperrors.NewInvalidStatus(string(status))
	}
	inquiry, err := s.inquiries.UpdateStatus(ctx, id, status, s.now())
	if err != nil {
		return nil, mapMarketingErr(err, "inquiry")
	}
	return inquiry, nil
}

// ListInquiries returns leads matching the filters.
func (s *InquiryService) ListInquiries(ctx context.Context, filter repository.InquiryFilter) ([]domain.Inquiry, error) {
	inquiries, err := s.inquiries.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, mapMarketingErr(err, "inquiry")
	}
	return inquiries, nil
}

// Subscribe signs an address up for the newsletter; a repeat signup for a
// known address reactivates it.
func (s *InquiryService) Subscribe(ctx context.Context, email string) (*domain.Subscription, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError("email required", nil)
	}
	now := s.now()
	sub := &domain.Subscription{
		Email:        email,
		Status:       domain.SubscriptionStatusActive,
		SubscribedAt: now,
		UpdatedAt:    now,
	}
	if err := s.subscriptions.Upsert(ctx, sub); err != nil {
		return nil, mapMarketingErr(err, "subscription")
	}
	return sub, nil
}

// Unsubscribe marks an address as unsubscribed.
func (s *InquiryService) Unsubscribe(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("email required", nil)
	}
	if err := s.subscriptions.UpdateStatusByEmail(ctx, email, domain.SubscriptionStatusUnsubscribed, s.now()); err != nil {
		return mapMarketingErr(err, "subscription")
	}
	return nil
}

// ListSubscriptions returns newsletter recipients.
func (s *InquiryService) ListSubscriptions(ctx context.Context, status *domain.SubscriptionStatus, limit, offset int64) ([]domain.Subscription, error) {
	subs, err := s.subscriptions.List(ctx, status, limit, offset)
	if err != nil {
		return nil, mapMarketingErr(err, "subscription")
	}
	return subs, nil
}

func mapMarketingErr(err error, resource string) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperrors.NewNotFound(resource, nil)
	case errors.Is(err, repository.ErrMarketingStoreDisabled):
		return apperrors.NewDomainError("UNAVAILABLE", "marketing store not configured", http.StatusServiceUnavailable, nil)
	default:
		return apperrors.MapError(err)
	}
}
