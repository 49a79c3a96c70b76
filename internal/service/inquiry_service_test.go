package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

type fakeInquiryRepo struct {
	inquiries map[string]domain.Inquiry
	disabled  bool
	nextID    int
}

func newFakeInquiryRepo() *fakeInquiryRepo {
	return &fakeInquiryRepo{inquiries: make(map[string]domain.Inquiry)}
}

func (r *fakeInquiryRepo) Create(_ context.Context, inquiry *domain.Inquiry) error {
	if r.disabled {
		return repository.ErrMarketingStoreDisabled
	}
	r.nextID++
	inquiry.ID = fmt.Sprintf("inq-%d", r.nextID)
	r.inquiries[inquiry.ID] = *inquiry
	return nil
}

func (r *fakeInquiryRepo) UpdateStatus(_ context.Context, id string, status domain.InquiryStatus, at time.Time) (*domain.Inquiry, error) {
	if r.disabled {
		return nil, repository.ErrMarketingStoreDisabled
	}
	inquiry, ok := r.inquiries[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	inquiry.Status = status
	inquiry.UpdatedAt = at
	r.inquiries[id] = inquiry
	return &inquiry, nil
}

func (r *fakeInquiryRepo) GetByID(_ context.Context, id string) (*domain.Inquiry, error) {
	inquiry, ok := r.inquiries[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &inquiry, nil
}

func (r *fakeInquiryRepo) ListWithFilter(_ context.Context, _ repository.InquiryFilter) ([]domain.Inquiry, error) {
	out := make([]domain.Inquiry, 0, len(r.inquiries))
	for _, i := range r.inquiries {
		out = append(out, i)
	}
	return out, nil
}

type fakeSubscriptionRepo struct {
	subs map[string]domain.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[string]domain.Subscription)}
}

func (r *fakeSubscriptionRepo) Upsert(_ context.Context, sub *domain.Subscription) error {
	key := strings.ToLower(sub.Email)
	if existing, ok := r.subs[key]; ok {
		existing.Status = sub.Status
		existing.UpdatedAt = sub.UpdatedAt
		r.subs[key] = existing
		*sub = existing
		return nil
	}
	sub.ID = fmt.Sprintf("sub-%d", len(r.subs)+1)
	r.subs[key] = *sub
	return nil
}

func (r *fakeSubscriptionRepo) UpdateStatusByEmail(_ context.Context, email string, status domain.SubscriptionStatus, at time.Time) error {
	key := strings.ToLower(email)
	sub, ok := r.subs[key]
	if !ok {
		return mongo.ErrNoDocuments
	}
	sub.Status = status
	sub.UpdatedAt = at
	r.subs[key] = sub
	return nil
}

func (r *fakeSubscriptionRepo) List(_ context.Context, status *domain.SubscriptionStatus, _, _ int64) ([]domain.Subscription, error) {
	var out []domain.Subscription
	for _, s := range r.subs {
		if status != nil && s.Status != *status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func TestSubmitInquiry(t *testing.T) {
	t.Parallel()

	dispatcher := &recordingDispatcher{}
	svc := NewInquiryService(newFakeInquiryRepo(), newFakeSubscriptionRepo(), dispatcher, nil)

	inquiry, err := svc.SubmitInquiry(context.Background(), InquiryInput{
		Name:    "Jordan",
		Email:   "jordan@example.com",
		Message: "  Interested in the device program.  ",
	})
	if err != nil {
		t.Fatalf("SubmitInquiry: %v", err)
	}
	if inquiry.Status != domain.InquiryStatusNew {
		t.Errorf("status = %s, want new", inquiry.Status)
	}
	if inquiry.Message != "Interested in the device program." {
		t.Errorf("message not trimmed: %q", inquiry.Message)
	}
	if len(dispatcher.published(events.EventInquiryReceived)) != 1 {
		t.Error("expected one inquiry_received event")
	}

	_, err = svc.SubmitInquiry(context.Background(), InquiryInput{Name: "Jordan", Email: "jordan@example.com", Message: "   "})
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestUpdateInquiryStatus(t *testing.T) {
	t.Parallel()

	svc := NewInquiryService(newFakeInquiryRepo(), newFakeSubscriptionRepo(), nil, nil)
	inquiry, err := svc.SubmitInquiry(context.Background(), InquiryInput{Name: "J", Email: "j@example.com", Message: "m"})
	if err != nil {
		t.Fatalf("SubmitInquiry: %v", err)
	}

	updated, err := svc.UpdateInquiryStatus(context.Background(), inquiry.ID, domain.InquiryStatusContacted)
	if err != nil {
		t.Fatalf("UpdateInquiryStatus: %v", err)
	}
	if updated.Status != domain.InquiryStatusContacted {
		t.Errorf("status = %s, want contacted", updated.Status)
	}

	_, err = svc.UpdateInquiryStatus(context.Background(), inquiry.ID, "spam")
	assertCode(t, err, "INVALID_STATUS")
	_, err = svc.UpdateInquiryStatus(context.Background(), "inq-404", domain.InquiryStatusClosed)
	assertCode(t, err, "NOT_FOUND")
}

func TestSubscribeReactivates(t *testing.T) {
	t.Parallel()

	svc := NewInquiryService(newFakeInquiryRepo(), newFakeSubscriptionRepo(), nil, nil)

	if _, err := svc.Subscribe(context.Background(), "news@example.com"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := svc.Unsubscribe(context.Background(), "news@example.com"); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}

	sub, err := svc.Subscribe(context.Background(), "news@example.com")
	if err != nil {
		t.Fatalf("resubscribe: %v", err)
	}
	if sub.Status != domain.SubscriptionStatusActive {
		t.Errorf("status = %s, want active after resubscribe", sub.Status)
	}

	err = svc.Unsubscribe(context.Background(), "stranger@example.com")
	assertCode(t, err, "NOT_FOUND")
	_, err = svc.Subscribe(context.Background(), "   ")
	assertCode(t, err, "VALIDATION_FAILED")
}

func TestMarketingStoreDisabled(t *testing.T) {
	t.Parallel()

	inquiries := newFakeInquiryRepo()
	inquiries.disabled = true
	svc := NewInquiryService(inquiries, newFakeSubscriptionRepo(), nil, nil)

	_, err := svc.SubmitInquiry(context.Background(), InquiryInput{Name: "J", Email: "j@example.com", Message: "m"})
	assertCode(t, err, "UNAVAILABLE")
}
