package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateInquiryRequest is a contact-form submission.
type CreateInquiryRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// UpdateInquiryRequest carries a status change.
type UpdateInquiryRequest struct {
	Status domain.InquiryStatus `json:"status" validate:"required"`
}

// InquiryResponse is the lead view.
type InquiryResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Phone     string               `json:"phone,omitempty"`
	Subject   string               `json:"subject"`
	Message   string               `json:"message"`
	Status    domain.InquiryStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// NewInquiryResponse maps the domain record.
func NewInquiryResponse(inquiry *domain.Inquiry) InquiryResponse {
	return InquiryResponse{
		ID:        inquiry.ID,
		Name:      inquiry.Name,
		Email:     inquiry.Email,
		Phone:     inquiry.Phone,
		Subject:   inquiry.Subject,
		Message:   inquiry.Message,
		Status:    inquiry.Status,
		CreatedAt: inquiry.CreatedAt,
		UpdatedAt: inquiry.UpdatedAt,
	}
}

// NewInquiryResponses maps a slice.
func NewInquiryResponses(inquiries []domain.Inquiry) []InquiryResponse {
	items := make([]InquiryResponse, 0, len(inquiries))
	for i := range inquiries {
		items = append(items, NewInquiryResponse(&inquiries[i]))
	}
	return items
}

// SubscribeRequest payload.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SubscriptionResponse is the newsletter recipient view.
type SubscriptionResponse struct {
	ID           string                    `json:"id"`
	Email        string                    `json:"email"`
	Status       domain.SubscriptionStatus `json:"status"`
	SubscribedAt time.Time                 `json:"subscribed_at"`
}

// NewSubscriptionResponse maps the domain record.
func NewSubscriptionResponse(sub *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:           sub.ID,
		Email:        sub.Email,
		Status:       sub.Status,
		SubscribedAt: sub.SubscribedAt,
	}
}

// NewSubscriptionResponses maps a slice.
func NewSubscriptionResponses(subs []domain.Subscription) []SubscriptionResponse {
	items := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		items = append(items, NewSubscriptionResponse(&subs[i]))
	}
	return items
}
