package domain

import "time"

// InquiryStatus tracks a contact-form lead. Transitions are free-form.
type InquiryStatus string

const (
	InquiryStatusNew       InquiryStatus = "new"
	InquiryStatusContacted InquiryStatus = "contacted"
	InquiryStatusQualified InquiryStatus = "qualified"
	InquiryStatusConverted InquiryStatus = "converted"
	InquiryStatusClosed    InquiryStatus = "closed"
)

// ValidInquiryStatus reports whether s is a member of the enum.
func ValidInquiryStatus(s InquiryStatus) bool {
	switch s {
	case InquiryStatusNew, InquiryStatusContacted, InquiryStatusQualified,
		InquiryStatusConverted, InquiryStatusClosed:
		return true
	}
	return false
}

// Inquiry is a contact-form submission from the marketing site.
type Inquiry struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	Status    InquiryStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubscriptionStatus tracks a newsletter recipient.
type SubscriptionStatus string

const (
	SubscriptionStatusActive       SubscriptionStatus = "active"
	SubscriptionStatusUnsubscribed SubscriptionStatus = "unsubscribed"
	SubscriptionStatusBounced      SubscriptionStatus = "bounced"
)

// ValidSubscriptionStatus reports whether s is a member of the enum.
func ValidSubscriptionStatus(s SubscriptionStatus) bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusUnsubscribed, SubscriptionStatusBounced:
		return true
	}
	return false
}

// Subscription is a newsletter signup.
type Subscription struct {
	ID           string
	Email        string
	Status       SubscriptionStatus
	SubscribedAt time.Time
	UpdatedAt    time.Time
}
