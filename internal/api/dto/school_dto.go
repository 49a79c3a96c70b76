package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SchoolRequest covers create and update payloads.
type SchoolRequest struct {
	Name         string              `json:"name"`
	Address      string              `json:"address"`
	Region       string              `json:"region"`
	ContactName  string              `json:"contact_name"`
	ContactEmail string              `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string              `json:"contact_phone"`
	Status       domain.SchoolStatus `json:"status"`
}

// SchoolResponse is the school view.
type SchoolResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Address      string              `json:"address"`
	Region       string              `json:"region"`
	ContactName  string              `json:"contact_name"`
	ContactEmail string              `json:"contact_email"`
	ContactPhone string              `json:"contact_phone"`
	Status       domain.SchoolStatus `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// NewSchoolResponse maps the domain record.
func NewSchoolResponse(school *domain.School) SchoolResponse {
	return SchoolResponse{
		ID:           school.ID,
		Name:         school.Name,
		Address:      school.Address,
		Region:       school.Region,
		ContactName:  school.ContactName,
		ContactEmail: school.ContactEmail,
		ContactPhone: school.ContactPhone,
		Status:       school.Status,
		CreatedAt:    school.CreatedAt,
		UpdatedAt:    school.UpdatedAt,
	}
}

// NewSchoolResponses maps a slice.
func NewSchoolResponses(schools []domain.School) []SchoolResponse {
	items := make([]SchoolResponse, 0, len(schools))
	for i := range schools {
		items = append(items, NewSchoolResponse(&schools[i]))
	}
	return items
}
