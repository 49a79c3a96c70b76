package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// SchoolService manages client sites.
type SchoolService struct {
	schools repository.SchoolRepository
}

// SchoolInput carries create/update fields for a school.
type SchoolInput struct {
	Name         string
	Address      string
	Region       string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Status       domain.SchoolStatus
}

// NewSchoolService constructs the service.
func NewSchoolService(schools repository.SchoolRepository) *SchoolService {
	return &SchoolService{schools: schools}
}

// Create registers a school.
func (s *SchoolService) Create(ctx context.Context, input SchoolInput) (*domain.School, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if input.Status == "" {
		input.Status = domain.SchoolStatusActive
	}
	if !domain.ValidSchoolStatus(input.Status) {
		return nil, apperrors.NewInvalidStatus(string(input.Status))
	}

	school := &domain.School{
		Name:         strings.TrimSpace(input.Name),
		Address:      input.Address,
		Region:       input.Region,
		ContactName:  input.ContactName,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Status:       input.Status,
	}
	if err := s.schools.Create(ctx, school); err != nil {
		return nil, apperrors.MapError(err)
	}
	return school, nil
}

// Update replaces the mutable fields of a school.
func (s *SchoolService) Update(ctx context.Context, id string, input SchoolInput) (*domain.School, error) {
	school, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != "" {
		school.Name = strings.TrimSpace(input.Name)
	}
	if input.Address != "" {
		school.Address = input.Address
	}
	if input.Region != "" {
		school.Region = input.Region
	}
	if input.ContactName != "" {
		school.ContactName = input.ContactName
	}
	if input.ContactEmail != "" {
		school.ContactEmail = input.ContactEmail
	}
	if input.ContactPhone != "" {
		school.ContactPhone = input.ContactPhone
	}
	if input.Status != "" {
		if !domain.ValidSchoolStatus(input.Status) {
			return nil, apperrors.NewInvalidStatus(string(input.Status))
		}
		school.Status = input.Status
	}

	if err := s.schools.Update(ctx, school); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("school", map[string]any{"school_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return school, nil
}

// Get fetches a school by id.
func (s *SchoolService) Get(ctx context.Context, id string) (*domain.School, error) {
	school, err := s.schools.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("school", map[string]any{"school_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return school, nil
}

// List returns schools matching the filters.
func (s *SchoolService) List(ctx context.Context, filter repository.SchoolFilter) ([]domain.School, error) {
	schools, err := s.schools.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return schools, nil
}
