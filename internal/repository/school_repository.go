package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SchoolFilter captures list parameters for the school read path.
type SchoolFilter struct {
	Search *string
	Status *domain.SchoolStatus
	Region *string
	Limit  int
	Offset int
}

// SchoolRepository encapsulates school persistence.
type SchoolRepository interface {
	Create(ctx context.Context, school *domain.School) error
	Update(ctx context.Context, school *domain.School) error
	GetByID(ctx context.Context, id string) (*domain.School, error)
	ListWithFilter(ctx context.Context, filter SchoolFilter) ([]domain.School, error)
}

type schoolRepository struct {
	pool *pgxpool.Pool
}

// NewSchoolRepository instantiates repository.
func NewSchoolRepository(pool *pgxpool.Pool) SchoolRepository {
	return &schoolRepository{pool: pool}
}

const schoolColumns = `id, name, address, region, contact_name, contact_email, contact_phone,
        status, created_at, updated_at`

func (r *schoolRepository) Create(ctx context.Context, school *domain.School) error {
	const query = `
        INSERT INTO schools (name, address, region, contact_name, contact_email, contact_phone, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		school.Name,
		school.Address,
		school.Region,
		school.ContactName,
		school.ContactEmail,
		school.ContactPhone,
		school.Status,
	).Scan(&school.ID, &school.CreatedAt, &school.UpdatedAt)
}

func (r *schoolRepository) Update(ctx context.Context, school *domain.School) error {
	const query = `
        UPDATE schools SET name=$1, address=$2, region=$3, contact_name=$4, contact_email=$5,
            contact_phone=$6, status=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		school.Name,
		school.Address,
		school.Region,
		school.ContactName,
		school.ContactEmail,
		school.ContactPhone,
		school.Status,
		school.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *schoolRepository) GetByID(ctx context.Context, id string) (*domain.School, error) {
	query := fmt.Sprintf(`SELECT %s FROM schools WHERE id=$1`, schoolColumns)
	var school domain.School
	if err := r.pool.QueryRow(ctx, query, id).Scan(schoolScanTargets(&school)...); err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepository) ListWithFilter(ctx context.Context, filter SchoolFilter) ([]domain.School, error) {
	base := fmt.Sprintf(`SELECT %s FROM schools`, schoolColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Region != nil {
		args = append(args, *filter.Region)
		clauses = append(clauses, fmt.Sprintf("region=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(region) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY name ASC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.School
	for rows.Next() {
		var school domain.School
		if err := rows.Scan(schoolScanTargets(&school)...); err != nil {
			return nil, err
		}
		result = append(result, school)
	}
	return result, rows.Err()
}

func schoolScanTargets(school *domain.School) []any {
	return []any{
		&school.ID,
		&school.Name,
		&school.Address,
		&school.Region,
		&school.ContactName,
		&school.ContactEmail,
		&school.ContactPhone,
		&school.Status,
		&school.CreatedAt,
		&school.UpdatedAt,
	}
}
