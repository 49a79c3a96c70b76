package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ErrProductUnavailable is returned when assignment finds the product in
// any status other than available.
var ErrProductUnavailable = errors.New("product not available for assignment")

// AssetFilter captures list parameters for the asset read path.
type AssetFilter struct {
	Search   *string
	Status   *domain.AssetStatus
	SchoolID *string
	Limit    int
	Offset   int
}

// AssetRepository encapsulates asset persistence, including the atomic
// product/asset pair writes for assignment and deassignment.
type AssetRepository interface {
	// Assign claims the product (available -> assigned) and inserts the
	// asset in a single transaction.
	Assign(ctx context.Context, asset *domain.Asset) error
	// Deassign archives the asset and releases its product in a single
	// transaction, returning the product id.
	Deassign(ctx context.Context, assetID string, at time.Time) (string, error)
	Update(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
	ListWithFilter(ctx context.Context, filter AssetFilter) ([]domain.Asset, error)
}

type assetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository instantiates repository.
func NewAssetRepository(pool *pgxpool.Pool) AssetRepository {
	return &assetRepository{pool: pool}
}

const assetColumns = `a.id, a.product_id, a.school_id, a.assigned_date, a.deassigned_at,
        a.status, a.condition, a.location, a.created_at, a.updated_at`

func (r *assetRepository) Assign(ctx context.Context, asset *domain.Asset) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	claim, err := tx.Exec(ctx,
		`UPDATE products SET status='assigned', updated_at=NOW() WHERE id=$1 AND status='available'`,
		asset.ProductID)
	if err != nil {
		return err
	}
	if claim.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id=$1)`, asset.ProductID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return pgx.ErrNoRows
		}
		return ErrProductUnavailable
	}

	const insert = `
        INSERT INTO assets (product_id, school_id, assigned_date, status, condition, location)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insert,
		asset.ProductID,
		asset.SchoolID,
		asset.AssignedDate,
		asset.Status,
		asset.Condition,
		asset.Location,
	).Scan(&asset.ID, &asset.CreatedAt, &asset.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *assetRepository) Deassign(ctx context.Context, assetID string, at time.Time) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var productID string
	err = tx.QueryRow(ctx,
		`UPDATE assets SET deassigned_at=$1, updated_at=$1 WHERE id=$2 AND deassigned_at IS NULL RETURNING product_id`,
		at, assetID).Scan(&productID)
	if err != nil {
		return "", err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE products SET status='available', updated_at=$1 WHERE id=$2`,
		at, productID); err != nil {
		return "", err
	}

	return productID, tx.Commit(ctx)
}

func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	const query = `
        UPDATE assets SET status=$1, condition=$2, location=$3, updated_at=$4
        WHERE id=$5 AND deassigned_at IS NULL`
	cmd, err := r.pool.Exec(ctx, query,
		asset.Status,
		asset.Condition,
		asset.Location,
		asset.UpdatedAt,
		asset.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	query := fmt.Sprintf(`SELECT %s FROM assets a WHERE a.id=$1`, assetColumns)
	var asset domain.Asset
	if err := r.pool.QueryRow(ctx, query, id).Scan(assetScanTargets(&asset)...); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) ListWithFilter(ctx context.Context, filter AssetFilter) ([]domain.Asset, error) {
	base := fmt.Sprintf(`SELECT %s FROM assets a
        JOIN schools s ON s.id = a.school_id
        JOIN products p ON p.id = a.product_id`, assetColumns)
	clauses := []string{"a.deassigned_at IS NULL"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("a.status=$%d", len(args)))
	}
	if filter.SchoolID != nil {
		args = append(args, *filter.SchoolID)
		clauses = append(clauses, fmt.Sprintf("a.school_id=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(a.location) LIKE %s OR LOWER(s.name) LIKE %s OR LOWER(p.brand) LIKE %s OR LOWER(p.model) LIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY a.assigned_date DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Asset
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(assetScanTargets(&asset)...); err != nil {
			return nil, err
		}
		result = append(result, asset)
	}
	return result, rows.Err()
}

func assetScanTargets(asset *domain.Asset) []any {
	return []any{
		&asset.ID,
		&asset.ProductID,
		&asset.SchoolID,
		&asset.AssignedDate,
		&asset.DeassignedAt,
		&asset.Status,
		&asset.Condition,
		&asset.Location,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	}
}
