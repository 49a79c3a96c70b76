package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// AssetService is the assignment engine: it owns the product/asset pair
// invariant (a product is assigned iff exactly one active asset references
// it) and the asset read/update path.
type AssetService struct {
	assets     repository.AssetRepository
	products   repository.ProductRepository
	schools    repository.SchoolRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// AssetDependencies bundles collaborators for the asset service.
type AssetDependencies struct {
	AssetRepo   repository.AssetRepository
	ProductRepo repository.ProductRepository
	SchoolRepo  repository.SchoolRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// AssignInput describes an assignment request.
type AssignInput struct {
	ProductID string
	SchoolID  string
	Location  string
	Condition domain.AssetCondition
}

// AssetUpdateInput carries the optional field patch for an asset.
type AssetUpdateInput struct {
	Status    *domain.AssetStatus
	Condition *domain.AssetCondition
	Location  *string
}

// AssetListInput describes the filters of the asset read path.
type AssetListInput struct {
	Search   *string
	Status   *domain.AssetStatus
	SchoolID *string
	Limit    int
	Offset   int
}

// NewAssetService constructs the service.
func NewAssetService(deps AssetDependencies) *AssetService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetService{
		assets:     deps.AssetRepo,
		products:   deps.ProductRepo,
		schools:    deps.SchoolRepo,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Assign creates an in-service asset for an available product. The product
// claim and the asset insert commit together or not at all.
func (s *AssetService) Assign(ctx context.Context, actor *domain.User, input AssignInput) (*domain.Asset, error) {
	if input.ProductID == "" || input.SchoolID == "" {
		return nil, apperrors.NewValidationError("product_id and school_id required", nil)
	}
	if input.Condition == "" {
		input.Condition = domain.AssetConditionGood
	}
	if !domain.ValidAssetCondition(input.Condition) {
		return nil, apperrors.NewValidationError("invalid condition", map[string]any{"condition": input.Condition})
	}

	if _, err := s.schools.GetByID(ctx, input.SchoolID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("school", map[string]any{"school_id": input.SchoolID})
		}
		return nil, apperrors.MapError(err)
	}

	asset := &domain.Asset{
		ProductID:    input.ProductID,
		SchoolID:     input.SchoolID,
		AssignedDate: s.now(),
		Status:       domain.AssetStatusInService,
		Condition:    input.Condition,
		Location:     input.Location,
	}
	if err := s.assets.Assign(ctx, asset); err != nil {
		if errors.Is(err, repository.ErrProductUnavailable) {
			return nil, apperrors.NewConflict("product is not available", map[string]any{"product_id": input.ProductID})
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"product_id": input.ProductID})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, actor, events.Event{
		Type:      events.EventAssetAssigned,
		SubjectID: asset.ID,
		Payload: events.AssetAssignedPayload{
			ProductID: asset.ProductID,
			SchoolID:  asset.SchoolID,
		},
	})
	return asset, nil
}

// Deassign archives the asset and releases its product back to available,
// atomically.
func (s *AssetService) Deassign(ctx context.Context, actor *domain.User, assetID string) error {
	productID, err := s.assets.Deassign(ctx, assetID, s.now())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("asset", map[string]any{"asset_id": assetID})
		}
		return apperrors.MapError(err)
	}
	s.publish(ctx, actor, events.Event{
		Type:      events.EventAssetDeassigned,
		SubjectID: assetID,
		Payload:   events.AssetDeassignedPayload{ProductID: productID},
	})
	return nil
}

// Update patches asset fields. Idempotent; never touches the product.
func (s *AssetService) Update(ctx context.Context, actor *domain.User, assetID string, input AssetUpdateInput) (*domain.Asset, error) {
	if input.Status != nil && !domain.ValidAssetStatus(*input.Status) {
		return nil, apperrors.NewInvalidStatus(string(*input.Status))
	}
	if input.Condition != nil && !domain.ValidAssetCondition(*input.Condition) {
		return nil, apperrors.NewValidationError("invalid condition", map[string]any{"condition": *input.Condition})
	}

	asset, err := s.getScoped(ctx, actor, assetID)
	if err != nil {
		return nil, err
	}
	if input.Status != nil {
		asset.Status = *input.Status
	}
	if input.Condition != nil {
		asset.Condition = *input.Condition
	}
	if input.Location != nil {
		asset.Location = *input.Location
	}
	asset.UpdatedAt = s.now()

	if err := s.assets.Update(ctx, asset); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("asset", map[string]any{"asset_id": assetID})
		}
		return nil, apperrors.MapError(err)
	}
	return asset, nil
}

// Get fetches an active asset respecting the actor's school scope.
func (s *AssetService) Get(ctx context.Context, actor *domain.User, assetID string) (*domain.Asset, error) {
	return s.getScoped(ctx, actor, assetID)
}

// List returns active assets matching the filters, scoped to the actor's
// school for school_admin accounts.
func (s *AssetService) List(ctx context.Context, actor *domain.User, input AssetListInput) ([]domain.Asset, error) {
	filter := repository.AssetFilter{
		Search:   input.Search,
		Status:   input.Status,
		SchoolID: input.SchoolID,
		Limit:    input.Limit,
		Offset:   input.Offset,
	}
	if scope := actor.ScopedToSchool(); scope != nil {
		filter.SchoolID = scope
	}
	assets, err := s.assets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assets, nil
}

// CreateProduct registers an inventory item as available.
func (s *AssetService) CreateProduct(ctx context.Context, input domain.Product) (*domain.Product, error) {
	if input.Category == "" {
		return nil, apperrors.NewValidationError("category required", nil)
	}
	product := input
	product.Status = domain.ProductStatusAvailable
	if err := s.products.Create(ctx, &product); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &product, nil
}

// GetProduct fetches a product by id.
func (s *AssetService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product", map[string]any{"product_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return product, nil
}

// ListProducts returns products matching the filters.
func (s *AssetService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	products, err := s.products.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return products, nil
}

func (s *AssetService) getScoped(ctx context.Context, actor *domain.User, assetID string) (*domain.Asset, error) {
	asset, err := s.assets.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("asset", map[string]any{"asset_id": assetID})
		}
		return nil, apperrors.MapError(err)
	}
	if !asset.Active() {
		return nil, apperrors.NewNotFound("asset", map[string]any{"asset_id": assetID})
	}
	if scope := actor.ScopedToSchool(); scope != nil && asset.SchoolID != *scope {
		return nil, apperrors.NewForbidden("asset belongs to another school")
	}
	return asset, nil
}

func (s *AssetService) publish(ctx context.Context, actor *domain.User, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if actor != nil {
		event.Actor = events.Actor{UserID: actor.ID}
	}
	// Handler failures must not fail the write that triggered the event.
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("subject_id", event.SubjectID),
			zap.Error(err))
	}
}
