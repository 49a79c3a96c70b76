package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// In-memory repository fakes shared by the service tests. GetByID returns
// copies so a service mutation is only visible after Update.

// containsFold is the in-memory stand-in for the repositories'
// case-insensitive LIKE clauses.
func containsFold(haystack, term string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(term))
}

type fakeSchoolRepo struct {
	schools map[string]domain.School
}

func newFakeSchoolRepo(schools ...domain.School) *fakeSchoolRepo {
	r := &fakeSchoolRepo{schools: make(map[string]domain.School)}
	for _, s := range schools {
		r.schools[s.ID] = s
	}
	return r
}

func (r *fakeSchoolRepo) Create(_ context.Context, school *domain.School) error {
	if school.ID == "" {
		school.ID = fmt.Sprintf("school-%d", len(r.schools)+1)
	}
	r.schools[school.ID] = *school
	return nil
}

func (r *fakeSchoolRepo) Update(_ context.Context, school *domain.School) error {
	if _, ok := r.schools[school.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.schools[school.ID] = *school
	return nil
}

func (r *fakeSchoolRepo) GetByID(_ context.Context, id string) (*domain.School, error) {
	school, ok := r.schools[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &school, nil
}

func (r *fakeSchoolRepo) name(id string) string {
	if r == nil {
		return ""
	}
	return r.schools[id].Name
}

func (r *fakeSchoolRepo) ListWithFilter(_ context.Context, _ repository.SchoolFilter) ([]domain.School, error) {
	out := make([]domain.School, 0, len(r.schools))
	for _, s := range r.schools {
		out = append(out, s)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]domain.Product
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = fmt.Sprintf("product-%d", len(r.products)+1)
	}
	r.products[product.ID] = *product
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &product, nil
}

func (r *fakeProductRepo) ListWithFilter(_ context.Context, _ repository.ProductFilter) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

// fakeAssetRepo mirrors the transactional claim/release coupling between
// assets and products.
type fakeAssetRepo struct {
	assets   map[string]domain.Asset
	products *fakeProductRepo
	schools  *fakeSchoolRepo
	nextID   int
}

func newFakeAssetRepo(products *fakeProductRepo, schools *fakeSchoolRepo, assets ...domain.Asset) *fakeAssetRepo {
	r := &fakeAssetRepo{assets: make(map[string]domain.Asset), products: products, schools: schools}
	for _, a := range assets {
		r.assets[a.ID] = a
	}
	return r
}

func (r *fakeAssetRepo) Assign(_ context.Context, asset *domain.Asset) error {
	product, ok := r.products.products[asset.ProductID]
	if !ok {
		return pgx.ErrNoRows
	}
	if product.Status != domain.ProductStatusAvailable {
		return repository.ErrProductUnavailable
	}
	product.Status = domain.ProductStatusAssigned
	r.products.products[product.ID] = product

	r.nextID++
	asset.ID = fmt.Sprintf("asset-%d", r.nextID)
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = asset.CreatedAt
	r.assets[asset.ID] = *asset
	return nil
}

func (r *fakeAssetRepo) Deassign(_ context.Context, assetID string, at time.Time) (string, error) {
	asset, ok := r.assets[assetID]
	if !ok || asset.DeassignedAt != nil {
		return "", pgx.ErrNoRows
	}
	asset.DeassignedAt = &at
	asset.UpdatedAt = at
	r.assets[assetID] = asset

	product := r.products.products[asset.ProductID]
	product.Status = domain.ProductStatusAvailable
	r.products.products[product.ID] = product
	return asset.ProductID, nil
}

func (r *fakeAssetRepo) Update(_ context.Context, asset *domain.Asset) error {
	existing, ok := r.assets[asset.ID]
	if !ok || existing.DeassignedAt != nil {
		return pgx.ErrNoRows
	}
	r.assets[asset.ID] = *asset
	return nil
}

func (r *fakeAssetRepo) GetByID(_ context.Context, id string) (*domain.Asset, error) {
	asset, ok := r.assets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &asset, nil
}

func (r *fakeAssetRepo) ListWithFilter(_ context.Context, filter repository.AssetFilter) ([]domain.Asset, error) {
	out := make([]domain.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		if a.DeassignedAt != nil {
			continue
		}
		if filter.SchoolID != nil && a.SchoolID != *filter.SchoolID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if !r.matchesSearch(a, filter.Search) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// matchesSearch mirrors the SQL search clause: substring over location,
// school name and product brand/model, case-insensitive.
func (r *fakeAssetRepo) matchesSearch(a domain.Asset, search *string) bool {
	if search == nil || strings.TrimSpace(*search) == "" {
		return true
	}
	term := strings.TrimSpace(*search)
	product := r.products.products[a.ProductID]
	return containsFold(a.Location, term) ||
		containsFold(r.schools.name(a.SchoolID), term) ||
		containsFold(product.Brand, term) ||
		containsFold(product.Model, term)
}

type fakeTicketRepo struct {
	tickets    map[string]domain.Ticket
	schools    *fakeSchoolRepo
	lastFilter repository.TicketFilter
	nextID     int
}

func newFakeTicketRepo(schools *fakeSchoolRepo) *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]domain.Ticket), schools: schools}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.nextID++
	ticket.ID = fmt.Sprintf("ticket-%d", r.nextID)
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.lastFilter = filter
	out := make([]domain.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		if filter.SchoolID != nil && t.SchoolID != *filter.SchoolID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if !r.matchesSearch(t, filter.Search) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// matchesSearch mirrors the SQL search clause: substring over ticket
// number, title and school name, case-insensitive.
func (r *fakeTicketRepo) matchesSearch(t domain.Ticket, search *string) bool {
	if search == nil || strings.TrimSpace(*search) == "" {
		return true
	}
	term := strings.TrimSpace(*search)
	return containsFold(t.TicketNumber, term) ||
		containsFold(t.Title, term) ||
		containsFold(r.schools.name(t.SchoolID), term)
}

type staticNumbers struct {
	seq int
}

func (n *staticNumbers) Next(_ context.Context) string {
	n.seq++
	return fmt.Sprintf("TKT-%08d", n.seq)
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

// failingDispatcher returns err from every publish, as a dispatcher with a
// broken handler would.
type failingDispatcher struct {
	err error
}

func (d *failingDispatcher) Publish(_ context.Context, _ events.Event) error {
	return d.err
}

func (d *failingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (d *recordingDispatcher) published(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, e := range d.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
