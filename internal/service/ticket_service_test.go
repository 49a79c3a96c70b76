package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

var testClock = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

type ticketFixture struct {
	svc        *TicketService
	tickets    *fakeTicketRepo
	dispatcher *recordingDispatcher
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()

	schoolID := "school-1"
	products := newFakeProductRepo(domain.Product{ID: "product-1", Status: domain.ProductStatusAssigned})
	schools := newFakeSchoolRepo(
		domain.School{ID: schoolID, Name: "Northside Primary"},
		domain.School{ID: "school-2", Name: "Eastside Secondary"},
	)
	tickets := newFakeTicketRepo(schools)
	dispatcher := &recordingDispatcher{}

	svc := NewTicketService(TicketDependencies{
		TicketRepo: tickets,
		SchoolRepo: schools,
		AssetRepo: newFakeAssetRepo(products, schools, domain.Asset{
			ID:        "asset-1",
			ProductID: "product-1",
			SchoolID:  schoolID,
			Status:    domain.AssetStatusInService,
		}),
		UserRepo:   newFakeUserRepo(domain.User{ID: "tech-1", Name: "Sam", Role: domain.UserRoleAdmin}),
		Numbers:    &staticNumbers{},
		Dispatcher: dispatcher,
	})
	svc.now = func() time.Time { return testClock }

	return &ticketFixture{svc: svc, tickets: tickets, dispatcher: dispatcher}
}

func (f *ticketFixture) createTicket(t *testing.T, priority domain.TicketPriority) *domain.Ticket {
	t.Helper()

	ticket, err := f.svc.Create(context.Background(), nil, TicketCreateInput{
		SchoolID:    "school-1",
		Title:       "Projector flickers",
		Description: "Room 12 projector cuts out intermittently",
		Category:    domain.TicketCategoryHardware,
		Priority:    priority,
		RaisedBy:    "Front office",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return ticket
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()

	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError %s, got %v", code, err)
	}
	if domainErr.Code != code {
		t.Fatalf("error code = %s, want %s (%v)", domainErr.Code, code, err)
	}
}

func TestTicketCreateSnapshotsSLA(t *testing.T) {
	t.Parallel()

	f := newTicketFixture(t)
	ticket := f.createTicket(t, domain.TicketPriorityP1)

	if ticket.Status != domain.TicketStatusNew {
		t.Errorf("status = %s, want new", ticket.Status)
	}
	if ticket.TicketNumber == "" {
		t.Error("ticket number not allocated")
	}
	if got, want := ticket.SLA.ResponseDeadline, testClock.Add(4*time.Hour); !got.Equal(want) {
		t.Errorf("response deadline = %v, want %v", got, want)
	}
	if got, want := ticket.SLA.ResolutionDeadline, testClock.Add(24*time.Hour); !got.Equal(want) {
		t.Errorf("resolution deadline = %v, want %v", got, want)
	}
	if len(f.dispatcher.published(events.EventTicketCreated)) != 1 {
		t.Error("expected one ticket_created event")
	}
}

func TestTicketCreateDefaultsPriority(t *testing.T) {
	t.Parallel()

	f := newTicketFixture(t)
	ticket, err := f.svc.Create(context.Background(), nil, TicketCreateInput{
		SchoolID:    "school-1",
		Title:       "No sound",
		Description: "Speakers silent in the library",
		Category:    domain.TicketCategoryHardware,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.Priority != domain.TicketPriorityP3 {
		t.Errorf("priority = %s, want P3", ticket.Priority)
	}
	if got, want := ticket.SLA.ResponseDeadline, testClock.Add(24*time.Hour); !got.Equal(want) {
		t.Errorf("response deadline = %v, want %v", got, want)
	}
}

func TestTicketCreateValidation(t *testing.T) {
	t.Parallel()

	otherAsset := "asset-1"
	missingAsset := "asset-404"

	tests := []struct {
		name     string
		input    TicketCreateInput
		wantCode string
	}{
		{
			name:     "missing title",
			input:    TicketCreateInput{SchoolID: "school-1", Description: "d", Category: domain.TicketCategoryOther},
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "invalid category",
			input:    TicketCreateInput{SchoolID: "school-1", Title: "t", Description: "d", Category: "plumbing"},
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "invalid priority",
			input:    TicketCreateInput{SchoolID: "school-1", Title: "t", Description: "d", Category: domain.TicketCategoryOther, Priority: "P0"},
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "unknown school",
			input:    TicketCreateInput{SchoolID: "school-404", Title: "t", Description: "d", Category: domain.TicketCategoryOther},
			wantCode: "NOT_FOUND",
		},
		{
			name:     "unknown asset",
			input:    TicketCreateInput{SchoolID: "school-1", AssetID: &missingAsset, Title: "t", Description: "d", Category: domain.TicketCategoryOther},
			wantCode: "NOT_FOUND",
		},
		{
			name:     "asset from another school",
			input:    TicketCreateInput{SchoolID: "school-2", AssetID: &otherAsset, Title: "t", Description: "d", Category: domain.TicketCategoryOther},
			wantCode: "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newTicketFixture(t)
			_, err := f.svc.Create(context.Background(), nil, tt.input)
			assertCode(t, err, tt.wantCode)
		})
	}
}

func TestTicketTransitionRecordsResponseOnce(t *testing.T) {
	t.Parallel()

	f := newTicketFixture(t)
	ticket := f.createTicket(t, domain.TicketPriorityP1)

	// Inside the 4h response window.
	f.svc.now = func() time.Time { return testClock.Add(time.Hour) }
	updated, err := f.svc.Transition(context.Background(), nil, ticket.ID, domain.TicketStatusInProgress)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if updated.SLA.ResponseMet == nil || !*updated.SLA.ResponseMet {
		t.Fatal("response_met should be recorded as true")
	}

	// Bouncing through another response state later must not rewrite it.
	f.svc.now = func() time.Time { return testClock.Add(10 * time.Hour) }
	if _, err := f.svc.Transition(context.Background(), nil, ticket.ID, domain.TicketStatusAwaitingCustomer); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	updated, err = f.svc.Transition(context.Background(), nil, ticket.ID, domain.TicketStatusAssigned)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if updated.SLA.ResponseMet == nil || !*updated.SLA.ResponseMet {
		t.Fatal("response_met must keep its first recorded value")
	}
	if breaches := f.dispatcher.published(events.EventSLABreached); len(breaches) != 0 {
		t.Fatalf("no breach expected, got %d", len(breaches))
	}
}

func TestTicketLateResolutionBreachSurvivesReopen(t *testing.T) {
	t.Parallel()

	f := newTicketFixture(t)
	ticket := f.createTicket(t, domain.TicketPriorityP1)

	// Resolve two hours past the 24h resolution deadline.
	f.svc.now = func() time.Time { return testClock.Add(26 * time.Hour) }
	updated, err := f.svc.Transition(context.Background(), nil, ticket.ID, domain.TicketStatusResolved)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if updated.SLA.ResolutionMet == nil || *updated.SLA.ResolutionMet {
		t.Fatal("resolution_met should be recorded as false")
	}
	if breaches := f.dispatcher.published(events.EventSLABreached); len(breaches) != 1 {
		t.Fatalf("expected one sla_breached event, got %d", len(breaches))
	}

	// Reopen and resolve again; the first verdict stands.
	if _, err := f.svc.Transition(context.Background(), nil, ticket.ID, domain.TicketStatusInProgress); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	f.svc.now = func() time.Time { return testClock.Add(30 * time.Hour) }
	updated, err = f.svc.Transition(context.Background(), nil, ticket.ID, domain.TicketStatusResolved)
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if updated.SLA.ResolutionMet == nil || *updated.SLA.ResolutionMet {
		t.Fatal("resolution_met must keep its first recorded value")
	}
	if breaches := f.dispatcher.published(events.EventSLABreached); len(breaches) != 1 {
		t.Fatalf("breach must not be re-published, got %d", len(breaches))
	}
}

func TestTicketTransitionInvalidStatus(t *testing.T) {
	t.Parallel()

	f := newTicketFixture(t)
	ticket := f.createTicket(t, domain.TicketPriorityP2)

	_, err := f.svc.Transition(context.Background(), nil, ticket.ID, "escalated")
	assertCode(t, err, "INVALID_STATUS")

	_, err = f.svc.Transition(context.Background(), nil, "ticket-404", domain.TicketStatusClosed)
	assertCode(t, err, "NOT_FOUND")
}

func TestTicketAssignRecordsResponse(t *testing.T) {
	t.Parallel()

	f := newTicketFixture(t)
	ticket := f.createTicket(t, domain.TicketPriorityP2)

	updated, err := f.svc.Assign(context.Background(), nil, ticket.ID, "tech-1")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if updated.Status != domain.TicketStatusAssigned {
		t.Errorf("status = %s, want assigned", updated.Status)
	}
	if updated.AssignedTo == nil || *updated.AssignedTo != "tech-1" {
		t.Error("assignee not recorded")
	}
	if updated.SLA.ResponseMet == nil || !*updated.SLA.ResponseMet {
		t.Error("assignment should count as the first response")
	}

	_, err = f.svc.Assign(context.Background(), nil, ticket.ID, "user-404")
	assertCode(t, err, "NOT_FOUND")
}

func TestTicketSchoolScope(t *testing.T) {
	t.Parallel()

	f := newTicketFixture(t)
	ticket := f.createTicket(t, domain.TicketPriorityP3)

	otherSchool := "school-2"
	outsider := &domain.User{ID: "user-2", Role: domain.UserRoleSchoolAdmin, SchoolID: &otherSchool}

	_, err := f.svc.Get(context.Background(), outsider, ticket.ID)
	assertCode(t, err, "FORBIDDEN")

	// Listing silently narrows to the actor's school.
	tickets, err := f.svc.List(context.Background(), outsider, TicketListInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tickets) != 0 {
		t.Fatalf("expected empty scoped list, got %d", len(tickets))
	}
	if f.tickets.lastFilter.SchoolID == nil || *f.tickets.lastFilter.SchoolID != otherSchool {
		t.Error("list filter not scoped to the actor's school")
	}

	admin := &domain.User{ID: "admin-1", Role: domain.UserRoleAdmin}
	tickets, err = f.svc.List(context.Background(), admin, TicketListInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tickets) != 1 {
		t.Fatalf("admin should see every school, got %d tickets", len(tickets))
	}
}

func TestTicketListSearch(t *testing.T) {
	t.Parallel()

	f := newTicketFixture(t)
	projector := f.createTicket(t, domain.TicketPriorityP3) // TKT-00000001, school-1
	laptop, err := f.svc.Create(context.Background(), nil, TicketCreateInput{
		SchoolID:    "school-2",
		Title:       "Laptop battery swollen",
		Description: "Device pulled from the year 8 trolley",
		Category:    domain.TicketCategoryHardware,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "ticket number", term: "00000002", want: []string{laptop.ID}},
		{name: "title case-insensitive", term: "PROJECTOR", want: []string{projector.ID}},
		{name: "school name", term: "eastside", want: []string{laptop.ID}},
		{name: "number prefix hits both", term: "tkt-", want: []string{projector.ID, laptop.ID}},
		{name: "whitespace trimmed", term: "  flickers  ", want: []string{projector.ID}},
		{name: "no match", term: "smartboard", want: nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tickets, err := f.svc.List(context.Background(), nil, TicketListInput{Search: &tt.term})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			got := make(map[string]bool, len(tickets))
			for _, ticket := range tickets {
				got[ticket.ID] = true
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tickets, want %d", len(got), len(tt.want))
			}
			for _, id := range tt.want {
				if !got[id] {
					t.Errorf("ticket %s missing from results", id)
				}
			}
		})
	}

	// A scoped actor cannot search into another school.
	schoolOne := "school-1"
	scoped := &domain.User{ID: "user-1", Role: domain.UserRoleSchoolAdmin, SchoolID: &schoolOne}
	term := "eastside"
	tickets, err := f.svc.List(context.Background(), scoped, TicketListInput{Search: &term})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tickets) != 0 {
		t.Fatalf("scoped search leaked %d tickets from another school", len(tickets))
	}
}

func TestTicketCreateSurvivesHandlerFailure(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	schools := newFakeSchoolRepo(domain.School{ID: "school-1", Name: "Northside Primary"})
	svc := NewTicketService(TicketDependencies{
		TicketRepo: newFakeTicketRepo(schools),
		SchoolRepo: schools,
		Numbers:    &staticNumbers{},
		Dispatcher: &failingDispatcher{err: errors.New("smtp relay down")},
		Logger:     zap.New(core),
	})
	svc.now = func() time.Time { return testClock }

	ticket, err := svc.Create(context.Background(), nil, TicketCreateInput{
		SchoolID:    "school-1",
		Title:       "No sound",
		Description: "Speakers silent in the library",
		Category:    domain.TicketCategoryHardware,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.ID == "" {
		t.Fatal("ticket not persisted")
	}
	if entries := logs.FilterMessage("event handler failed").All(); len(entries) != 1 {
		t.Fatalf("expected one handler warning, got %d", len(entries))
	}
}
