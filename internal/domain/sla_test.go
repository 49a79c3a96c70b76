package domain

import (
	"testing"
	"time"
)

func TestPolicyDeadlines(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	policy := DefaultSLAPolicy()

	tests := []struct {
		name           string
		priority       TicketPriority
		wantResponse   time.Time
		wantResolution time.Time
	}{
		{
			name:           "p1",
			priority:       TicketPriorityP1,
			wantResponse:   createdAt.Add(4 * time.Hour),
			wantResolution: createdAt.Add(24 * time.Hour),
		},
		{
			name:           "p2",
			priority:       TicketPriorityP2,
			wantResponse:   createdAt.Add(8 * time.Hour),
			wantResolution: createdAt.Add(48 * time.Hour),
		},
		{
			name:           "p3",
			priority:       TicketPriorityP3,
			wantResponse:   createdAt.Add(24 * time.Hour),
			wantResolution: createdAt.Add(120 * time.Hour),
		},
		{
			name:           "p4",
			priority:       TicketPriorityP4,
			wantResponse:   createdAt.Add(48 * time.Hour),
			wantResolution: createdAt.Add(240 * time.Hour),
		},
		{
			name:           "unknown priority falls back to p3",
			priority:       TicketPriority("p9"),
			wantResponse:   createdAt.Add(24 * time.Hour),
			wantResolution: createdAt.Add(120 * time.Hour),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sla := policy.Deadlines(tt.priority, createdAt)
			if !sla.ResponseDeadline.Equal(tt.wantResponse) {
				t.Errorf("response deadline = %v, want %v", sla.ResponseDeadline, tt.wantResponse)
			}
			if !sla.ResolutionDeadline.Equal(tt.wantResolution) {
				t.Errorf("resolution deadline = %v, want %v", sla.ResolutionDeadline, tt.wantResolution)
			}
			if sla.ResponseMet != nil || sla.ResolutionMet != nil {
				t.Error("met flags must start unset")
			}
		})
	}
}

func TestPolicyDeadlinesOverride(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	policy := SLAPolicy{
		TicketPriorityP1: {ResponseHours: 1, ResolutionHours: 2},
		TicketPriorityP3: {ResponseHours: 10, ResolutionHours: 20},
	}

	sla := policy.Deadlines(TicketPriorityP1, createdAt)
	if got, want := sla.ResponseDeadline, createdAt.Add(time.Hour); !got.Equal(want) {
		t.Errorf("response deadline = %v, want %v", got, want)
	}
	if got, want := sla.ResolutionDeadline, createdAt.Add(2*time.Hour); !got.Equal(want) {
		t.Errorf("resolution deadline = %v, want %v", got, want)
	}
}

func TestFirstResponseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status TicketStatus
		want   bool
	}{
		{TicketStatusNew, false},
		{TicketStatusAssigned, true},
		{TicketStatusInProgress, true},
		{TicketStatusAwaitingCustomer, false},
		{TicketStatusResolved, false},
		{TicketStatusClosed, false},
	}

	for _, tt := range tests {
		tt := tt
		if got := FirstResponseStatus(tt.status); got != tt.want {
			t.Errorf("FirstResponseStatus(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
