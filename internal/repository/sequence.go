package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const ticketSequenceKey = "helpdesk:seq:ticket"

// TicketNumberAllocator issues unique ticket numbers.
type TicketNumberAllocator interface {
	Next(ctx context.Context) string
}

type redisTicketNumbers struct {
	client *redis.Client
}

// NewTicketNumberAllocator builds an allocator backed by a Redis counter.
// When Redis is unreachable (or no client is configured) it falls back to a
// uuid-suffixed number, which keeps uniqueness without the monotonic run.
func NewTicketNumberAllocator(client *redis.Client) TicketNumberAllocator {
	return &redisTicketNumbers{client: client}
}

func (a *redisTicketNumbers) Next(ctx context.Context) string {
	if a.client != nil {
		seq, err := a.client.Incr(ctx, ticketSequenceKey).Result()
		if err == nil {
			return fmt.Sprintf("TKT-%08d", seq)
		}
	}
	return fallbackTicketNumber()
}

func fallbackTicketNumber() string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
