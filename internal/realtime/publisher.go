package realtime

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/booki-saas/booki-api/internal/config"
)

// Notificação de mudança por pub/sub: um canal por tabela+empresa. O
// evento não carrega payload — o assinante só aprende que "algo mudou"
// e re-consulta o store.

const (
	TableBookings     = "bookings"
	TableBlockedSlots = "blocked_slots"
)

func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

func channelFor(table, companyID string) string {
	return fmt.Sprintf("booki:changes:%s:%s", table, companyID)
}

type Publisher struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewPublisher(rdb *redis.Client, log *zap.Logger) *Publisher {
	return &Publisher{rdb: rdb, log: log}
}

// Changed publica um evento de mudança para a tabela/empresa. Melhor
// esforço: falha de publicação não falha a operação de escrita que a
// originou.
func (p *Publisher) Changed(ctx context.Context, table, companyID string) {
	if p == nil || p.rdb == nil {
		return
	}
	if err := p.rdb.Publish(ctx, channelFor(table, companyID), "changed").Err(); err != nil {
		p.log.Warn("realtime publish failed",
			zap.String("table", table),
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	}
}

func (p *Publisher) BookingsChanged(ctx context.Context, companyID string) {
	p.Changed(ctx, TableBookings, companyID)
}

func (p *Publisher) BlockedSlotsChanged(ctx context.Context, companyID string) {
	p.Changed(ctx, TableBlockedSlots, companyID)
}
