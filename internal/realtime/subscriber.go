package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Hub entrega eventos de mudança a assinantes. Cada assinatura é um
// handle cancelável; o callback é debounced para evitar tempestades de
// re-fetch quando várias escritas chegam em sequência.
type Hub struct {
	rdb      *redis.Client
	log      *zap.Logger
	debounce time.Duration
}

func NewHub(rdb *redis.Client, log *zap.Logger, debounce time.Duration) *Hub {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Hub{rdb: rdb, log: log, debounce: debounce}
}

type Subscription struct {
	pubsub *redis.PubSub
	deb    *debouncer
	once   sync.Once
}

// Unsubscribe encerra a assinatura. Obrigatório no teardown de quem
// assinou; depois do retorno nenhum callback novo é disparado.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.deb.stop()
		_ = s.pubsub.Close()
	})
}

// Subscribe entrega onChange (debounced) a cada evento de mudança da
// tabela/empresa. O evento não tem payload: o callback deve re-consultar.
// onChange não pode chamar Unsubscribe da própria assinatura.
func (h *Hub) Subscribe(ctx context.Context, table, companyID string, onChange func()) *Subscription {
	pubsub := h.rdb.Subscribe(ctx, channelFor(table, companyID))
	deb := newDebouncer(h.debounce, onChange)

	sub := &Subscription{pubsub: pubsub, deb: deb}

	go func() {
		for range pubsub.Channel() {
			deb.trigger()
		}
	}()

	return sub
}

// debouncer adia fn até que os eventos parem de chegar pela janela
// configurada (trailing edge). A janela tolera o atraso de consistência
// eventual do store; não é mecanismo de correção.
type debouncer struct {
	window time.Duration
	fn     func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func newDebouncer(window time.Duration, fn func()) *debouncer {
	return &debouncer{window: window, fn: fn}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire executa fn segurando o lock: stop() só retorna depois de um
// disparo em andamento terminar, e nenhum disparo começa depois de
// stop(). Por isso fn não pode chamar trigger/stop do mesmo debouncer.
func (d *debouncer) fire() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.fn()
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
