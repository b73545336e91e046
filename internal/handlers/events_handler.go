package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/middleware"
	"github.com/booki-saas/booki-api/internal/realtime"
)

// ======================================================
// EVENTOS EM TEMPO REAL (SSE)
// ======================================================

type EventsHandler struct {
	hub *realtime.Hub
}

func NewEventsHandler(hub *realtime.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

var watchableTables = map[string]bool{
	realtime.TableBookings:     true,
	realtime.TableBlockedSlots: true,
}

// Stream mantém uma conexão SSE aberta e emite "changed" (sem payload,
// já debounced) sempre que a tabela assinada muda para a empresa. O
// front re-consulta ao receber o evento.
func (h *EventsHandler) Stream(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(string)

	table := c.DefaultQuery("table", realtime.TableBookings)
	if !watchableTables[table] {
		httperr.BadRequest(c, "invalid_table", "Tabela não observável.")
		return
	}

	changed := make(chan struct{}, 1)

	sub := h.hub.Subscribe(c.Request.Context(), table, companyID, func() {
		select {
		case changed <- struct{}{}:
		default:
			// re-fetch já pendente
		}
	})
	defer sub.Unsubscribe()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-changed:
			c.SSEvent("changed", table)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
