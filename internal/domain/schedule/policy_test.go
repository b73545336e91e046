package schedule

import (
	"testing"
	"time"

	"github.com/booki-saas/booki-api/internal/models"
)

func TestCancelAndComplete(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	b := bookingAt("b1", "prof-a", "09:00")
	if err := Cancel(&b, now); err != nil {
		t.Fatalf("cancel confirmed booking: %v", err)
	}
	if b.Status != string(StatusCancelled) || b.CancelledAt == nil {
		t.Fatalf("cancel did not apply: %+v", b)
	}

	// Nenhuma transição sai de CANCELLED.
	if err := Cancel(&b, now); err == nil {
		t.Fatalf("expected invalid_state cancelling twice")
	}
	if err := Complete(&b, now); err == nil {
		t.Fatalf("expected invalid_state completing a cancelled booking")
	}

	c := bookingAt("b2", "prof-a", "09:40")
	if err := Complete(&c, now); err != nil {
		t.Fatalf("complete confirmed booking: %v", err)
	}
	if c.Status != string(StatusCompleted) || c.CompletedAt == nil {
		t.Fatalf("complete did not apply: %+v", c)
	}
}

func TestEndFromService(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	svc := &models.Service{DurationMin: 60}
	if end := EndFromService(start, svc); end.Sub(start) != time.Hour {
		t.Fatalf("expected 60min duration, got %s", end.Sub(start))
	}

	// Serviço sem duração cai no padrão de 40 minutos.
	if end := EndFromService(start, &models.Service{}); end.Sub(start) != 40*time.Minute {
		t.Fatalf("expected default 40min, got %s", end.Sub(start))
	}
	if end := EndFromService(start, nil); end.Sub(start) != 40*time.Minute {
		t.Fatalf("expected default 40min for nil service, got %s", end.Sub(start))
	}
}

func TestRelocate_PreservesDuration(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	b := bookingAt("b1", "prof-a", "09:00")
	b.EndTime = b.StartTime.Add(80 * time.Minute) // duração fora do padrão
	oldDur := b.EndTime.Sub(b.StartTime)

	// Drop em 11:00: 180 minutos da janela * 2 px/min = 360 px.
	Relocate(&b, RelocateInput{Date: date, PointerY: 360, ProfessionalID: "prof-b"})

	if SlotLabelAt(b.StartTime) != "11:00" {
		t.Fatalf("expected start 11:00, got %s", SlotLabelAt(b.StartTime))
	}
	if b.EndTime.Sub(b.StartTime) != oldDur {
		t.Fatalf("duration changed: %s != %s", b.EndTime.Sub(b.StartTime), oldDur)
	}
	if b.ProfessionalID == nil || *b.ProfessionalID != "prof-b" {
		t.Fatalf("booking must adopt the drop column's professional")
	}
}

func TestRelocate_SnapsImprecisePointer(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	b := bookingAt("b1", "prof-a", "09:00")

	// 367 px arredonda para 360 px = 180 min = 11:00.
	Relocate(&b, RelocateInput{Date: date, PointerY: 367, ProfessionalID: "prof-a"})
	if SlotLabelAt(b.StartTime) != "11:00" {
		t.Fatalf("expected snap to 11:00, got %s", SlotLabelAt(b.StartTime))
	}

	// 380 px arredonda para cima: 390 px = 195 min = 11:15.
	Relocate(&b, RelocateInput{Date: date, PointerY: 380, ProfessionalID: "prof-a"})
	if SlotLabelAt(b.StartTime) != "11:15" {
		t.Fatalf("expected snap to 11:15, got %s", SlotLabelAt(b.StartTime))
	}
}

func TestRelocate_MissingEndFallsBackToDefault(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	b := bookingAt("b1", "prof-a", "09:00")
	b.EndTime = time.Time{}

	Relocate(&b, RelocateInput{Date: date, PointerY: 0, ProfessionalID: "prof-a"})
	if b.EndTime.Sub(b.StartTime) != 40*time.Minute {
		t.Fatalf("expected default duration, got %s", b.EndTime.Sub(b.StartTime))
	}
	if SlotLabelAt(b.StartTime) != "08:00" {
		t.Fatalf("pointer at origin must land on window start, got %s", SlotLabelAt(b.StartTime))
	}
}
