package schedule

import (
	"testing"
	"time"

	"github.com/booki-saas/booki-api/internal/models"
)

var testLoc = time.UTC

func bookingAt(id, profID, label string) models.Booking {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, testLoc)
	start, err := LabelTimeOn(date, label)
	if err != nil {
		panic(err)
	}
	b := models.Booking{
		ID:        id,
		StartTime: start,
		EndTime:   start.Add(40 * time.Minute),
		Status:    string(StatusConfirmed),
	}
	if profID != "" {
		b.ProfessionalID = &profID
	}
	return b
}

func TestIsOfferable_SpecificProfessional(t *testing.T) {
	// Dois profissionais (A, B); A tem reserva às 09:00.
	day := Day{
		Bookings:          []models.Booking{bookingAt("b1", "prof-a", "09:00")},
		ProfessionalCount: 2,
		Location:          testLoc,
	}

	if day.IsOfferable(Query{Slot: "09:00", ProfessionalID: "prof-a"}) {
		t.Fatalf("09:00 should be taken for prof-a")
	}
	if !day.IsOfferable(Query{Slot: "09:00", ProfessionalID: "prof-b"}) {
		t.Fatalf("09:00 should be free for prof-b")
	}
	if !day.IsOfferable(Query{Slot: "09:40", ProfessionalID: "prof-a"}) {
		t.Fatalf("09:40 should be free for prof-a")
	}
}

func TestIsOfferable_AnyProfessionalCapacity(t *testing.T) {
	day := Day{
		Bookings:          []models.Booking{bookingAt("b1", "prof-a", "09:00")},
		ProfessionalCount: 2,
		Location:          testLoc,
	}

	// Só 1 de 2 profissionais ocupados: ainda ofertável.
	if !day.IsOfferable(Query{Slot: "09:00"}) {
		t.Fatalf("expected 09:00 offerable with 1 of 2 professionals booked")
	}

	// Segunda reserva no mesmo rótulo fecha o slot.
	day.Bookings = append(day.Bookings, bookingAt("b2", "prof-b", "09:00"))
	if day.IsOfferable(Query{Slot: "09:00"}) {
		t.Fatalf("expected 09:00 full with 2 of 2 professionals booked")
	}
}

func TestIsOfferable_ZeroProfessionals(t *testing.T) {
	// Sem profissionais cadastrados não há a quem atribuir: nunca oferta.
	day := Day{ProfessionalCount: 0, Location: testLoc}

	if day.IsOfferable(Query{Slot: "09:00"}) {
		t.Fatalf("company without professionals must not offer slots")
	}
}

func TestIsOfferable_BlockOverridesEverything(t *testing.T) {
	day := Day{
		Blocked:           []models.BlockedSlot{{SlotDate: "2026-03-10", SlotTime: "10:20"}},
		ProfessionalCount: 2,
		Location:          testLoc,
	}

	if day.IsOfferable(Query{Slot: "10:20"}) {
		t.Fatalf("blocked slot must not be offerable in any-professional mode")
	}
	if day.IsOfferable(Query{Slot: "10:20", ProfessionalID: "prof-a"}) {
		t.Fatalf("blocked slot must not be offerable for a specific professional")
	}
	if !day.IsOfferable(Query{Slot: "09:00"}) {
		t.Fatalf("other slots must stay offerable")
	}
}

func TestIsOfferable_CancellationFreesSlot(t *testing.T) {
	b := bookingAt("b1", "prof-a", "09:00")
	b.Status = string(StatusCancelled)

	day := Day{
		Bookings:          []models.Booking{b},
		ProfessionalCount: 1,
		Location:          testLoc,
	}

	if !day.IsOfferable(Query{Slot: "09:00", ProfessionalID: "prof-a"}) {
		t.Fatalf("cancelled booking must not count toward occupancy")
	}
}

func TestIsOfferable_SelfExclusionOnEdit(t *testing.T) {
	// Editar sem mudar o horário não pode conflitar consigo mesmo.
	day := Day{
		Bookings:          []models.Booking{bookingAt("b1", "prof-a", "09:00")},
		ProfessionalCount: 1,
		Location:          testLoc,
	}

	if day.IsOfferable(Query{Slot: "09:00", ProfessionalID: "prof-a"}) {
		t.Fatalf("slot should look taken without self exclusion")
	}
	if !day.IsOfferable(Query{Slot: "09:00", ProfessionalID: "prof-a", ExcludeBookingID: "b1"}) {
		t.Fatalf("no-op edit must see its own slot as offerable")
	}
}

func TestIsOfferable_ZeroStartTimeSkipped(t *testing.T) {
	day := Day{
		Bookings:          []models.Booking{{ID: "broken", Status: string(StatusConfirmed)}},
		ProfessionalCount: 1,
		Location:          testLoc,
	}

	for _, slot := range DefaultSlots {
		if !day.IsOfferable(Query{Slot: slot}) {
			t.Fatalf("booking without start time must not occupy slot %s", slot)
		}
	}
}

func TestOfferableSlots(t *testing.T) {
	slots := []string{"09:00", "09:40", "10:20"}
	day := Day{
		Bookings: []models.Booking{
			bookingAt("b1", "prof-a", "09:00"),
			bookingAt("b2", "prof-b", "09:00"),
		},
		Blocked:           []models.BlockedSlot{{SlotTime: "10:20"}},
		ProfessionalCount: 2,
		Location:          testLoc,
	}

	got := day.OfferableSlots(slots, "", "")
	if len(got) != 1 || got[0] != "09:40" {
		t.Fatalf("expected only 09:40 offerable, got %v", got)
	}

	// prof-b livre às 09:00? Não: b2 é dele. prof-c (inexistente na
	// lista) veria 09:00 livre, 10:20 segue bloqueado.
	got = day.OfferableSlots(slots, "prof-c", "")
	if len(got) != 2 || got[0] != "09:00" || got[1] != "09:40" {
		t.Fatalf("expected [09:00 09:40], got %v", got)
	}
}

func TestIsOfferable_LabelMatchUsesLocalWallClock(t *testing.T) {
	// Reserva gravada em UTC deve ocupar o rótulo do horário de parede
	// local da empresa.
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 12:00 UTC == 09:00 em São Paulo (UTC-3).
	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	profID := "prof-a"
	day := Day{
		Bookings: []models.Booking{{
			ID:             "b1",
			ProfessionalID: &profID,
			StartTime:      start,
			EndTime:        start.Add(40 * time.Minute),
			Status:         string(StatusConfirmed),
		}},
		ProfessionalCount: 1,
		Location:          loc,
	}

	if day.IsOfferable(Query{Slot: "09:00", ProfessionalID: "prof-a"}) {
		t.Fatalf("expected 09:00 local wall clock to be occupied")
	}
	if day.IsOfferable(Query{Slot: "12:00", ProfessionalID: "prof-a"}) == false {
		t.Fatalf("12:00 local is not the booking's wall clock, must stay offerable")
	}
}
