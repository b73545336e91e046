package schedule

import (
	"time"

	"github.com/booki-saas/booki-api/internal/models"
)

// ===============================
// Availability Evaluator
// ===============================

// Day é o snapshot em memória do dia selecionado: reservas não
// canceladas, bloqueios explícitos e o quadro de profissionais da
// empresa. O snapshot é recarregado por navegação ou por evento de
// mudança do store; entre recargas ele pode estar defasado.
type Day struct {
	Bookings          []models.Booking
	Blocked           []models.BlockedSlot
	ProfessionalCount int
	Location          *time.Location
}

// Query descreve o slot candidato.
type Query struct {
	// Slot é o rótulo "HH:MM" da grade fixa.
	Slot string

	// ProfessionalID vazio significa "qualquer profissional disponível".
	ProfessionalID string

	// ExcludeBookingID remove a própria reserva do cálculo de ocupação.
	// Sem isso, uma edição sem mudança de horário conflitaria consigo
	// mesma no modo de profissional específico.
	ExcludeBookingID string
}

// IsOfferable decide se o slot pode ser oferecido a um cliente.
//
// Regras, nesta ordem:
//  1. Bloqueio explícito na data/rótulo fecha o slot para todos os
//     profissionais, independente de ocupação.
//  2. Ocupação é casada por rótulo exato: uma reserva ocupa o slot cujo
//     horário de parede local de início formata exatamente para o
//     rótulo. Reservas fora da grade não são detectadas (aproximação
//     assumida; a criação e o drag sempre alinham à grade).
//  3. Profissional específico: ocupado se ele já tem reserva no rótulo.
//  4. "Qualquer": ofertável enquanto a contagem de reservas no rótulo
//     for menor que o total de profissionais. Empresa sem profissional
//     cadastrado nunca oferta (não haveria a quem atribuir).
func (d Day) IsOfferable(q Query) bool {
	for _, bs := range d.Blocked {
		if bs.SlotTime == q.Slot {
			return false
		}
	}

	at := d.bookingsAtSlot(q.Slot, q.ExcludeBookingID)

	if q.ProfessionalID != "" {
		for _, b := range at {
			if b.ProfessionalID != nil && *b.ProfessionalID == q.ProfessionalID {
				return false
			}
		}
		return true
	}

	if d.ProfessionalCount <= 0 {
		return false
	}
	return len(at) < d.ProfessionalCount
}

// OfferableSlots filtra a lista fixa de rótulos para o seletor de
// horário. Recalculado sempre que data, profissional ou os snapshots
// carregados mudam.
func (d Day) OfferableSlots(slots []string, professionalID, excludeBookingID string) []string {
	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		q := Query{
			Slot:             slot,
			ProfessionalID:   professionalID,
			ExcludeBookingID: excludeBookingID,
		}
		if d.IsOfferable(q) {
			out = append(out, slot)
		}
	}
	return out
}

func (d Day) bookingsAtSlot(slot, excludeID string) []models.Booking {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}

	var at []models.Booking
	for _, b := range d.Bookings {
		// Início zerado não corresponde a nenhum rótulo da grade.
		if b.StartTime.IsZero() {
			continue
		}
		if b.Status == string(StatusCancelled) {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if SlotLabelAt(b.StartTime.In(loc)) == slot {
			at = append(at, b)
		}
	}
	return at
}
