package schedule

import (
	"time"

	"github.com/booki-saas/booki-api/internal/models"
)

// ===============================
// Conflict-Avoidance Policy
// ===============================
//
// A prevenção de conflito é consultiva: o seletor de horário só oferece
// rótulos ofertáveis no momento do carregamento e nenhuma operação
// revalida disponibilidade na gravação. Dois clientes simultâneos ainda
// podem reservar o mesmo slot; a corrida é aceita porque o store não
// tem fronteira transacional para isso.

// Domain Actions

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

// EndFromService deriva o fim da reserva a partir do serviço escolhido;
// serviço ausente ou sem duração cai no padrão de 40 minutos.
func EndFromService(start time.Time, svc *models.Service) time.Time {
	return start.Add(time.Duration(svc.Duration()) * time.Minute)
}

// RelocateInput é a posição de drop de um drag dentro da coluna de um
// profissional, no dia selecionado.
type RelocateInput struct {
	// Date é o dia selecionado (meia-noite no fuso da empresa).
	Date time.Time

	// PointerY é a posição vertical bruta do ponteiro dentro da coluna.
	PointerY int

	// ProfessionalID é a coluna onde a reserva foi solta. Assumido
	// incondicionalmente, sem checagem de disponibilidade — o drop
	// prioriza resposta imediata sobre prevenção estrita.
	ProfessionalID string
}

// Relocate aplica um drag-and-drop à reserva: alinha o ponteiro à
// grade, deriva o novo início no dia selecionado e preserva a duração
// original (não recalcula pela definição do serviço). A gravação deve
// ser um único update de início, fim e profissional; se falhar, o
// chamador reverte visualmente para o slot original.
func Relocate(b *models.Booking, in RelocateInput) {
	snapped := SnapToGrid(in.PointerY, SnapStepPixels)
	minutes := MinutesFromPixel(snapped)

	newStart := TimeAtMinutes(in.Date, minutes)

	dur := b.EndTime.Sub(b.StartTime)
	if b.EndTime.IsZero() || dur <= 0 {
		dur = time.Duration(models.DefaultServiceDuration) * time.Minute
	}

	b.StartTime = newStart
	b.EndTime = newStart.Add(dur)
	b.ProfessionalID = &in.ProfessionalID
}
