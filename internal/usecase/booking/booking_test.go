package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/booki-saas/booki-api/internal/httperr"
	"github.com/booki-saas/booki-api/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	company       models.Company
	services      map[string]models.Service
	bookings      map[string]*models.Booking
	blocked       []models.BlockedSlot
	professionals int

	nextID  int
	clients []models.Client
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		company: models.Company{
			ID:       "co-1",
			Name:     "Studio Teste",
			Slug:     "studio-teste",
			Status:   models.CompanyActive,
			Timezone: "America/Sao_Paulo",
		},
		services:      map[string]models.Service{},
		bookings:      map[string]*models.Booking{},
		professionals: 2,
	}
}

func (f *fakeRepo) GetCompanyByID(_ context.Context, id string) (*models.Company, error) {
	if id != f.company.ID {
		return nil, httperr.ErrBusiness("company_not_found")
	}
	co := f.company
	return &co, nil
}

func (f *fakeRepo) GetCompanyBySlug(_ context.Context, slug string) (*models.Company, error) {
	if slug != f.company.Slug {
		return nil, httperr.ErrBusiness("company_not_found")
	}
	co := f.company
	return &co, nil
}

func (f *fakeRepo) GetService(_ context.Context, _, serviceID string) (*models.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return &svc, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, companyID, name, phone, email string) (*models.Client, error) {
	for i := range f.clients {
		if f.clients[i].Phone == phone {
			return &f.clients[i], nil
		}
	}
	f.nextID++
	c := models.Client{
		ID:        "cl-" + strings.Repeat("x", f.nextID),
		CompanyID: companyID,
		Name:      name,
		Phone:     phone,
		Email:     email,
	}
	f.clients = append(f.clients, c)
	return &c, nil
}

func (f *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	f.nextID++
	if b.ID == "" {
		b.ID = "bk-" + strings.Repeat("x", f.nextID)
	}
	clone := *b
	f.bookings[b.ID] = &clone
	return nil
}

func (f *fakeRepo) GetBooking(_ context.Context, _, bookingID string) (*models.Booking, error) {
	b, ok := f.bookings[bookingID]
	if !ok {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	clone := *b
	return &clone, nil
}

func (f *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	clone := *b
	f.bookings[b.ID] = &clone
	return nil
}

func (f *fakeRepo) ListBookingsForDay(_ context.Context, _ string, start, end time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status == "CANCELLED" {
			continue
		}
		if !b.StartTime.Before(start) && b.StartTime.Before(end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBookingsForPeriod(_ context.Context, _ string, start, end time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if !b.StartTime.Before(start) && b.StartTime.Before(end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBlockedSlots(_ context.Context, _ string, date string) ([]models.BlockedSlot, error) {
	var out []models.BlockedSlot
	for _, s := range f.blocked {
		if s.SlotDate == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountProfessionals(_ context.Context, _ string) (int, error) {
	return f.professionals, nil
}

// ======================================================
// CREATE
// ======================================================

func TestCreateBookingDefaults(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		CompanyID:   "co-1",
		ClientName:  "Maria",
		ClientPhone: "11988887777",
		Date:        "2026-03-10",
		Time:        "09:40",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if b.Status != "CONFIRMED" {
		t.Fatalf("status = %q, esperado CONFIRMED", b.Status)
	}
	if got := b.StartTime.Format("15:04"); got != "09:40" {
		t.Fatalf("start = %s, esperado 09:40", got)
	}
	// Sem serviço escolhido, a duração padrão é 40 minutos.
	if got := b.EndTime.Sub(b.StartTime); got != 40*time.Minute {
		t.Fatalf("duração = %v, esperado 40m", got)
	}
	if b.ProfessionalID != nil {
		t.Fatalf("professional_id deveria ser nil (qualquer disponível)")
	}
	if b.ClientID == nil {
		t.Fatalf("cliente não foi criado/vinculado")
	}
}

func TestCreateBookingUsesServiceDuration(t *testing.T) {
	repo := newFakeRepo()
	repo.services["svc-1"] = models.Service{
		ID: "svc-1", CompanyID: "co-1", Name: "Corte", DurationMin: 60,
	}
	uc := NewCreateBooking(repo, nil, nil)

	b, err := uc.Execute(context.Background(), CreateBookingInput{
		CompanyID:   "co-1",
		ClientName:  "João",
		ClientPhone: "11900001111",
		ServiceID:   "svc-1",
		Date:        "2026-03-10",
		Time:        "13:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if got := b.EndTime.Sub(b.StartTime); got != 60*time.Minute {
		t.Fatalf("duração = %v, esperado 60m", got)
	}
}

func TestCreateBookingUnknownService(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		CompanyID:   "co-1",
		ClientName:  "Ana",
		ClientPhone: "11911112222",
		ServiceID:   "nope",
		Date:        "2026-03-10",
		Time:        "09:00",
	})
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("err = %v, esperado service_not_found", err)
	}
}

// ======================================================
// AVAILABILITY
// ======================================================

func seedBooking(t *testing.T, repo *fakeRepo, profID, date, slot string) *models.Booking {
	t.Helper()

	uc := NewCreateBooking(repo, nil, nil)
	b, err := uc.Execute(context.Background(), CreateBookingInput{
		CompanyID:      "co-1",
		ClientName:     "Cliente",
		ClientPhone:    "1190000" + slot[:2] + slot[3:],
		ProfessionalID: profID,
		Date:           date,
		Time:           slot,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return b
}

func TestAvailabilityExcludesTakenSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.professionals = 1
	seedBooking(t, repo, "pro-1", "2026-03-10", "10:20")

	uc := NewGetAvailability(repo)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		CompanyID: "co-1",
		Date:      date,
	})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	for _, s := range slots {
		if s == "10:20" {
			t.Fatalf("10:20 não deveria estar ofertável com quadro lotado")
		}
	}
}

func TestAvailabilityExcludeBookingID(t *testing.T) {
	repo := newFakeRepo()
	repo.professionals = 1
	b := seedBooking(t, repo, "pro-1", "2026-03-10", "10:20")

	uc := NewGetAvailability(repo)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// Em edição, a própria reserva sai do cálculo e o slot reaparece.
	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		CompanyID:        "co-1",
		ExcludeBookingID: b.ID,
		Date:             date,
	})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	found := false
	for _, s := range slots {
		if s == "10:20" {
			found = true
		}
	}
	if !found {
		t.Fatalf("10:20 deveria voltar a ser ofertável excluindo a própria reserva")
	}
}

func TestAvailabilityBlockedSlotWins(t *testing.T) {
	repo := newFakeRepo()
	repo.blocked = append(repo.blocked, models.BlockedSlot{
		CompanyID: "co-1",
		SlotDate:  "2026-03-10",
		SlotTime:  "09:00",
	})

	uc := NewGetAvailability(repo)
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	slots, err := uc.Execute(context.Background(), AvailabilityInput{
		CompanyID: "co-1",
		Date:      date,
	})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	for _, s := range slots {
		if s == "09:00" {
			t.Fatalf("slot bloqueado não pode ser ofertado")
		}
	}
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func TestCancelBooking(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(t, repo, "pro-1", "2026-03-10", "11:00")

	uc := NewCancelBooking(repo, nil, nil)

	res, err := uc.Execute(context.Background(), "co-1", b.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if res.Booking.Status != "CANCELLED" {
		t.Fatalf("status = %q, esperado CANCELLED", res.Booking.Status)
	}
	if res.Booking.CancelledAt == nil {
		t.Fatalf("cancelled_at não foi marcado")
	}
	if res.WhatsAppLink == "" || !strings.HasPrefix(res.WhatsAppLink, "https://wa.me/55") {
		t.Fatalf("link de whatsapp inválido: %q", res.WhatsAppLink)
	}

	// Cancelar de novo é transição inválida.
	if _, err := uc.Execute(context.Background(), "co-1", b.ID); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("segundo cancel: err = %v, esperado invalid_state", err)
	}
}

func TestCancelFreesSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.professionals = 1
	b := seedBooking(t, repo, "pro-1", "2026-03-10", "14:20")

	cancelUC := NewCancelBooking(repo, nil, nil)
	if _, err := cancelUC.Execute(context.Background(), "co-1", b.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	availUC := NewGetAvailability(repo)
	slots, err := availUC.Execute(context.Background(), AvailabilityInput{
		CompanyID: "co-1",
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("availability: %v", err)
	}

	found := false
	for _, s := range slots {
		if s == "14:20" {
			found = true
		}
	}
	if !found {
		t.Fatalf("cancelamento deveria liberar o slot 14:20")
	}
}

func TestCompleteBooking(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(t, repo, "pro-1", "2026-03-10", "15:00")

	uc := NewCompleteBooking(repo, nil, nil)

	out, err := uc.Execute(context.Background(), "co-1", b.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out.Status != "COMPLETED" {
		t.Fatalf("status = %q, esperado COMPLETED", out.Status)
	}

	// COMPLETED não cancela nem completa de novo.
	cancelUC := NewCancelBooking(repo, nil, nil)
	if _, err := cancelUC.Execute(context.Background(), "co-1", b.ID); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("cancel após complete: err = %v, esperado invalid_state", err)
	}
}

// ======================================================
// RESCHEDULE (drag-and-drop)
// ======================================================

func TestRescheduleAdoptsColumnAndKeepsDuration(t *testing.T) {
	repo := newFakeRepo()
	repo.services["svc-1"] = models.Service{
		ID: "svc-1", CompanyID: "co-1", DurationMin: 60,
	}

	createUC := NewCreateBooking(repo, nil, nil)
	b, err := createUC.Execute(context.Background(), CreateBookingInput{
		CompanyID:      "co-1",
		ClientName:     "Paula",
		ClientPhone:    "11955556666",
		ProfessionalID: "pro-1",
		ServiceID:      "svc-1",
		Date:           "2026-03-10",
		Time:           "09:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	uc := NewRescheduleBooking(repo, nil, nil)

	// 360 px = 180 min após 08:00 → 11:00; ponteiro impreciso (367)
	// alinha para o mesmo lugar.
	out, err := uc.Execute(context.Background(), RescheduleBookingInput{
		CompanyID:      "co-1",
		BookingID:      b.ID,
		Date:           "2026-03-10",
		PointerY:       367,
		ProfessionalID: "pro-2",
	})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	if got := out.StartTime.Format("15:04"); got != "11:00" {
		t.Fatalf("start = %s, esperado 11:00", got)
	}
	// A duração original (60m) é preservada, não recalculada.
	if got := out.EndTime.Sub(out.StartTime); got != 60*time.Minute {
		t.Fatalf("duração = %v, esperado 60m", got)
	}
	if out.ProfessionalID == nil || *out.ProfessionalID != "pro-2" {
		t.Fatalf("a reserva deveria assumir o profissional da coluna de destino")
	}

	// O update é único: o estado persistido já tem tudo aplicado.
	stored, _ := repo.GetBooking(context.Background(), "co-1", b.ID)
	if stored.StartTime != out.StartTime || *stored.ProfessionalID != "pro-2" {
		t.Fatalf("estado persistido divergente do retorno")
	}
}

// ======================================================
// LIST
// ======================================================

func TestListByDateIncludesCancelled(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(t, repo, "pro-1", "2026-03-10", "09:00")
	seedBooking(t, repo, "pro-2", "2026-03-10", "10:20")

	cancelUC := NewCancelBooking(repo, nil, nil)
	if _, err := cancelUC.Execute(context.Background(), "co-1", b.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	uc := NewListBookings(repo)
	out, err := uc.ByDate(context.Background(), "co-1", "2026-03-10")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	// A agenda mostra tudo, inclusive canceladas.
	if len(out) != 2 {
		t.Fatalf("len = %d, esperado 2", len(out))
	}
}

func TestListByDateBadInput(t *testing.T) {
	repo := newFakeRepo()
	uc := NewListBookings(repo)

	if _, err := uc.ByDate(context.Background(), "co-1", "10/03/2026"); !httperr.IsBusiness(err, "invalid_date") {
		t.Fatalf("err = %v, esperado invalid_date", err)
	}
	if _, err := uc.ByMonth(context.Background(), "co-1", "março"); !httperr.IsBusiness(err, "invalid_month") {
		t.Fatalf("err = %v, esperado invalid_month", err)
	}
}
