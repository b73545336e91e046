package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/booki-saas/booki-api/internal/domain/schedule"
	"github.com/booki-saas/booki-api/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Company
// --------------------------------------------------

func (r *ScheduleGormRepository) GetCompanyByID(
	ctx context.Context,
	id string,
) (*models.Company, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *ScheduleGormRepository) GetCompanyBySlug(
	ctx context.Context,
	slug string,
) (*models.Company, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *ScheduleGormRepository) GetService(
	ctx context.Context,
	companyID string,
	serviceID string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", serviceID, companyID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *ScheduleGormRepository) GetOrCreateClient(
	ctx context.Context,
	companyID string,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND phone = ?", companyID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		CompanyID: companyID,
		Name:      name,
		Phone:     phone,
		Email:     email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *ScheduleGormRepository) GetBooking(
	ctx context.Context,
	companyID string,
	bookingID string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", bookingID, companyID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *ScheduleGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Day snapshot
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBookingsForDay(
	ctx context.Context,
	companyID string,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"company_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			companyID, "CANCELLED", start, end,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *ScheduleGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	companyID string,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking

	err := r.db.WithContext(ctx).
		Preload("Professional").
		Preload("Service").
		Where(
			"company_id = ? AND start_time >= ? AND start_time < ?",
			companyID, start, end,
		).
		Order("start_time ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *ScheduleGormRepository) ListBlockedSlots(
	ctx context.Context,
	companyID string,
	date string,
) ([]models.BlockedSlot, error) {

	var blocked []models.BlockedSlot
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND slot_date = ?", companyID, date).
		Find(&blocked).Error; err != nil {
		return nil, err
	}

	return blocked, nil
}

func (r *ScheduleGormRepository) CountProfessionals(
	ctx context.Context,
	companyID string,
) (int, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Professional{}).
		Where("company_id = ?", companyID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
