package handlers

import (
	"time"

	"github.com/booki-saas/booki-api/internal/models"
	"github.com/booki-saas/booki-api/internal/timezone"
)

// resolve o fuso oficial da empresa
func locationFromCompany(company *models.Company) *time.Location {
	if company != nil {
		return timezone.Location(company.Timezone)
	}
	return timezone.Location("")
}
