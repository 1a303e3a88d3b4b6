package repository

import (
	infraloan "github.com/amirasaad/loantrack/infra/repository/loan"
	infrapayment "github.com/amirasaad/loantrack/infra/repository/payment"
	infrauser "github.com/amirasaad/loantrack/infra/repository/user"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all persisted models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&infrauser.User{},
		&infraloan.Loan{},
		&infrapayment.Payment{},
	)
}
