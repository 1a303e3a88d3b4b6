package payment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment represents a payment record in the database. Ownership is derived
// from the parent loan, so no user column is stored here.
type Payment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	LoanID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Amount      int64     `gorm:"not null"`
	PaymentDate time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the Payment model.
func (Payment) TableName() string {
	return "payments"
}
