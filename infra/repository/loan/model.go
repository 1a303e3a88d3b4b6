package loan

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Loan represents a loan record in the database. gorm.DeletedAt gives the
// soft-delete behavior: deleted rows stay in storage but are excluded from
// default queries.
type Loan struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null"`
	NominalValue int64     `gorm:"not null"`
	InterestRate float64   `gorm:"type:decimal(5,2);not null"`
	IPAddress    string    `gorm:"type:varchar(45)"`
	RequestDate  time.Time `gorm:"not null"`
	Bank         string    `gorm:"size:255;not null"`
	Client       string    `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the Loan model.
func (Loan) TableName() string {
	return "loans"
}
