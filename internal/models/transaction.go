package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single dated money movement owned by one user.
// Amount is a decimal with two places, minimum 0.01; Date carries the
// calendar day only (midnight UTC).
type Transaction struct {
	ID          uint            `gorm:"primaryKey"`
	UserID      uint            `gorm:"not null;index:idx_tx_user_date;index:idx_tx_user_type_date;index:idx_tx_user_category"`
	CategoryID  uint            `gorm:"not null;index:idx_tx_user_category"`
	Type        string          `gorm:"size:10;not null;index:idx_tx_user_type_date"` // income / expense
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"type:text"`
	Date        time.Time       `gorm:"not null;index:idx_tx_user_date;index:idx_tx_user_type_date"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User     User     `gorm:"constraint:OnDelete:CASCADE"`
	Category Category `gorm:"constraint:OnDelete:RESTRICT"`
}
