package models

import "time"

// Category represents income/expense category. A user cannot have two
// categories with the same name and type.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_cat_user_name_type;index:idx_cat_user_type"`
	Name      string `gorm:"size:100;not null;uniqueIndex:idx_cat_user_name_type"`
	Type      string `gorm:"size:10;not null;uniqueIndex:idx_cat_user_name_type;index:idx_cat_user_type"` // income / expense
	Icon      string `gorm:"size:50"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
