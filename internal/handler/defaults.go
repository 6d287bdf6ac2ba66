package handler

import (
	"fmt"

	"github.com/rajpratap-1411/personal-finance-dashboard/internal/models"

	"gorm.io/gorm"
)

type defaultCategory struct {
	Name string
	Icon string
}

var defaultIncomeCategories = []defaultCategory{
	{Name: "Salary", Icon: "briefcase"},
	{Name: "Freelance", Icon: "laptop"},
	{Name: "Investment", Icon: "trending-up"},
	{Name: "Other Income", Icon: "cash"},
}

var defaultExpenseCategories = []defaultCategory{
	{Name: "Food", Icon: "restaurant"},
	{Name: "Transport", Icon: "car"},
	{Name: "Rent", Icon: "home"},
	{Name: "Utilities", Icon: "bolt"},
	{Name: "Shopping", Icon: "bag"},
	{Name: "Entertainment", Icon: "film"},
	{Name: "Healthcare", Icon: "heart"},
	{Name: "Education", Icon: "book"},
	{Name: "Other Expense", Icon: "more-horizontal"},
}

// SeedDefaultCategories creates the default category set for a new user.
// It is invoked directly by the registration flow rather than through any
// persistence hook, and is safe to call twice: existing (name, type) pairs
// are left alone.
func SeedDefaultCategories(db *gorm.DB, userID uint) error {
	seed := func(cats []defaultCategory, catType string) error {
		for _, dc := range cats {
			var existing models.Category
			err := db.Where("user_id = ? AND name = ? AND type = ?", userID, dc.Name, catType).
				First(&existing).Error
			if err == nil {
				continue
			}
			if err != gorm.ErrRecordNotFound {
				return fmt.Errorf("check category %s: %w", dc.Name, err)
			}

			cat := models.Category{
				UserID: userID,
				Name:   dc.Name,
				Type:   catType,
				Icon:   dc.Icon,
			}
			if err := db.Create(&cat).Error; err != nil {
				return fmt.Errorf("create category %s: %w", dc.Name, err)
			}
		}
		return nil
	}

	if err := seed(defaultIncomeCategories, "income"); err != nil {
		return err
	}
	return seed(defaultExpenseCategories, "expense")
}
