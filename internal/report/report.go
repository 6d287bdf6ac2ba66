// Package report computes per-user monthly aggregates: income/expense
// totals, category breakdowns and multi-month trend series. All functions
// are read-only and return zero values for months with no activity.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/rajpratap-1411/personal-finance-dashboard/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyTotals summarizes one user's activity inside a single calendar month.
type MonthlyTotals struct {
	Income            decimal.Decimal
	Expenses          decimal.Decimal
	Savings           decimal.Decimal
	SavingsPercentage float64
}

// CategoryTotal is one category's summed amount within a period.
type CategoryTotal struct {
	Name  string
	Total decimal.Decimal
}

// TrendPoint is one month's summary within a rolling trend window.
// Amounts are floats because the consumer is chart rendering.
type TrendPoint struct {
	Month    string  `json:"month"` // e.g. "Mar 2025"
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

// monthRange returns [first day of month, first day of next month) in UTC.
func monthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

type amountRow struct {
	Type   string
	Amount decimal.Decimal
}

// Totals computes income, expenses, savings and the savings percentage for
// one user and month. The percentage is savings/income*100 rounded to two
// places when income is positive, otherwise 0 by convention.
//
// Sums are carried in decimals so income - expenses equals savings exactly.
func Totals(db *gorm.DB, userID uint, year int, month time.Month) (MonthlyTotals, error) {
	start, end := monthRange(year, month)

	var rows []amountRow
	if err := db.Model(&models.Transaction{}).
		Select("type, amount").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Find(&rows).Error; err != nil {
		return MonthlyTotals{}, fmt.Errorf("load month transactions: %w", err)
	}

	income := decimal.Zero
	expenses := decimal.Zero
	for _, r := range rows {
		if r.Type == "income" {
			income = income.Add(r.Amount)
		} else {
			expenses = expenses.Add(r.Amount)
		}
	}

	savings := income.Sub(expenses)

	var pct float64
	if income.IsPositive() {
		pct = savings.Div(income).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}

	return MonthlyTotals{
		Income:            income,
		Expenses:          expenses,
		Savings:           savings,
		SavingsPercentage: pct,
	}, nil
}

type categoryRow struct {
	Name   string
	Amount decimal.Decimal
}

// CategoryTotals sums one user's transactions of the given type by category
// name for one month, descending by total. Ties break by name ascending so
// the order is deterministic. Categories with no activity are absent.
func CategoryTotals(db *gorm.DB, userID uint, year int, month time.Month, txType string) ([]CategoryTotal, error) {
	start, end := monthRange(year, month)

	var rows []categoryRow
	if err := db.Model(&models.Transaction{}).
		Select("categories.name AS name, transactions.amount AS amount").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.type = ? AND transactions.date >= ? AND transactions.date < ?",
			userID, txType, start, end).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load category transactions: %w", err)
	}

	sums := make(map[string]decimal.Decimal)
	for _, r := range rows {
		sums[r.Name] = sums[r.Name].Add(r.Amount)
	}

	totals := make([]CategoryTotal, 0, len(sums))
	for name, total := range sums {
		totals = append(totals, CategoryTotal{Name: name, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		cmp := totals[i].Total.Cmp(totals[j].Total)
		if cmp != 0 {
			return cmp > 0
		}
		return totals[i].Name < totals[j].Name
	})

	return totals, nil
}

// Trends returns one TrendPoint per month for the `months` calendar months
// ending with the month containing now, oldest first. Months are stepped
// exactly from the first of the month, so ranges crossing month-length
// differences and year boundaries stay aligned.
func Trends(db *gorm.DB, userID uint, months int, now time.Time) ([]TrendPoint, error) {
	if months <= 0 {
		return []TrendPoint{}, nil
	}

	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	trends := make([]TrendPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		target := base.AddDate(0, -i, 0)

		totals, err := Totals(db, userID, target.Year(), target.Month())
		if err != nil {
			return nil, err
		}

		trends = append(trends, TrendPoint{
			Month:    target.Format("Jan 2006"),
			Income:   totals.Income.InexactFloat64(),
			Expenses: totals.Expenses.InexactFloat64(),
			Savings:  totals.Savings.InexactFloat64(),
		})
	}

	return trends, nil
}
