package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rajpratap-1411/personal-finance-dashboard/internal/models"
	"github.com/rajpratap-1411/personal-finance-dashboard/internal/report"
	"github.com/rajpratap-1411/personal-finance-dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// the dashboard shows a 6 month trend window and the 5 latest transactions
const (
	trendMonths        = 6
	recentTransactions = 5
)

// DashboardHandler shapes aggregation output into the dashboard view model.
type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

type categoryBreakdown struct {
	Name  string `json:"name"`
	Total string `json:"total"`
}

func toBreakdown(totals []report.CategoryTotal) []categoryBreakdown {
	out := make([]categoryBreakdown, 0, len(totals))
	for _, t := range totals {
		out = append(out, categoryBreakdown{Name: t.Name, Total: t.Total.StringFixed(2)})
	}
	return out
}

// GetDashboard aggregates the current month's totals, both category
// breakdowns, the 6-month trend series and the 5 most recent transactions,
// always computed against the server's current date. chart_data carries a
// JSON-serialized copy of the trend and breakdown series for chart
// rendering.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	now := time.Now().UTC()

	totals, err := report.Totals(h.DB, user.ID, now.Year(), now.Month())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "aggregation failed")
		return
	}

	categoryExpenses, err := report.CategoryTotals(h.DB, user.ID, now.Year(), now.Month(), "expense")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "aggregation failed")
		return
	}
	categoryIncome, err := report.CategoryTotals(h.DB, user.ID, now.Year(), now.Month(), "income")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "aggregation failed")
		return
	}

	trends, err := report.Trends(h.DB, user.ID, trendMonths, now)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "aggregation failed")
		return
	}

	var recent []models.Transaction
	if err := h.DB.Preload("Category").
		Where("user_id = ?", user.ID).
		Order("date DESC, created_at DESC").
		Limit(recentTransactions).
		Find(&recent).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	recentItems := make([]transactionResp, 0, len(recent))
	for i := range recent {
		recentItems = append(recentItems, toTransactionResp(&recent[i]))
	}

	expensesBreakdown := toBreakdown(categoryExpenses)
	incomeBreakdown := toBreakdown(categoryIncome)

	chartData, err := json.Marshal(gin.H{
		"monthly_trends":    trends,
		"category_expenses": expensesBreakdown,
		"category_income":   incomeBreakdown,
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "serialize chart data failed")
		return
	}

	util.Success(c, util.Response{
		"total_income":        totals.Income.StringFixed(2),
		"total_expenses":      totals.Expenses.StringFixed(2),
		"savings":             totals.Savings.StringFixed(2),
		"savings_percentage":  totals.SavingsPercentage,
		"category_expenses":   expensesBreakdown,
		"category_income":     incomeBreakdown,
		"monthly_trends":      trends,
		"recent_transactions": recentItems,
		"chart_data":          string(chartData),
	})
}
