package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/rajpratap-1411/personal-finance-dashboard/internal/models"
	"github.com/rajpratap-1411/personal-finance-dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler writes a user's full transaction history as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

func (h *ExportHandler) loadTransactions(c *gin.Context, userID uint) ([]models.Transaction, bool) {
	var transactions []models.Transaction
	if err := h.DB.Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return nil, false
	}
	return transactions, true
}

var exportHeaders = []string{"Type", "Category", "Amount", "Description", "Date"}

// ExportCSV streams the caller's transactions as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	transactions, ok := h.loadTransactions(c, user.ID)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)

	for i := range transactions {
		t := &transactions[i]
		writer.Write([]string{
			t.Type,
			t.Category.Name,
			t.Amount.StringFixed(2),
			t.Description,
			t.Date.Format("2006-01-02"),
		})
	}
}

// ExportXLSX writes the caller's transactions as an XLSX attachment.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	transactions, ok := h.loadTransactions(c, user.ID)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range transactions {
		t := &transactions[idx]
		row := idx + 2

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), t.Type)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), t.Category.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), t.Amount.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), t.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), t.Date.Format("2006-01-02"))
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)
	f.SetColWidth(sheetName, "E", "E", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
