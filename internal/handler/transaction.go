package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rajpratap-1411/personal-finance-dashboard/internal/models"
	"github.com/rajpratap-1411/personal-finance-dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// transactions are listed 20 per page
const pageSize = 20

// TransactionHandler serves transaction CRUD and listing.
type TransactionHandler struct {
	DB *gorm.DB
}

func NewTransactionHandler(db *gorm.DB) *TransactionHandler {
	return &TransactionHandler{DB: db}
}

// ---------- request/response types ----------

type transactionReq struct {
	Type        string `json:"type" binding:"required,oneof=income expense"`
	CategoryID  uint   `json:"category_id" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date"` // YYYY-MM-DD, defaults to today
}

type transactionResp struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	CategoryID  uint      `json:"category_id"`
	Category    string    `json:"category"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:          t.ID,
		Type:        t.Type,
		CategoryID:  t.CategoryID,
		Category:    t.Category.Name,
		Amount:      t.Amount.StringFixed(2),
		Description: t.Description,
		Date:        t.Date.Format("2006-01-02"),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// parseFields validates the shared create/update payload and resolves the
// referenced category, which must belong to the user and carry the same
// type as the transaction.
func (h *TransactionHandler) parseFields(c *gin.Context, userID uint, req *transactionReq) (decimal.Decimal, time.Time, bool) {
	amount, err := util.ParseAmount(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "enter a valid amount of at least 0.01")
		return decimal.Zero, time.Time{}, false
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		date, err = util.ParseDate(req.Date)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date must be YYYY-MM-DD")
			return decimal.Zero, time.Time{}, false
		}
	}
	today := time.Now().UTC().Format("2006-01-02")
	if date.Format("2006-01-02") > today {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date cannot be in the future")
		return decimal.Zero, time.Time{}, false
	}

	var cat models.Category
	if err := h.DB.Where("id = ? AND user_id = ?", req.CategoryID, userID).First(&cat).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return decimal.Zero, time.Time{}, false
	}
	if cat.Type != req.Type {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category type does not match transaction type")
		return decimal.Zero, time.Time{}, false
	}

	return amount, date, true
}

// ---------- create ----------

// CreateTransaction records a transaction for the caller. The owner is
// always the acting user, whatever the payload says.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	amount, date, ok := h.parseFields(c, user.ID, &req)
	if !ok {
		return
	}

	tx := models.Transaction{
		UserID:      user.ID,
		CategoryID:  req.CategoryID,
		Type:        req.Type,
		Amount:      amount,
		Description: req.Description,
		Date:        date,
	}

	if err := h.DB.Create(&tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}

	_ = h.DB.Preload("Category").First(&tx, tx.ID).Error

	util.Success(c, util.Response{
		"transaction": toTransactionResp(&tx),
	})
}

// ---------- update ----------

// UpdateTransaction modifies one of the caller's transactions. The lookup
// itself is scoped to the owner, so a foreign id is indistinguishable from
// a missing one.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	var tx models.Transaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&tx).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	amount, date, ok := h.parseFields(c, user.ID, &req)
	if !ok {
		return
	}

	tx.Type = req.Type
	tx.CategoryID = req.CategoryID
	tx.Amount = amount
	tx.Description = req.Description
	tx.Date = date

	if err := h.DB.Save(&tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}

	_ = h.DB.Preload("Category").First(&tx, tx.ID).Error

	util.Success(c, util.Response{
		"transaction": toTransactionResp(&tx),
	})
}

// ---------- delete ----------

// DeleteTransaction removes one of the caller's transactions. Deleting a
// missing or foreign id reports not found, never silent success.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var tx models.Transaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&tx).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	if err := h.DB.Delete(&tx).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}

// ---------- list ----------

// ListTransactions returns the caller's transactions, newest first,
// 20 per page. type narrows by transaction type; month and year narrow to
// a calendar month only when both are present.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	query := h.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID)

	// any provided type narrows the query, so an unknown value matches nothing
	txType := c.Query("type")
	if txType != "" {
		query = query.Where("type = ?", txType)
	}

	// month and year only filter together
	monthStr := c.Query("month")
	yearStr := c.Query("year")
	if monthStr != "" && yearStr != "" {
		month, errM := strconv.Atoi(monthStr)
		year, errY := strconv.Atoi(yearStr)
		if errM != nil || errY != nil || month < 1 || month > 12 || year < 1 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month and year must be numeric")
			return
		}
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		query = query.Where("date >= ? AND date < ?", start, start.AddDate(0, 1, 0))
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	var transactions []models.Transaction
	if err := query.Session(&gorm.Session{}).
		Preload("Category").
		Order("date DESC, created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]transactionResp, 0, len(transactions))
	for i := range transactions {
		items = append(items, toTransactionResp(&transactions[i]))
	}

	pages := (total + pageSize - 1) / pageSize

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"pages": pages,
	})
}
