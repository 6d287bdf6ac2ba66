package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rajpratap-1411/personal-finance-dashboard/internal/models"
	"github.com/rajpratap-1411/personal-finance-dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler serves category lookup and management.
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

type categoryOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// LookupCategories returns the caller's categories of the requested type as
// {id, name} pairs for the dependent type/category select. An absent or
// unrecognized type yields an empty array rather than an error.
func (h *CategoryHandler) LookupCategories(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	catType := c.Query("type")
	if err := util.ValidateTransactionType(catType); err != nil {
		c.JSON(http.StatusOK, []categoryOption{})
		return
	}

	var options []categoryOption
	if err := h.DB.Model(&models.Category{}).
		Select("id, name").
		Where("user_id = ? AND type = ?", user.ID, catType).
		Order("name ASC").
		Find(&options).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	if options == nil {
		options = []categoryOption{}
	}
	c.JSON(http.StatusOK, options)
}

type categoryResp struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Icon string `json:"icon"`
}

// ListCategories returns all of the caller's categories regardless of type,
// ordered by type then name. Used to populate the transaction form, which
// re-filters on the client when the type changes.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var categories []models.Category
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("type ASC, name ASC").
		Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]categoryResp, 0, len(categories))
	for _, cat := range categories {
		items = append(items, categoryResp{
			ID:   cat.ID,
			Name: cat.Name,
			Type: cat.Type,
			Icon: cat.Icon,
		})
	}

	util.Success(c, util.Response{
		"categories": items,
	})
}

type createCategoryReq struct {
	Name string `json:"name" binding:"required,max=100"`
	Type string `json:"type" binding:"required,oneof=income expense"`
	Icon string `json:"icon" binding:"max=50"`
}

// CreateCategory adds a category for the caller. (name, type) must be
// unique per user.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateCategoryName(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "category name is required")
		return
	}

	var count int64
	if err := h.DB.Model(&models.Category{}).
		Where("user_id = ? AND name = ? AND type = ?", user.ID, req.Name, req.Type).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusConflict, util.CodeConflict, "category already exists")
		return
	}

	cat := models.Category{
		UserID: user.ID,
		Name:   req.Name,
		Type:   req.Type,
		Icon:   req.Icon,
	}
	if err := h.DB.Create(&cat).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}

	util.Success(c, util.Response{
		"category": categoryResp{ID: cat.ID, Name: cat.Name, Type: cat.Type, Icon: cat.Icon},
	})
}

// DeleteCategory removes one of the caller's categories. A category that is
// still referenced by any transaction cannot be deleted.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var cat models.Category
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&cat).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "category not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	var inUse int64
	if err := h.DB.Model(&models.Transaction{}).
		Where("category_id = ?", cat.ID).
		Count(&inUse).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if inUse > 0 {
		util.Error(c, http.StatusConflict, util.CodeConflict, "category is in use by transactions")
		return
	}

	if err := h.DB.Delete(&cat).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
