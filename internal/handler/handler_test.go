package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rajpratap-1411/personal-finance-dashboard/internal/config"
	"github.com/rajpratap-1411/personal-finance-dashboard/internal/database"
	"github.com/rajpratap-1411/personal-finance-dashboard/internal/middleware"
	"github.com/rajpratap-1411/personal-finance-dashboard/internal/models"
	"github.com/rajpratap-1411/personal-finance-dashboard/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

// newTestEnv wires a fresh sqlite database and the full protected API the
// way the router does, minus logging noise.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "handler_test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	r := gin.New()
	api := r.Group("/api")

	authHandler := NewAuthHandler(db, testJWTSecret, 1, bcrypt.MinCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(testJWTSecret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/me", GetMe)
	protected.POST("/profile", UpdateProfile(db))
	protected.POST("/profile/password", ChangePassword(db))

	categoryHandler := NewCategoryHandler(db)
	protected.GET("/categories", categoryHandler.LookupCategories)
	protected.GET("/categories/all", categoryHandler.ListCategories)
	protected.POST("/categories", categoryHandler.CreateCategory)
	protected.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	transactionHandler := NewTransactionHandler(db)
	protected.GET("/transactions", transactionHandler.ListTransactions)
	protected.POST("/transactions", transactionHandler.CreateTransaction)
	protected.PUT("/transactions/:id", transactionHandler.UpdateTransaction)
	protected.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	dashboardHandler := NewDashboardHandler(db)
	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	exportHandler := NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	logHandler := NewLogHandler(db)
	protected.GET("/logs", logHandler.ListLogs)

	return &testEnv{db: db, router: r}
}

// newTestUser inserts a user directly and returns it with a signed token.
func (e *testEnv) newTestUser(t *testing.T, username string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Username: username, PasswordHash: string(hash)}
	require.NoError(t, e.db.Create(user).Error)

	token, err := util.GenerateToken(testJWTSecret, user.ID, time.Hour)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) newCategory(t *testing.T, userID uint, name, catType string) *models.Category {
	t.Helper()

	cat := &models.Category{UserID: userID, Name: name, Type: catType}
	require.NoError(t, e.db.Create(cat).Error)
	return cat
}

func (e *testEnv) newTransaction(t *testing.T, userID, categoryID uint, txType, amount, date string) *models.Transaction {
	t.Helper()

	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)

	tx := &models.Transaction{
		UserID:     userID,
		CategoryID: categoryID,
		Type:       txType,
		Amount:     decimal.RequireFromString(amount),
		Date:       d.UTC(),
	}
	require.NoError(t, e.db.Create(tx).Error)
	return tx
}

// request performs an authenticated JSON request against the test router.
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeData unwraps the {code, data} success envelope.
func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var envelope struct {
		Code int                    `json:"code"`
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, util.CodeOK, envelope.Code)
	return envelope.Data
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, "unexpected status, body: %s", w.Body.String())
}
