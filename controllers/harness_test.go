package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/cafe-ordering/kds"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/router"
	"github.com/yeremiapane/cafe-ordering/services"
	"github.com/yeremiapane/cafe-ordering/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type harness struct {
	db     *gorm.DB
	tokens *utils.Tokens
	hub    *kds.Hub
	router *gin.Engine
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	tokens := utils.NewTokens("controller-secret", time.Hour, time.Hour)
	hub := kds.NewHub(kds.RetryPolicy{Delay: 10 * time.Millisecond, MaxAttempts: 1})
	t.Cleanup(hub.Shutdown)

	notify := services.NewNotificationService(db, services.LogDispatcher{})
	store := services.NewOrderStore(db)
	gate := services.NewCafeGate(db)

	r := router.SetupRouter(router.Deps{
		DB:        db,
		Tokens:    tokens,
		Hub:       hub,
		Store:     store,
		Machine:   services.NewStateMachine(db, services.WhitelistPolicy{}, time.UTC, notify),
		Sessions:  services.NewSessionService(db, store, gate, tokens, hub, notify),
		Gate:      gate,
		Ratings:   services.NewRatingService(db),
		Notify:    notify,
		Analytics: services.NewAnalyticsService(db),
		Location:  time.UTC,
		RateLimit: 1000,
	})

	return &harness{db: db, tokens: tokens, hub: hub, router: r}
}

func (h *harness) do(t *testing.T, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out), string(env.Data))
}

// adminWithCafe -> admin + cafe langsung di DB, return token admin
func (h *harness) adminWithCafe(t *testing.T, open bool) (string, *models.Cafe) {
	t.Helper()
	cafe := models.Cafe{Name: "Blue Tokai", City: "Pune", Phone: "9876543210", OpenStatus: open}
	require.NoError(t, h.db.Create(&cafe).Error)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := models.Admin{
		Name:     "Owner",
		Email:    uuid.NewString() + "@example.com",
		Password: string(hashed),
		CafeID:   &cafe.ID,
	}
	require.NoError(t, h.db.Create(&admin).Error)

	token, err := h.tokens.GenerateAdminToken(admin.ID)
	require.NoError(t, err)
	return token, &cafe
}

func (h *harness) item(t *testing.T, cafeID, name string, price int64) *models.Item {
	t.Helper()
	item := models.Item{CafeID: cafeID, Category: "Beverages", Name: name, Price: decimal.NewFromInt(price), InStock: true}
	require.NoError(t, h.db.Create(&item).Error)
	return &item
}

// session -> buat sesi meja lewat endpoint publik
func (h *harness) session(t *testing.T, cafeID string, table int) (string, string) {
	t.Helper()
	w, env := h.do(t, http.MethodPost, fmt.Sprintf("/api/user/createSession/%s?table=%d", cafeID, table), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Token string `json:"token"`
		Order string `json:"order"`
	}
	decodeData(t, env, &out)
	return out.Token, out.Order
}
