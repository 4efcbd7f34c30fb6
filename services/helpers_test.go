package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/cafe-ordering/kds"
	"github.com/yeremiapane/cafe-ordering/models"
	"github.com/yeremiapane/cafe-ordering/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB -> sqlite in-memory, satu database per test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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
	return db
}

func seedCafe(t *testing.T, db *gorm.DB, open bool) *models.Cafe {
	t.Helper()
	cafe := models.Cafe{Name: "Blue Tokai", City: "Pune", Phone: "9876543210", OpenStatus: open}
	require.NoError(t, db.Create(&cafe).Error)
	return &cafe
}

func seedItem(t *testing.T, db *gorm.DB, cafeID, name string, price int64, inStock bool) *models.Item {
	t.Helper()
	item := models.Item{
		CafeID:   cafeID,
		Category: "Beverages",
		Name:     name,
		Price:    decimal.NewFromInt(price),
		InStock:  inStock,
	}
	require.NoError(t, db.Create(&item).Error)
	return &item
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []kds.NewOrderEvent
}

func (f *fakeBroadcaster) BroadcastNewOrder(event kds.NewOrderEvent) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return 1
}

func (f *fakeBroadcaster) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fakeDispatcher struct {
	mu     sync.Mutex
	pushes []Push
	err    error
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, push Push) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, push)
	return f.err
}

func (f *fakeDispatcher) Close() error { return nil }

func (f *fakeDispatcher) sent() []Push {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Push(nil), f.pushes...)
}

type testEnv struct {
	db          *gorm.DB
	store       *OrderStore
	sessions    *SessionService
	machine     *StateMachine
	ratings     *RatingService
	notify      *NotificationService
	broadcaster *fakeBroadcaster
	dispatcher  *fakeDispatcher
	tokens      *utils.Tokens
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	env := &testEnv{
		db:          db,
		store:       NewOrderStore(db),
		broadcaster: &fakeBroadcaster{},
		dispatcher:  &fakeDispatcher{},
		tokens:      utils.NewTokens("test-secret", time.Hour, time.Hour),
	}
	env.notify = NewNotificationService(db, env.dispatcher)
	env.sessions = NewSessionService(db, env.store, NewCafeGate(db), env.tokens, env.broadcaster, env.notify)
	env.machine = NewStateMachine(db, WhitelistPolicy{}, time.UTC, env.notify)
	env.ratings = NewRatingService(db)
	return env
}

// placedOrder -> sesi baru lalu order ditempatkan dengan satu item
func (e *testEnv) placedOrder(t *testing.T, cafeID string, table int, lines ...LineInput) *models.Order {
	t.Helper()
	ctx := context.Background()
	_, order, err := e.sessions.CreateSession(ctx, cafeID, table)
	require.NoError(t, err)
	placed, err := e.sessions.PlaceOrder(ctx, order.ID, PlaceOrderInput{Lines: lines})
	require.NoError(t, err)
	return placed
}

func (e *testEnv) setStatus(t *testing.T, orderID string, status models.OrderStatus) {
	t.Helper()
	require.NoError(t, e.db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status).Error)
}
