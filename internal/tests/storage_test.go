package tests

import (
	"context"
	"testing"

	"bistro-orders/internal/domain"
	"bistro-orders/internal/service"
	"bistro-orders/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_ReadWriteDelete(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, found, err := store.Read("bistro:cart:v2")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Write("bistro:cart:v2", []byte(`[{"line_id":"l1"}]`)))

	data, found, err := store.Read("bistro:cart:v2")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `[{"line_id":"l1"}]`, string(data))

	require.NoError(t, store.Delete("bistro:cart:v2"))
	_, found, err = store.Read("bistro:cart:v2")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting a missing key is not an error.
	require.NoError(t, store.Delete("bistro:cart:v2"))
}

func newRedisStore(t *testing.T) (*storage.RedisKeyedStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewRedisKeyedStore(client), mr
}

func TestRedisKeyedStore_PathsMapToColonKeys(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "restaurants/resto/takeaway/ord-1/status", "ready"))

	value, err := mr.Get("restaurants:resto:takeaway:ord-1:status")
	require.NoError(t, err)
	assert.Equal(t, "ready", value)

	data, found, err := store.Get(ctx, "restaurants/resto/takeaway/ord-1/status")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "ready", string(data))

	_, found, err = store.Get(ctx, "restaurants/resto/takeaway/missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisKeyedStore_RecordsMarshalToJSON(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	record := map[string]any{"status": "pending", "total": 147.0}
	require.NoError(t, store.Set(ctx, "restaurants/resto/takeaway/ord-2", record))

	value, err := mr.Get("restaurants:resto:takeaway:ord-2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"pending","total":147}`, value)
}

func TestRedisKeyedStore_Counter(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	// Missing counter reads as zero.
	value, err := store.GetCounter(ctx, "counters/resto/2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, int64(0), value)

	require.NoError(t, store.SetCounter(ctx, "counters/resto/2026-08-31", 2000))
	value, err = store.GetCounter(ctx, "counters/resto/2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), value)
}

func TestRedisKeyedStore_IncrWrap(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	next, err := store.IncrWrap(ctx, "counters/resto/2026-08-31", 2000)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	require.NoError(t, store.SetCounter(ctx, "counters/resto/2026-08-31", 2000))
	next, err = store.IncrWrap(ctx, "counters/resto/2026-08-31", 2000)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
}

func TestOrderNumbering_AgainstRealStore(t *testing.T) {
	store, _ := newRedisStore(t)
	svc := service.NewOrderService("resto", store, nil, nil, false)
	ctx := context.Background()

	cfg := domain.OrderConfig{Type: domain.OrderTypeTakeaway}
	first, err := svc.CreateOrder(ctx, checkoutLines(), cfg, 210.0, "")
	require.NoError(t, err)
	second, err := svc.CreateOrder(ctx, checkoutLines(), cfg, 210.0, "")
	require.NoError(t, err)

	assert.Equal(t, 1, first.ClientNumber)
	assert.Equal(t, 2, second.ClientNumber)
	assert.NotEqual(t, first.OrderID, second.OrderID)
}

func TestPostgresCatalog_ListMenuItems(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{
		"id", "restaurant_id", "name", "description", "price",
		"category_id", "emoji", "popular", "special", "available", "image_url",
	}).
		AddRow("entrecote", 1, "Entrecôte", "Grillée", 70.0, "mains", "🥩", true, false, true, "").
		AddRow("burger", 1, "Burger Maison", "", 60.0, "mains", "🍔", false, false, true, "")

	mock.ExpectQuery("SELECT m.id, m.restaurant_id").
		WithArgs("resto").
		WillReturnRows(rows)

	repo := storage.NewPostgresCatalog(mockDB)
	items, err := repo.ListMenuItems("resto")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Entrecôte", items[0].Name)
	assert.True(t, items[0].Popular)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCatalog_GetMenuItemNotFound(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectQuery("SELECT m.id, m.restaurant_id").
		WithArgs("resto", "missing").
		WillReturnError(assert.AnError)

	repo := storage.NewPostgresCatalog(mockDB)
	item, err := repo.GetMenuItem("resto", "missing")
	assert.Nil(t, item)
	assert.Error(t, err)
}
