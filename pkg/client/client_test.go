package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersJSON = `{"orders":[
{"numero":"WH/MO/00012","code":"Assembly (27)","quantite":12,"etat":"confirmed"},
{"numero":"WH/MO/00011","code":"Article ? (?)","quantite":3.5,"etat":"draft"}]}`

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return New(&Config{
		BaseURL:      baseURL,
		Timeout:      time.Second,
		SnapshotPath: filepath.Join(t.TempDir(), "of_cache.json"),
		LogLevel:     "off",
	})
}

func TestListOrdersWritesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders", r.URL.Path)
		_, _ = w.Write([]byte(ordersJSON))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/api")
	orders := c.ListOrders(context.Background())
	require.Len(t, orders, 2)
	assert.Equal(t, "WH/MO/00012", orders[0].Number)
	assert.True(t, decimal.RequireFromString("3.5").Equal(orders[1].Quantity.Decimal))

	saved, ok, err := c.snapshot.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, saved, 2)
	assert.Equal(t, orders[0].Number, saved[0].Number)
	assert.Equal(t, orders[1].Code, saved[1].Code)

	// временных файлов не остается
	entries, err := os.ReadDir(filepath.Dir(c.snapshot.Path()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".of-cache-tmp-")
	}
}

func TestListOrdersFallsBackToSnapshot(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Failed to list orders"}`))
			return
		}
		_, _ = w.Write([]byte(ordersJSON))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	first := c.ListOrders(context.Background())
	require.Len(t, first, 2)

	fail.Store(true)
	second := c.ListOrders(context.Background())
	require.Len(t, second, 2)
	assert.Equal(t, first[0].Number, second[0].Number)
}

func TestListOrdersNoSnapshotReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	srv.Close()

	c := newTestClient(t, srv.URL)
	orders := c.ListOrders(context.Background())
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
	_, err := os.Stat(c.snapshot.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestListOrdersEmptyListOverwritesSnapshot(t *testing.T) {
	var empty atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if empty.Load() {
			_, _ = w.Write([]byte(`{"orders":[]}`))
			return
		}
		_, _ = w.Write([]byte(ordersJSON))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	require.Len(t, c.ListOrders(context.Background()), 2)

	empty.Store(true)
	assert.Empty(t, c.ListOrders(context.Background()))
	saved, ok, err := c.snapshot.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, saved)
}

func TestListOrdersCoalescesConcurrentCalls(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(ordersJSON))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	var wg sync.WaitGroup
	results := make([][]Order, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.ListOrders(context.Background())
		}(i)
	}

	require.Eventually(t, func() bool { return hits.Load() >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	for _, r := range results {
		assert.Len(t, r, 2)
	}
}

func TestStartPostsOrder(t *testing.T) {
	var got startRequest
	var path string
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		var err error
		raw, err = io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &got))
		_, _ = w.Write([]byte(`{"status":"started","ilot":"LGN01","order":"WH/MO/00012"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	require.NoError(t, c.Start(context.Background(), "LGN01", "WH/MO/00012", "Assembly (27)", decimal.NewFromInt(12)))
	assert.Equal(t, "/orders/WH/MO/00012/start", path)
	assert.Equal(t, "LGN01", got.Ilot)
	assert.Equal(t, "Assembly (27)", got.Code)
	assert.True(t, decimal.NewFromInt(12).Equal(got.Quantity.Decimal))
	assert.Contains(t, string(raw), `"quantity":12`)
}

func TestStartReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to start order WH/MO/00012 on line LGN02"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.Start(context.Background(), "LGN02", "WH/MO/00012", "Assembly (27)", decimal.NewFromInt(12))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Contains(t, apiErr.Message, "LGN02")
}

func TestStatusComponentsPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/status":
			_, _ = w.Write([]byte(`{"ilots":[{"ilot":"LGN01","etat":"OFF"}]}`))
		case "/orders/components":
			assert.Equal(t, "WH/MO/00012", r.URL.Query().Get("of_name"))
			_, _ = w.Write([]byte(`{"components":["Screw M4 x24"]}`))
		case "/test":
			_, _ = w.Write([]byte(`{"message":"ok"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	states, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []LineState{{Ilot: "LGN01", Etat: "OFF"}}, states)

	components, err := c.Components(context.Background(), "WH/MO/00012")
	require.NoError(t, err)
	assert.Equal(t, []string{"Screw M4 x24"}, components)

	assert.True(t, c.Ping(context.Background()))
	srv.Close()
	assert.False(t, c.Ping(context.Background()))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LGN_API", "")
	t.Setenv("LGN_API_TIMEOUT_MS", "")
	t.Setenv("LGN_CACHE", "")

	cfg := Load()
	assert.Equal(t, "http://127.0.0.1:5000/api", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/of_cache.json", cfg.SnapshotPath)

	t.Setenv("LGN_API", "http://10.0.0.5:5000/api/")
	t.Setenv("LGN_API_TIMEOUT_MS", "750")
	cfg = Load()
	assert.Equal(t, "http://10.0.0.5:5000/api", cfg.BaseURL)
	assert.Equal(t, 750*time.Millisecond, cfg.Timeout)
}
