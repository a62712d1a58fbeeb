package odoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/iwtcode/lineDispatch/internal/config"
	"github.com/iwtcode/lineDispatch/internal/domain/models"
	"github.com/iwtcode/lineDispatch/internal/middleware/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	service string
	method  string
	args    []interface{}
}

// fakeCaller отвечает по таблице "service.method[.model.method]"
type fakeCaller struct {
	mu      sync.Mutex
	calls   []recordedCall
	replies map[string]func(args []interface{}) (interface{}, error)
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{replies: make(map[string]func(args []interface{}) (interface{}, error))}
}

func (f *fakeCaller) on(key string, fn func(args []interface{}) (interface{}, error)) {
	f.replies[key] = fn
}

func (f *fakeCaller) Call(_ context.Context, service, method string, args []interface{}, reply interface{}) error {
	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{service: service, method: method, args: args})
	f.mu.Unlock()

	key := service + "." + method
	if method == "execute_kw" {
		key = fmt.Sprintf("%s.%s", args[3], args[4])
	}
	fn, ok := f.replies[key]
	if !ok {
		return fmt.Errorf("unexpected call %s", key)
	}
	result, err := fn(args)
	if err != nil {
		return err
	}
	reflect.ValueOf(reply).Elem().Set(reflect.ValueOf(result))
	return nil
}

func (f *fakeCaller) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		k := c.service + "." + c.method
		if c.method == "execute_kw" {
			k = fmt.Sprintf("%s.%s", c.args[3], c.args[4])
		}
		if k == key {
			n++
		}
	}
	return n
}

func testOdooConfig() config.OdooConfig {
	return config.OdooConfig{URL: "http://odoo", DB: "prod", User: "admin", Password: "secret", Timeout: time.Second}
}

func authOK(args []interface{}) (interface{}, error) { return int64(2), nil }

func TestListOrders(t *testing.T) {
	rpc := newFakeCaller()
	rpc.on("common.authenticate", authOK)
	rpc.on("mrp.production.search_read", func(args []interface{}) (interface{}, error) {
		kwargs := args[6].(map[string]interface{})
		assert.Equal(t, OrdersPageSize, kwargs["limit"])
		assert.Equal(t, "id desc", kwargs["order"])
		return []interface{}{
			map[string]interface{}{"name": "WH/MO/00012", "product_id": []interface{}{int64(5), "Assembly"}, "product_qty": 12.0, "state": "confirmed", "bom_id": []interface{}{int64(9), "BOM"}},
			map[string]interface{}{"name": "WH/MO/00011", "product_id": []interface{}{int64(5), "Assembly"}, "product_qty": 3.5, "state": "draft", "bom_id": []interface{}{int64(9), "BOM"}},
			map[string]interface{}{"name": "WH/MO/00010", "product_id": false, "product_qty": 1.0, "state": "done", "bom_id": false},
		}, nil
	})
	rpc.on("mrp.bom.read", func(args []interface{}) (interface{}, error) {
		return []interface{}{map[string]interface{}{"id": int64(9), "code": "27"}}, nil
	})

	svc := NewService(testOdooConfig(), rpc, logging.NewNop())
	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, "WH/MO/00012", orders[0].Number)
	assert.Equal(t, "Assembly (27)", orders[0].Code)
	assert.True(t, decimal.NewFromInt(12).Equal(orders[0].Quantity))
	assert.Equal(t, "confirmed", orders[0].State)
	assert.True(t, decimal.RequireFromString("3.5").Equal(orders[1].Quantity))
	assert.Equal(t, "Article ? (?)", orders[2].Code)

	// код спецификации запрашивается один раз на вызов
	assert.Equal(t, 1, rpc.count("mrp.bom.read"))
}

func TestListOrdersCachesUID(t *testing.T) {
	rpc := newFakeCaller()
	rpc.on("common.authenticate", authOK)
	rpc.on("mrp.production.search_read", func(args []interface{}) (interface{}, error) {
		assert.Equal(t, int64(2), args[1])
		return []interface{}{}, nil
	})

	svc := NewService(testOdooConfig(), rpc, logging.NewNop())
	for i := 0; i < 3; i++ {
		orders, err := svc.ListOrders(context.Background())
		require.NoError(t, err)
		assert.Empty(t, orders)
	}
	assert.Equal(t, 1, rpc.count("common.authenticate"))
}

func TestListOrdersFailureInvalidatesUID(t *testing.T) {
	rpc := newFakeCaller()
	rpc.on("common.authenticate", authOK)
	fail := true
	rpc.on("mrp.production.search_read", func(args []interface{}) (interface{}, error) {
		if fail {
			return nil, errors.New("connection reset")
		}
		return []interface{}{}, nil
	})

	svc := NewService(testOdooConfig(), rpc, logging.NewNop())
	_, err := svc.ListOrders(context.Background())
	assert.ErrorIs(t, err, ErrBackendUnavailable)

	fail = false
	_, err = svc.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, rpc.count("common.authenticate"))
}

func TestAuthenticationRejected(t *testing.T) {
	rpc := newFakeCaller()
	rpc.on("common.authenticate", func(args []interface{}) (interface{}, error) { return false, nil })

	svc := NewService(testOdooConfig(), rpc, logging.NewNop())
	_, err := svc.ListOrders(context.Background())
	assert.ErrorIs(t, err, ErrBackendUnavailable)
	_, err = svc.ListComponents(context.Background(), "WH/MO/00012")
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestListComponents(t *testing.T) {
	rpc := newFakeCaller()
	rpc.on("common.authenticate", authOK)
	rpc.on("mrp.production.search_read", func(args []interface{}) (interface{}, error) {
		domain := args[5].([]interface{})[0].([]interface{})
		switch domain[0].([]interface{})[2] {
		case "WH/MO/00012":
			return []interface{}{map[string]interface{}{"move_raw_ids": []interface{}{int64(31), int64(32)}}}, nil
		case "WH/MO/00013":
			return []interface{}{map[string]interface{}{"move_raw_ids": []interface{}{}}}, nil
		}
		return []interface{}{}, nil
	})
	rpc.on("stock.move.read", func(args []interface{}) (interface{}, error) {
		return []interface{}{
			map[string]interface{}{"product_id": []interface{}{int64(7), "Screw M4"}, "product_uom_qty": 24.0},
			map[string]interface{}{"product_id": false, "product_uom_qty": 1.0},
		}, nil
	})

	svc := NewService(testOdooConfig(), rpc, logging.NewNop())

	lines, err := svc.ListComponents(context.Background(), "WH/MO/00012")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Screw M4 x24", lines[0].String())
	assert.Equal(t, "Article ? x1", lines[1].String())

	lines, err = svc.ListComponents(context.Background(), "WH/MO/00013")
	require.NoError(t, err)
	assert.Equal(t, []models.ComponentLine{models.NoComponentsLine()}, lines)

	lines, err = svc.ListComponents(context.Background(), "WH/MO/99999")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Order 'WH/MO/99999' not found", lines[0].String())
}

const xmlAuthResponse = `<?xml version="1.0"?>
<methodResponse><params><param><value><int>7</int></value></param></params></methodResponse>`

const xmlEmptyArrayResponse = `<?xml version="1.0"?>
<methodResponse><params><param><value><array><data></data></array></value></param></params></methodResponse>`

const xmlFaultResponse = `<?xml version="1.0"?>
<methodResponse><fault><value><struct>
<member><name>faultCode</name><value><int>1</int></value></member>
<member><name>faultString</name><value><string>Access Denied</string></value></member>
</struct></value></fault></methodResponse>`

func TestXMLRPCCallerAgainstServer(t *testing.T) {
	var paths []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.Header().Set("Content-Type", "text/xml")
		switch r.URL.Path {
		case "/xmlrpc/2/common":
			_, _ = w.Write([]byte(xmlAuthResponse))
		default:
			_, _ = w.Write([]byte(xmlEmptyArrayResponse))
		}
	}))
	defer srv.Close()

	cfg := testOdooConfig()
	cfg.URL = srv.URL
	svc := NewService(cfg, NewXMLRPCCaller(srv.URL, time.Second), logging.NewNop())

	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, []string{"/xmlrpc/2/common", "/xmlrpc/2/object"}, paths)
}

func TestXMLRPCCallerFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(xmlFaultResponse))
	}))
	defer srv.Close()

	svc := NewService(testOdooConfig(), NewXMLRPCCaller(srv.URL, time.Second), logging.NewNop())
	_, err := svc.ListOrders(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.Contains(t, err.Error(), "Access Denied")
}

func TestXMLRPCCallerHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	caller := NewXMLRPCCaller(srv.URL, 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	var reply interface{}
	err := caller.Call(ctx, serviceCommon, "version", nil, &reply)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestXMLRPCCallerConcurrentCalls(t *testing.T) {
	const delay = 200 * time.Millisecond
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(xmlEmptyArrayResponse))
	}))
	defer srv.Close()

	caller := NewXMLRPCCaller(srv.URL, 5*time.Second)

	const calls = 3
	errs := make(chan error, calls)
	start := time.Now()
	for i := 0; i < calls; i++ {
		go func() {
			var reply []interface{}
			errs <- caller.Call(context.Background(), serviceObject, "execute_kw", nil, &reply)
		}()
	}
	for i := 0; i < calls; i++ {
		require.NoError(t, <-errs)
	}
	assert.Less(t, time.Since(start), delay*calls)
}
