package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// APIError - ответ сервиса с кодом ошибки
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("line dispatch API: %d %s", e.Status, e.Message)
}

// Client является основной точкой входа для панелей оператора.
// Каждый запрос ограничен таймаутом из конфигурации, повторов нет.
type Client struct {
	config   *Config
	http     *http.Client
	logger   *logrus.Logger
	snapshot *Snapshot
	group    singleflight.Group
}

// New создает и возвращает новый экземпляр клиента.
func New(cfg *Config) *Client {
	logger := logrus.New()

	if cfg.LogLevel == "off" || cfg.LogLevel == "none" {
		logger.SetOutput(io.Discard)
	} else {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
		logger.SetOutput(os.Stdout)
	}

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &Client{
		config:   cfg,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
		snapshot: NewSnapshot(cfg.SnapshotPath),
	}
}

// GetLogger возвращает используемый логгер.
func (c *Client) GetLogger() *logrus.Logger {
	return c.logger
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ListOrders возвращает список заказов. При успехе снимок перезаписывается,
// при сбое возвращается содержимое снимка либо пустой список. Ошибка только логируется.
// Одновременные вызовы объединяются в один запрос.
func (c *Client) ListOrders(ctx context.Context) []Order {
	v, _, _ := c.group.Do("orders", func() (interface{}, error) {
		return c.fetchOrders(ctx), nil
	})
	return v.([]Order)
}

func (c *Client) fetchOrders(ctx context.Context) []Order {
	var resp ordersResponse
	err := c.do(ctx, http.MethodGet, "/orders", nil, &resp)
	if err == nil {
		if resp.Orders == nil {
			resp.Orders = []Order{}
		}
		if serr := c.snapshot.Save(resp.Orders); serr != nil {
			c.logger.WithError(serr).WithField("path", c.snapshot.Path()).Warn("failed to save orders snapshot")
		}
		return resp.Orders
	}

	c.logger.WithError(err).Warn("failed to fetch orders, falling back to snapshot")
	orders, ok, lerr := c.snapshot.Load()
	if lerr != nil {
		c.logger.WithError(lerr).WithField("path", c.snapshot.Path()).Warn("failed to read orders snapshot")
	}
	if !ok || lerr != nil {
		return []Order{}
	}
	return orders
}

// Components возвращает строки компонентов заказа
func (c *Client) Components(ctx context.Context, orderNumber string) ([]string, error) {
	var resp componentsResponse
	if err := c.do(ctx, http.MethodGet, "/orders/components?of_name="+url.QueryEscape(orderNumber), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Components, nil
}

// Status возвращает доступность линий
func (c *Client) Status(ctx context.Context) ([]LineState, error) {
	var resp statusResponse
	if err := c.do(ctx, http.MethodGet, "/status", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Ilots, nil
}

// Ping сообщает, отвечает ли сервис
func (c *Client) Ping(ctx context.Context) bool {
	if err := c.do(ctx, http.MethodGet, "/test", nil, nil); err != nil {
		c.logger.WithError(err).Debug("ping failed")
		return false
	}
	return true
}

// Start отправляет заказ на линию. Импульс подтверждения подает сервис
// и только после успешной записи.
func (c *Client) Start(ctx context.Context, line, orderNumber, productCode string, quantity decimal.Decimal) error {
	body := startRequest{Ilot: line, Code: productCode, Quantity: NewQuantity(quantity)}
	if err := c.do(ctx, http.MethodPost, "/orders/"+escapeOrder(orderNumber)+"/start", body, nil); err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{"ilot": line, "order": orderNumber}).Error("failed to start order")
		return err
	}
	c.logger.WithFields(logrus.Fields{"ilot": line, "order": orderNumber}).Info("order started")
	return nil
}

// escapeOrder экранирует сегменты номера заказа, сохраняя '/'
func escapeOrder(orderNumber string) string {
	parts := strings.Split(orderNumber, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
