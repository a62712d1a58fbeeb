package odoo

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/kolo/xmlrpc"
)

const (
	serviceCommon = "common"
	serviceObject = "object"
)

// Caller выполняет один XML-RPC вызов к сервису Odoo ("common" или "object")
type Caller interface {
	Call(ctx context.Context, service, method string, args []interface{}, reply interface{}) error
}

// XMLRPCCaller - реализация Caller поверх kolo/xmlrpc.
// Клиент создаётся на каждый вызов, общий только пул соединений транспорта.
type XMLRPCCaller struct {
	baseURL   string
	transport *http.Transport
}

func NewXMLRPCCaller(baseURL string, timeout time.Duration) *XMLRPCCaller {
	return &XMLRPCCaller{
		baseURL: baseURL,
		transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
			ResponseHeaderTimeout: timeout,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

// contextTransport подставляет контекст вызова в каждый HTTP запрос клиента
type contextTransport struct {
	ctx  context.Context
	next http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.next.RoundTrip(req.Clone(t.ctx))
}

// Call выполняет вызов и прерывает HTTP запрос при отмене контекста.
func (x *XMLRPCCaller) Call(ctx context.Context, service, method string, args []interface{}, reply interface{}) error {
	c, err := xmlrpc.NewClient(
		fmt.Sprintf("%s/xmlrpc/2/%s", x.baseURL, service),
		contextTransport{ctx: ctx, next: x.transport},
	)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Call(method, args, reply); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s.%s: %w", service, method, ctxErr)
		}
		return err
	}
	return nil
}
