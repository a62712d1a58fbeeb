// lgnctl - диагностика REST API линий с рабочего места оператора.
//
//	lgnctl                                   опрос: ping, статус, заказы, компоненты
//	lgnctl start <ilot> <order> <code> <qty> отправка заказа на линию
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/iwtcode/lineDispatch/pkg/client"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// runStep выполняет один шаг диагностики и печатает результат
func runStep(name string, fn func(ctx context.Context) (interface{}, error)) {
	log.Printf("--- Запуск шага: %s ---", name)

	result, err := fn(context.Background())
	if err != nil {
		log.Fatalf("Ошибка выполнения на шаге %s: %v", name, err)
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
	log.Printf("--- Шаг %s выполнен успешно ---", name)
	fmt.Println("==================================================")
}

func main() {
	if err := godotenv.Load("./.env"); err != nil {
		log.Printf("Warning: Could not load .env file. Using default values or environment variables: %v", err)
	}

	cfg := client.Load()
	log.Printf("Конфигурация загружена: API=%s, Timeout=%s, Snapshot=%s", cfg.BaseURL, cfg.Timeout, cfg.SnapshotPath)
	c := client.New(cfg)

	if len(os.Args) > 1 && os.Args[1] == "start" {
		if len(os.Args) != 6 {
			log.Fatalf("usage: lgnctl start <ilot> <order> <code> <qty>")
		}
		qty, err := decimal.NewFromString(os.Args[5])
		if err != nil {
			log.Fatalf("Неверное количество %q: %v", os.Args[5], err)
		}
		runStep("Start", func(ctx context.Context) (interface{}, error) {
			return "started", c.Start(ctx, os.Args[2], os.Args[3], os.Args[4], qty)
		})
		return
	}

	runStep("Ping", func(ctx context.Context) (interface{}, error) {
		return c.Ping(ctx), nil
	})

	runStep("Status", func(ctx context.Context) (interface{}, error) {
		return c.Status(ctx)
	})

	var orders []client.Order
	runStep("ListOrders", func(ctx context.Context) (interface{}, error) {
		orders = c.ListOrders(ctx)
		return orders, nil
	})

	if len(orders) == 0 {
		log.Println("Нет заказов, шаг Components пропущен")
		return
	}
	runStep("Components", func(ctx context.Context) (interface{}, error) {
		return c.Components(ctx, orders[0].Number)
	})
}
