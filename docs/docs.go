// Package docs содержит описание REST API в формате swagger 2.0 для gin-swagger.
// Описание соответствует аннотациям обработчиков в internal/adapters/handlers
// и пересобирается командой swag init -g cmd/app/main.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/test": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Service"],
                "summary": "Проверка доступности",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}}
                }
            }
        },
        "/orders": {
            "get": {
                "description": "До 100 последних заказов, новые первыми.",
                "produces": ["application/json"],
                "tags": ["Orders"],
                "summary": "Список заказов",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.OrdersResponse"}},
                    "500": {"description": "Бэкенд заказов недоступен", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/orders/components": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Orders"],
                "summary": "Компоненты заказа",
                "parameters": [
                    {"type": "string", "example": "WH/MO/00012", "description": "Номер заказа", "name": "of_name", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ComponentsResponse"}},
                    "400": {"description": "Не указан of_name", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Бэкенд заказов недоступен", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/orders/{orderNumber}/start": {
            "post": {
                "description": "Записывает id заказа, код продукта и количество в теги контроллера, затем в фоне подает импульс подтверждения.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Orders"],
                "summary": "Запуск заказа на линии",
                "parameters": [
                    {"type": "string", "example": "WH/MO/00012", "description": "Номер заказа, может содержать '/'", "name": "orderNumber", "in": "path", "required": true},
                    {"description": "Линия, код и количество", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.StartOrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StartOrderResponse"}},
                    "400": {"description": "Отсутствуют поля или значения не разбираются", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Неизвестный маршрут", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Ошибка контроллера линии", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/status": {
            "get": {
                "description": "Недоступная линия получает etat=OFF, код ответа всегда 200.",
                "produces": ["application/json"],
                "tags": ["Status"],
                "summary": "Доступность линий",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StatusResponse"}}
                }
            }
        },
        "/status/{ilot}/state": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Status"],
                "summary": "Состояние линии",
                "parameters": [
                    {"type": "string", "example": "LGN01", "description": "Идентификатор линии", "name": "ilot", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LineRunState"}},
                    "404": {"description": "Неизвестная линия", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Ошибка контроллера линии", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/ilots/{ilot}/role": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Ilots"],
                "summary": "Роль оператора",
                "parameters": [
                    {"type": "string", "example": "LGN01", "description": "Идентификатор линии", "name": "ilot", "in": "path", "required": true},
                    {"description": "0 - нет, 1 - оператор, 2 - обслуживание", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RoleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "400": {"description": "Неверная роль", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Неизвестная линия", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Ошибка контроллера линии", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/ilots/{ilot}/reference": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Ilots"],
                "summary": "Ссылка на заказ",
                "parameters": [
                    {"type": "string", "example": "LGN01", "description": "Идентификатор линии", "name": "ilot", "in": "path", "required": true},
                    {"description": "Номер заказа", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ReferenceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "400": {"description": "Не указан номер заказа", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Неизвестная линия", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Ошибка контроллера линии", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/dispatches": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Dispatches"],
                "summary": "Журнал отправок",
                "parameters": [
                    {"type": "integer", "description": "Количество записей (по умолчанию 50, не более 500)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DispatchesResponse"}},
                    "400": {"description": "Неверный limit", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Ошибка хранилища", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string", "example": "missing required fields: quantity"}}
        },
        "models.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string", "example": "Hello from the line dispatch API!"}}
        },
        "models.ManufacturingOrder": {
            "type": "object",
            "properties": {
                "numero": {"type": "string", "example": "WH/MO/00012"},
                "code": {"type": "string", "example": "Assembly (27)"},
                "quantite": {"type": "number", "example": 12},
                "etat": {"type": "string", "example": "confirmed"},
                "product": {"type": "string", "example": "Assembly"},
                "bom_code": {"type": "string", "example": "27"}
            }
        },
        "models.OrdersResponse": {
            "type": "object",
            "properties": {"orders": {"type": "array", "items": {"$ref": "#/definitions/models.ManufacturingOrder"}}}
        },
        "models.ComponentsResponse": {
            "type": "object",
            "properties": {"components": {"type": "array", "items": {"type": "string"}, "example": ["Screw M4 x24"]}}
        },
        "models.StartOrderRequest": {
            "type": "object",
            "properties": {
                "ilot": {"type": "string", "example": "LGN01"},
                "code": {"type": "string", "example": "Assembly (27)"},
                "quantity": {"type": "number", "example": 12},
                "date": {"type": "string", "example": "2025-04-29 13:00:00"}
            }
        },
        "models.StartOrderResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "started"},
                "ilot": {"type": "string", "example": "LGN01"},
                "order": {"type": "string", "example": "WH/MO/00012"}
            }
        },
        "models.LineState": {
            "type": "object",
            "properties": {
                "ilot": {"type": "string", "example": "LGN01"},
                "etat": {"type": "string", "example": "ON"}
            }
        },
        "models.StatusResponse": {
            "type": "object",
            "properties": {"ilots": {"type": "array", "items": {"$ref": "#/definitions/models.LineState"}}}
        },
        "models.LineRunState": {
            "type": "object",
            "properties": {
                "ilot": {"type": "string", "example": "LGN01"},
                "code": {"type": "integer", "example": 1},
                "label": {"type": "string", "example": "RUN"}
            }
        },
        "models.RoleRequest": {
            "type": "object",
            "properties": {"role": {"type": "integer", "example": 1}}
        },
        "models.ReferenceRequest": {
            "type": "object",
            "required": ["order"],
            "properties": {"order": {"type": "string", "example": "WH/MO/00012"}}
        },
        "models.DispatchRecordView": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "ilot": {"type": "string"},
                "order": {"type": "string"},
                "code": {"type": "string"},
                "quantity": {"type": "string"},
                "order_id": {"type": "integer"},
                "product_code_id": {"type": "integer"},
                "outcome": {"type": "string", "example": "started"},
                "error": {"type": "string"},
                "requested_at": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "models.DispatchesResponse": {
            "type": "object",
            "properties": {"dispatches": {"type": "array", "items": {"$ref": "#/definitions/models.DispatchRecordView"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Line Dispatch API",
	Description:      "Отправка производственных заказов Odoo на линии сборки по OPC UA.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
