// @title Line Dispatch API
// @version 1.0
// @description Отправка производственных заказов Odoo на линии сборки по OPC UA.
// @BasePath /api
package main

import "github.com/iwtcode/lineDispatch/internal/app"

func main() {
	app.New().Run()
}
