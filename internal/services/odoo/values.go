package odoo

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// many2oneID извлекает id из значения many2one: [id, "name"] либо false
func many2oneID(v interface{}) (int64, bool) {
	pair, ok := v.([]interface{})
	if !ok || len(pair) == 0 {
		return 0, false
	}
	switch id := pair[0].(type) {
	case int64:
		return id, id != 0
	case int:
		return int64(id), id != 0
	}
	return 0, false
}

// many2oneName извлекает отображаемое имя из значения many2one
func many2oneName(v interface{}) string {
	pair, ok := v.([]interface{})
	if !ok || len(pair) < 2 {
		return ""
	}
	name, _ := pair[1].(string)
	return name
}

// asString возвращает строку; false и nil в Odoo означают пустое значение
func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case nil, bool:
		return ""
	}
	return fmt.Sprint(v)
}

func asDecimal(v interface{}) decimal.Decimal {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case int64:
		return decimal.NewFromInt(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return d
		}
	}
	return decimal.Zero
}
