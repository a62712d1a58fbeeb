package plc

import (
	"context"
	"fmt"
)

// TagType - объявленный тип данных тега на контроллере
type TagType int

const (
	TypeUnknown TagType = iota
	TypeBoolean
	TypeString
	TypeInt16
	TypeUInt16
	TypeInt32
	TypeUInt32
)

func (t TagType) String() string {
	switch t {
	case TypeBoolean:
		return "Boolean"
	case TypeString:
		return "String"
	case TypeInt16:
		return "Int16"
	case TypeUInt16:
		return "UInt16"
	case TypeInt32:
		return "Int32"
	case TypeUInt32:
		return "UInt32"
	default:
		return "Unknown"
	}
}

// Session - одно подключение к контроллеру. Значения для Write - скаляры Go
// (string, bool, int16, uint16, int32, uint32), тип определяет тип варианта.
type Session interface {
	Write(ctx context.Context, nodeID string, value interface{}) error
	Read(ctx context.Context, nodeID string) (interface{}, error)
	DataType(ctx context.Context, nodeID string) (TagType, error)
	Close(ctx context.Context) error
}

// Dialer открывает сессию к эндпоинту контроллера
type Dialer interface {
	Dial(ctx context.Context, endpoint string) (Session, error)
}

// integerFor приводит значение к объявленному типу целочисленного тега.
// Беззнаковые и Int16 теги получают свой тип, все остальные - Int32.
func integerFor(tagType TagType, value int32) (interface{}, error) {
	switch tagType {
	case TypeUInt16:
		if value < 0 || value > 0xFFFF {
			return nil, fmt.Errorf("значение %d вне диапазона UInt16", value)
		}
		return uint16(value), nil
	case TypeUInt32:
		if value < 0 {
			return nil, fmt.Errorf("значение %d вне диапазона UInt32", value)
		}
		return uint32(value), nil
	case TypeInt16:
		if value < -0x8000 || value > 0x7FFF {
			return nil, fmt.Errorf("значение %d вне диапазона Int16", value)
		}
		return int16(value), nil
	default:
		return value, nil
	}
}

// zeroOf возвращает нулевое значение того же типа, используется для отката записи
func zeroOf(value interface{}) interface{} {
	switch value.(type) {
	case bool:
		return false
	case string:
		return ""
	case int16:
		return int16(0)
	case uint16:
		return uint16(0)
	case uint32:
		return uint32(0)
	default:
		return int32(0)
	}
}

// toInt приводит прочитанное значение тега к int
func toInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int8:
		return int(v), nil
	case uint8:
		return int(v), nil
	case int16:
		return int(v), nil
	case uint16:
		return int(v), nil
	case int32:
		return int(v), nil
	case uint32:
		return int(v), nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case int:
		return v, nil
	case float32:
		return int(v), nil
	case float64:
		return int(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("неподдерживаемый тип значения %T", value)
	}
}
