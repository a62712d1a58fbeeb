package plc

import (
	"context"
	"fmt"

	"github.com/gopcua/opcua"
	"github.com/gopcua/opcua/id"
	"github.com/gopcua/opcua/ua"
)

// OPCUADialer открывает сессии OPC UA без шифрования (так настроены контроллеры WAGO)
type OPCUADialer struct{}

func NewOPCUADialer() *OPCUADialer {
	return &OPCUADialer{}
}

func (d *OPCUADialer) Dial(ctx context.Context, endpoint string) (Session, error) {
	client, err := opcua.NewClient(endpoint,
		opcua.SecurityMode(ua.MessageSecurityModeNone),
		opcua.AutoReconnect(false),
	)
	if err != nil {
		return nil, fmt.Errorf("opcua.NewClient(%s): %w", endpoint, err)
	}
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("opcua connect %s: %w", endpoint, err)
	}
	return &opcuaSession{client: client}, nil
}

type opcuaSession struct {
	client *opcua.Client
}

func (s *opcuaSession) Write(ctx context.Context, nodeID string, value interface{}) error {
	nid, err := ua.ParseNodeID(nodeID)
	if err != nil {
		return fmt.Errorf("неверный NodeId %q: %w", nodeID, err)
	}
	variant, err := ua.NewVariant(value)
	if err != nil {
		return fmt.Errorf("значение %v (%T) не кодируется в Variant: %w", value, value, err)
	}

	req := &ua.WriteRequest{
		NodesToWrite: []*ua.WriteValue{
			{
				NodeID:      nid,
				AttributeID: ua.AttributeIDValue,
				Value: &ua.DataValue{
					EncodingMask: ua.DataValueValue,
					Value:        variant,
				},
			},
		},
	}

	resp, err := s.client.Write(ctx, req)
	if err != nil {
		return err
	}
	if len(resp.Results) == 0 {
		return fmt.Errorf("пустой ответ на запись %s", nodeID)
	}
	if status := resp.Results[0]; status != ua.StatusOK {
		return fmt.Errorf("запись %s: %w", nodeID, status)
	}
	return nil
}

func (s *opcuaSession) read(ctx context.Context, nodeID string, attr ua.AttributeID) (*ua.Variant, error) {
	nid, err := ua.ParseNodeID(nodeID)
	if err != nil {
		return nil, fmt.Errorf("неверный NodeId %q: %w", nodeID, err)
	}

	req := &ua.ReadRequest{
		MaxAge:             2000,
		NodesToRead:        []*ua.ReadValueID{{NodeID: nid, AttributeID: attr}},
		TimestampsToReturn: ua.TimestampsToReturnBoth,
	}

	resp, err := s.client.Read(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("пустой ответ на чтение %s", nodeID)
	}
	result := resp.Results[0]
	if result.Status != ua.StatusOK {
		return nil, fmt.Errorf("чтение %s: %w", nodeID, result.Status)
	}
	if result.Value == nil {
		return nil, fmt.Errorf("чтение %s: нет значения", nodeID)
	}
	return result.Value, nil
}

func (s *opcuaSession) Read(ctx context.Context, nodeID string) (interface{}, error) {
	v, err := s.read(ctx, nodeID, ua.AttributeIDValue)
	if err != nil {
		return nil, err
	}
	return v.Value(), nil
}

func (s *opcuaSession) DataType(ctx context.Context, nodeID string) (TagType, error) {
	v, err := s.read(ctx, nodeID, ua.AttributeIDDataType)
	if err != nil {
		return TypeUnknown, err
	}
	typeID, ok := v.Value().(*ua.NodeID)
	if !ok || typeID == nil || typeID.Namespace() != 0 {
		return TypeUnknown, nil
	}

	switch typeID.IntID() {
	case id.Boolean:
		return TypeBoolean, nil
	case id.String:
		return TypeString, nil
	case id.Int16:
		return TypeInt16, nil
	case id.UInt16:
		return TypeUInt16, nil
	case id.Int32:
		return TypeInt32, nil
	case id.UInt32:
		return TypeUInt32, nil
	default:
		return TypeUnknown, nil
	}
}

func (s *opcuaSession) Close(ctx context.Context) error {
	return s.client.Close(ctx)
}
