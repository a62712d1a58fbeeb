package plc

import (
	"context"
	"errors"
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

type recordedWrite struct {
	node  string
	value interface{}
}

type fakeSession struct {
	mu         sync.Mutex
	writes     []recordedWrite
	failWrites map[string]error
	dataTypes  map[string]TagType
	reads      map[string]interface{}
	closeErr   error
	closed     bool
}

func (s *fakeSession) Write(_ context.Context, nodeID string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failWrites[nodeID]; ok && value != zeroOf(value) {
		return err
	}
	s.writes = append(s.writes, recordedWrite{node: nodeID, value: value})
	return nil
}

func (s *fakeSession) Read(_ context.Context, nodeID string) (interface{}, error) {
	v, ok := s.reads[nodeID]
	if !ok {
		return nil, errors.New("BadNodeIdUnknown")
	}
	return v, nil
}

func (s *fakeSession) DataType(_ context.Context, nodeID string) (TagType, error) {
	return s.dataTypes[nodeID], nil
}

func (s *fakeSession) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return s.closeErr
}

type fakeDialer struct {
	mu       sync.Mutex
	dialErrs map[string]error
	template func() *fakeSession
	sessions []*fakeSession
	dials    int
}

func (d *fakeDialer) Dial(_ context.Context, endpoint string) (Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dials++
	if err, ok := d.dialErrs[endpoint]; ok {
		return nil, err
	}
	s := &fakeSession{}
	if d.template != nil {
		s = d.template()
	}
	d.sessions = append(d.sessions, s)
	return s, nil
}

func testConfig() config.OPCUAConfig {
	return config.OPCUAConfig{
		Lines: []config.LineConfig{
			{ID: "LGN01", Endpoint: "opc.tcp://line1:4840"},
			{ID: "LGN02", Endpoint: "opc.tcp://line2:4840"},
			{ID: "LGN03", Endpoint: "opc.tcp://line3:4840"},
		},
		Tags:          config.DefaultTags(),
		Timeout:       time.Second,
		PulseDuration: 10 * time.Millisecond,
	}
}

func newTestController(d *fakeDialer) *Controller {
	return NewController(testConfig(), d, logging.NewNop())
}

func TestWriteOrderDetailsWritesDerivedValues(t *testing.T) {
	d := &fakeDialer{}
	c := newTestController(d)
	tags := config.DefaultTags()

	derived, err := c.WriteOrderDetails(context.Background(), "LGN01", "WH/MO/00012", "Assembly (27)", decimal.NewFromInt(12))
	require.NoError(t, err)
	assert.Equal(t, models.DerivedOrderValues{OrderID: 12, ProductCodeID: 27, Quantity: 12}, derived)

	require.Len(t, d.sessions, 1)
	s := d.sessions[0]
	assert.True(t, s.closed)
	assert.Equal(t, []recordedWrite{
		{node: tags.OrderRef, value: int32(12)},
		{node: tags.ProductCode, value: uint16(27)},
		{node: tags.Quantity, value: int32(12)},
	}, s.writes)
}

func TestWriteOrderDetailsFollowsDeclaredOrderType(t *testing.T) {
	tags := config.DefaultTags()
	d := &fakeDialer{template: func() *fakeSession {
		return &fakeSession{dataTypes: map[string]TagType{tags.OrderRef: TypeUInt16}}
	}}
	c := newTestController(d)

	_, err := c.WriteOrderDetails(context.Background(), "LGN02", "WH/MO/00017", "Kit", decimal.RequireFromString("3.9"))
	require.NoError(t, err)

	require.Len(t, d.sessions, 1)
	assert.Equal(t, []recordedWrite{
		{node: tags.OrderRef, value: uint16(17)},
		{node: tags.ProductCode, value: uint16(0)},
		{node: tags.Quantity, value: int32(3)},
	}, d.sessions[0].writes)
}

func TestWriteOrderDetailsOrderIDOutOfTagRange(t *testing.T) {
	tags := config.DefaultTags()
	d := &fakeDialer{template: func() *fakeSession {
		return &fakeSession{dataTypes: map[string]TagType{tags.OrderRef: TypeUInt16}}
	}}
	c := newTestController(d)

	_, err := c.WriteOrderDetails(context.Background(), "LGN01", "WH/MO/70000", "Kit (1)", decimal.NewFromInt(1))
	require.ErrorIs(t, err, ErrInvalidOrderNumber)
	require.Len(t, d.sessions, 1)
	assert.Empty(t, d.sessions[0].writes)
	assert.True(t, d.sessions[0].closed)
}

func TestWriteOrderDetailsRejectsInputBeforeConnecting(t *testing.T) {
	cases := []struct {
		name    string
		line    string
		order   string
		code    string
		qty     decimal.Decimal
		wantErr error
	}{
		{"short order number", "LGN01", "1234", "Kit (2)", decimal.NewFromInt(1), ErrInvalidOrderNumber},
		{"non numeric tail", "LGN01", "WH/MO/0001A", "Kit (2)", decimal.NewFromInt(1), ErrInvalidOrderNumber},
		{"product code overflow", "LGN01", "WH/MO/00001", "Kit (99999)", decimal.NewFromInt(1), ErrInvalidProductCode},
		{"zero quantity", "LGN01", "WH/MO/00001", "Kit (2)", decimal.RequireFromString("0.5"), ErrInvalidQuantity},
		{"unknown line", "LGN99", "WH/MO/00001", "Kit (2)", decimal.NewFromInt(1), ErrUnknownLine},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &fakeDialer{}
			c := newTestController(d)

			_, err := c.WriteOrderDetails(context.Background(), tc.line, tc.order, tc.code, tc.qty)
			require.ErrorIs(t, err, tc.wantErr)
			assert.True(t, IsInputError(err))
			assert.Zero(t, d.dials, "no session must be opened")
		})
	}
}

func TestWriteOrderDetailsClearsPartialWrite(t *testing.T) {
	tags := config.DefaultTags()
	d := &fakeDialer{template: func() *fakeSession {
		return &fakeSession{failWrites: map[string]error{tags.Quantity: errors.New("BadTypeMismatch")}}
	}}
	c := newTestController(d)

	_, err := c.WriteOrderDetails(context.Background(), "LGN01", "WH/MO/00012", "Assembly (27)", decimal.NewFromInt(12))
	require.ErrorIs(t, err, ErrControllerWrite)
	assert.False(t, IsInputError(err))

	s := d.sessions[0]
	assert.True(t, s.closed)
	assert.Equal(t, []recordedWrite{
		{node: tags.OrderRef, value: int32(12)},
		{node: tags.ProductCode, value: uint16(27)},
		{node: tags.ProductCode, value: uint16(0)},
		{node: tags.OrderRef, value: int32(0)},
	}, s.writes)
}

func TestWriteOrderDetailsConnectFailure(t *testing.T) {
	d := &fakeDialer{dialErrs: map[string]error{"opc.tcp://line1:4840": errors.New("connection refused")}}
	c := newTestController(d)

	_, err := c.WriteOrderDetails(context.Background(), "LGN01", "WH/MO/00012", "Assembly (27)", decimal.NewFromInt(12))
	require.ErrorIs(t, err, ErrControllerUnavailable)
	assert.Contains(t, err.Error(), "LGN01")
}

func TestWriteOrderStartWritesRawString(t *testing.T) {
	d := &fakeDialer{}
	c := newTestController(d)

	require.NoError(t, c.WriteOrderStart(context.Background(), "LGN03", "WH/MO/00012"))
	require.Len(t, d.sessions, 1)
	assert.Equal(t, []recordedWrite{{node: config.DefaultTags().OrderRef, value: "WH/MO/00012"}}, d.sessions[0].writes)

	require.ErrorIs(t, c.WriteOrderStart(context.Background(), "LGN03", ""), ErrInvalidOrderNumber)
}

func TestProbeReachable(t *testing.T) {
	d := &fakeDialer{}
	c := newTestController(d)
	require.NoError(t, c.ProbeReachable(context.Background(), "LGN01"))
	assert.True(t, d.sessions[0].closed)

	failingClose := &fakeDialer{template: func() *fakeSession {
		return &fakeSession{closeErr: errors.New("BadSessionClosed")}
	}}
	c = newTestController(failingClose)
	require.ErrorIs(t, c.ProbeReachable(context.Background(), "LGN01"), ErrControllerUnavailable)

	require.ErrorIs(t, c.ProbeReachable(context.Background(), "LGN42"), ErrUnknownLine)
}

func TestGetStatesAllUnreachable(t *testing.T) {
	refused := errors.New("connection refused")
	d := &fakeDialer{dialErrs: map[string]error{
		"opc.tcp://line1:4840": refused,
		"opc.tcp://line2:4840": refused,
		"opc.tcp://line3:4840": refused,
	}}
	c := newTestController(d)

	want := []models.LineState{
		{Ilot: "LGN01", Etat: models.LineOff},
		{Ilot: "LGN02", Etat: models.LineOff},
		{Ilot: "LGN03", Etat: models.LineOff},
	}
	first := c.GetStates(context.Background())
	second := c.GetStates(context.Background())
	assert.Equal(t, want, first)
	assert.Equal(t, first, second)
}

func TestGetStatesMixed(t *testing.T) {
	d := &fakeDialer{dialErrs: map[string]error{"opc.tcp://line2:4840": errors.New("i/o timeout")}}
	c := newTestController(d)

	assert.Equal(t, []models.LineState{
		{Ilot: "LGN01", Etat: models.LineOn},
		{Ilot: "LGN02", Etat: models.LineOff},
		{Ilot: "LGN03", Etat: models.LineOn},
	}, c.GetStates(context.Background()))
	for _, s := range d.sessions {
		assert.True(t, s.closed)
	}
}

func TestPushUserRole(t *testing.T) {
	d := &fakeDialer{}
	c := newTestController(d)

	require.ErrorIs(t, c.PushUserRole(context.Background(), "LGN01", models.UserRole(7)), ErrInvalidRole)
	assert.Zero(t, d.dials)

	require.NoError(t, c.PushUserRole(context.Background(), "LGN01", models.RoleMaintenance))
	assert.Equal(t, []recordedWrite{{node: config.DefaultTags().UserRole, value: uint16(2)}}, d.sessions[0].writes)
}

func TestPulseBit(t *testing.T) {
	d := &fakeDialer{}
	c := newTestController(d)
	tag := config.DefaultTags().Validate

	start := time.Now()
	require.NoError(t, c.ConfirmOrder(context.Background(), "LGN01"))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	assert.Equal(t, []recordedWrite{{node: tag, value: true}, {node: tag, value: false}}, d.sessions[0].writes)
	assert.True(t, d.sessions[0].closed)
}

func TestPulseBitResetsWhenCancelled(t *testing.T) {
	d := &fakeDialer{}
	c := newTestController(d)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.PulseBit(ctx, "LGN01", "ns=4;s=Pulse", time.Minute)
	require.Error(t, err)
	assert.Equal(t, []recordedWrite{{node: "ns=4;s=Pulse", value: true}, {node: "ns=4;s=Pulse", value: false}}, d.sessions[0].writes)
}

func TestReadRunState(t *testing.T) {
	tags := config.DefaultTags()
	d := &fakeDialer{template: func() *fakeSession {
		return &fakeSession{reads: map[string]interface{}{tags.StateMachine: int32(2)}}
	}}
	c := newTestController(d)

	state, err := c.ReadRunState(context.Background(), "LGN02")
	require.NoError(t, err)
	assert.Equal(t, models.LineRunState{Ilot: "LGN02", Code: 2, Label: "ALARM"}, state)

	empty := &fakeDialer{}
	c = newTestController(empty)
	_, err = c.ReadRunState(context.Background(), "LGN02")
	require.ErrorIs(t, err, ErrControllerRead)
}
