package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leanviz/layout3d/internal/engine"
	"github.com/leanviz/layout3d/internal/physics"
)

func dialTest(t *testing.T) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(New(nil).Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/sim"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestInitStepRoundTrip(t *testing.T) {
	conn := dialTest(t)

	init := `{
		"type": "init",
		"positions": {"a": [0,0,0], "b": [10,0,0]},
		"edges": [{"source": "a", "target": "b"}],
		"physics": {"repulsionStrength": 100, "springLength": 8}
	}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(init)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"step"}`)))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev wireEvent
	require.NoError(t, conn.ReadJSON(&ev))

	assert.Equal(t, "positions", ev.Type)
	assert.Greater(t, ev.Movement, 0.0)
	assert.Len(t, ev.Positions, 2)
	a := ev.Positions["a"]
	b := ev.Positions["b"]
	assert.NotEqual(t, [3]float64{}, a)
	assert.NotEqual(t, [3]float64{10, 0, 0}, b)
}

func TestMalformedFrameSkipped(t *testing.T) {
	conn := dialTest(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"warp"}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{
		"type": "init",
		"positions": {"a": [1,0,0]}
	}`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"step"}`)))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var ev wireEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "positions", ev.Type)
}

func TestKillClosesConnection(t *testing.T) {
	conn := dialTest(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"kill"}`)))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "connection should close after kill")
}

func TestDecodeCommandDefaults(t *testing.T) {
	cmd, err := decodeCommand([]byte(`{"type":"init","positions":{"a":[0,0,0]},"physics":{"damping":0.5}}`))
	require.NoError(t, err)

	init, ok := cmd.(engine.Init)
	require.True(t, ok)
	assert.Equal(t, 0.5, init.Physics.Damping)
	// Omitted physics fields come back as engine defaults, not zeroes.
	assert.Equal(t, physics.DefaultConfig().RepulsionStrength, init.Physics.RepulsionStrength)

	_, err = decodeCommand([]byte(`{"type":"warp"}`))
	assert.Error(t, err)
}
