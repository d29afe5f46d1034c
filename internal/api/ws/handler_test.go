package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlhannes/hannes-os/internal/domain/vfs"
	"github.com/carlhannes/hannes-os/internal/domain/window"
	"github.com/carlhannes/hannes-os/internal/storage"
)

type wsFixture struct {
	fs     *vfs.Service
	server *httptest.Server
	conn   *websocket.Conn
}

func dial(t *testing.T) *wsFixture {
	t.Helper()

	fs := vfs.NewService(storage.NewMemory(), nil)
	require.NoError(t, fs.Initialize(context.Background()))
	windows := window.NewManager(1920, 1080)
	handler := NewHandler(fs, windows, nil, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", handler.HandleConnection)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &wsFixture{fs: fs, server: server, conn: conn}
}

func (f *wsFixture) read(t *testing.T) map[string]interface{} {
	t.Helper()
	require.NoError(t, f.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg map[string]interface{}
	require.NoError(t, f.conn.ReadJSON(&msg))
	return msg
}

func TestConnectionWelcome(t *testing.T) {
	f := dial(t)

	msg := f.read(t)
	assert.Equal(t, "system", msg["type"])
}

func TestPingPong(t *testing.T) {
	f := dial(t)
	f.read(t) // welcome

	require.NoError(t, f.conn.WriteJSON(map[string]string{"type": "ping"}))
	msg := f.read(t)
	assert.Equal(t, "pong", msg["type"])
}

func TestStats(t *testing.T) {
	f := dial(t)
	f.read(t) // welcome

	require.NoError(t, f.conn.WriteJSON(map[string]string{"type": "stats"}))
	msg := f.read(t)
	assert.Equal(t, "stats", msg["type"])
	assert.Contains(t, msg, "fs")
	assert.Contains(t, msg, "windows")
}

func TestUnknownMessage(t *testing.T) {
	f := dial(t)
	f.read(t) // welcome

	require.NoError(t, f.conn.WriteJSON(map[string]string{"type": "bogus"}))
	msg := f.read(t)
	assert.Equal(t, "error", msg["type"])
}

func TestFSChangeBroadcast(t *testing.T) {
	f := dial(t)
	f.read(t) // welcome

	dir, err := f.fs.CreateDirectory(context.Background(), "Docs", f.fs.RootID())
	require.NoError(t, err)

	msg := f.read(t)
	assert.Equal(t, "fs_change", msg["type"])
	assert.Equal(t, "create_directory", msg["op"])
	assert.Equal(t, dir.ID, msg["entity_id"])
}
