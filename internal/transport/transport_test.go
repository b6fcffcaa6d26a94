package transport

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineConn_ReadMessage(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	conn := NewLineConn(client, 0)
	defer conn.Close()

	go func() {
		server.Write([]byte("first\nsecond\r\npartial"))
		server.Close()
	}()

	line, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "first", string(line))

	line, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "second", string(line))

	_, err = conn.ReadMessage()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestLineConn_ReadMessage_EOF(t *testing.T) {
	client, server := net.Pipe()
	conn := NewLineConn(client, 0)
	defer conn.Close()
	server.Close()

	_, err := conn.ReadMessage()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineConn_ReadTimeout(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	conn := NewLineConn(client, 20*time.Millisecond)
	defer conn.Close()

	_, err := conn.ReadMessage()
	var netErr net.Error
	require.True(t, errors.As(err, &netErr), "expected a net.Error, got %v", err)
	assert.True(t, netErr.Timeout())
}

func TestLineConn_WriteMessage(t *testing.T) {
	client, server := net.Pipe()
	defer server.Close()
	conn := NewLineConn(client, 0)
	defer conn.Close()

	got := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(server).ReadString('\n')
		got <- line
	}()

	require.NoError(t, conn.WriteMessage([]byte(`{"player_name":"Alice"}`)))

	select {
	case line := <-got:
		assert.Equal(t, "{\"player_name\":\"Alice\"}\n", line)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the written line")
	}
}

func TestDial_TCP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		line, _ := bufio.NewReader(c).ReadString('\n')
		c.Write([]byte("echo:" + line))
	}()

	addr := ln.Addr().(*net.TCPAddr)
	conn, err := Dial(context.Background(), Options{
		Network:     NetworkTCP,
		Host:        "127.0.0.1",
		Port:        addr.Port,
		DialTimeout: time.Second,
		ReadTimeout: time.Second,
	})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage([]byte("ping")))
	line, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "echo:ping", string(line))
}

func TestDial_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	_, err = Dial(context.Background(), Options{Network: NetworkTCP, Host: "127.0.0.1", Port: port, DialTimeout: time.Second})
	assert.Error(t, err)
}

func TestDial_UnsupportedNetwork(t *testing.T) {
	_, err := Dial(context.Background(), Options{Network: "udp", Host: "localhost", Port: 40000})
	assert.ErrorIs(t, err, ErrUnsupportedNetwork)
}

func TestDial_WebSocket(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/play" {
			http.NotFound(w, r)
			return
		}
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		_, data, err := c.ReadMessage()
		if err != nil {
			return
		}
		c.WriteMessage(websocket.TextMessage, append([]byte("echo:"), append(data, '\n')...))
	}))
	defer srv.Close()

	host, portStr, err := net.SplitHostPort(strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	conn, err := Dial(context.Background(), Options{
		Network:     NetworkWebSocket,
		Host:        host,
		Port:        port,
		Path:        "/play",
		DialTimeout: time.Second,
		ReadTimeout: time.Second,
	})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage([]byte(`{"player_name":"Alice"}`)))
	msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `echo:{"player_name":"Alice"}`, string(msg))
}

func TestOptions_Address(t *testing.T) {
	assert.Equal(t, "localhost:40000", Options{Host: "localhost", Port: 40000}.Address())
	assert.Equal(t, "[::1]:40000", Options{Host: "::1", Port: 40000}.Address())
}
