package participant

import (
	"bufio"
	"net"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// Transport carries protocol lines to and from one client
type Transport interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
	RemoteAddr() string
}

// ConnTransport frames lines with '\n' over a stream connection
type ConnTransport struct {
	conn   net.Conn
	reader *bufio.Reader
	mu     sync.Mutex
}

// NewConnTransport wraps a TCP (or in-memory) connection
func NewConnTransport(conn net.Conn) *ConnTransport {
	return &ConnTransport{conn: conn, reader: bufio.NewReader(conn)}
}

func (t *ConnTransport) ReadLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *ConnTransport) WriteLine(line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := t.conn.Write([]byte(line + "\n"))
	return err
}

func (t *ConnTransport) Close() error { return t.conn.Close() }

func (t *ConnTransport) RemoteAddr() string { return t.conn.RemoteAddr().String() }

// WebSocketTransport carries one line per text frame
type WebSocketTransport struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewWebSocketTransport wraps an upgraded websocket connection
func NewWebSocketTransport(conn *websocket.Conn) *WebSocketTransport {
	return &WebSocketTransport{conn: conn}
}

func (t *WebSocketTransport) ReadLine() (string, error) {
	_, data, err := t.conn.ReadMessage()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func (t *WebSocketTransport) WriteLine(line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (t *WebSocketTransport) Close() error {
	t.mu.Lock()
	_ = t.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	t.mu.Unlock()
	return t.conn.Close()
}

func (t *WebSocketTransport) RemoteAddr() string { return t.conn.RemoteAddr().String() }
