package transport

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// LineConn frames messages as newline-terminated lines over a stream.
type LineConn struct {
	conn        net.Conn
	reader      *bufio.Reader
	readTimeout time.Duration
}

// NewLineConn wraps conn. A zero readTimeout blocks reads indefinitely.
func NewLineConn(conn net.Conn, readTimeout time.Duration) *LineConn {
	return &LineConn{
		conn:        conn,
		reader:      bufio.NewReader(conn),
		readTimeout: readTimeout,
	}
}

// ReadMessage returns the next line without its terminator.
// A line cut short by the peer closing yields io.ErrUnexpectedEOF.
func (c *LineConn) ReadMessage() ([]byte, error) {
	if c.readTimeout > 0 {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return nil, fmt.Errorf("failed to set read deadline: %w", err)
		}
	}

	line, err := c.reader.ReadBytes('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return bytes.TrimRight(line, "\r\n"), nil
}

// WriteMessage writes data followed by a newline in a single write.
func (c *LineConn) WriteMessage(data []byte) error {
	frame := make([]byte, 0, len(data)+1)
	frame = append(frame, data...)
	frame = append(frame, '\n')
	_, err := c.conn.Write(frame)
	return err
}

func (c *LineConn) Close() error {
	return c.conn.Close()
}
