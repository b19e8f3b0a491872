// Package tcp is the transport collaborator: it owns sockets and the line
// codec, and hands established channels to the core. The core never opens or
// addresses sockets directly.
package tcp

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"sync"
)

// Channel frames a net.Conn as a bidirectional text channel, one message per
// line. Reads are only ever issued by the session's own worker; writes come
// from any goroutine and are serialized by a mutex.
type Channel struct {
	conn   net.Conn
	reader *bufio.Reader

	writeMu sync.Mutex
}

func NewChannel(conn net.Conn) *Channel {
	return &Channel{
		conn:   conn,
		reader: bufio.NewReader(conn),
	}
}

// ReadLine blocks until a full line, end of stream, or error. The trailing
// line terminator is stripped.
func (c *Channel) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Channel) WriteLine(line string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err := fmt.Fprintf(c.conn, "%s\n", line)
	return err
}

// Close forces the underlying socket closed, unblocking any pending read.
func (c *Channel) Close() error {
	return c.conn.Close()
}

func (c *Channel) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
