package testutil

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/cory-johannsen/arena/internal/frontend/telnet"
)

// DefaultExpectTimeout bounds each Expect call.
const DefaultExpectTimeout = 3 * time.Second

// TelnetClient is a line-oriented Telnet client for integration tests.
// Received text is matched with ANSI styling removed.
type TelnetClient struct {
	conn   net.Conn
	reader *bufio.Reader
	seen   strings.Builder
	t      testing.TB
}

// NewTelnetClient dials addr and returns a connected client closed on test cleanup.
//
// Precondition: addr must be a "host:port" with a listening server.
// Postcondition: Returns a connected TelnetClient or fails the test.
func NewTelnetClient(t testing.TB, addr string) *TelnetClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v", addr, err)
	}
	t.Cleanup(func() { conn.Close() })
	return &TelnetClient{conn: conn, reader: bufio.NewReader(conn), t: t}
}

// Expect reads until the unstyled output since the previous match contains
// substr, and returns that output.
//
// Precondition: substr must be non-empty.
// Postcondition: Returns the accumulated text containing substr, or fails the test.
func (c *TelnetClient) Expect(substr string) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(DefaultExpectTimeout))
	buf := make([]byte, 1024)
	for {
		text := telnet.StripANSI(c.seen.String())
		if i := strings.Index(text, substr); i >= 0 {
			c.seen.Reset()
			c.seen.WriteString(text[i+len(substr):])
			return text[:i+len(substr)]
		}
		n, err := c.reader.Read(buf)
		if n > 0 {
			c.seen.Write(buf[:n])
		}
		if err != nil {
			c.t.Fatalf("waiting for %q: got %q, error: %v", substr, telnet.StripANSI(c.seen.String()), err)
		}
	}
}

// Send writes text followed by CRLF.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(c.conn, "%s\r\n", text); err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// Close closes the connection.
func (c *TelnetClient) Close() {
	c.conn.Close()
}
