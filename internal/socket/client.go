package socket

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pstuifzand/outline-engine/internal/model"
)

// ErrNoInstance is returned when no running instance has a socket in the directory.
var ErrNoInstance = errors.New("no running outliner instance found")

// Client sends commands to a running instance
type Client struct {
	socketPath string
}

// FindRunningInstance returns the newest socket in dir and the PID encoded in
// its name (0 when it cannot be parsed).
func FindRunningInstance(dir string) (string, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return "", 0, fmt.Errorf("error scanning socket directory: %w", err)
	}

	var newest string
	var newestTime time.Time
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "outliner-") || !strings.HasSuffix(name, ".sock") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = filepath.Join(dir, name)
			newestTime = info.ModTime()
		}
	}
	if newest == "" {
		return "", 0, ErrNoInstance
	}

	pidStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(newest), "outliner-"), ".sock")
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		pid = 0
	}
	return newest, pid, nil
}

// NewClient creates a new client for the specified socket
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}

	return &Client{
		socketPath: socketPath,
	}, nil
}

// Send sends a message to the server and returns the response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(ResponseTimeout + 5*time.Second))

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}

	return &response, nil
}

// Snapshot fetches the current document snapshot.
func (c *Client) Snapshot() (*Response, error) {
	return c.Send(Message{Command: CommandSnapshot})
}

// ApplySnapshot replaces the document of the running instance.
func (c *Client) ApplySnapshot(snap model.Snapshot) (*Response, error) {
	return c.Send(Message{Command: CommandApplySnapshot, Snapshot: &snap})
}

// Search runs a query against the running instance without touching its
// search panel.
func (c *Client) Search(query, mode string) (*Response, error) {
	return c.Send(Message{Command: CommandSearch, Text: query, Mode: mode})
}

// AppendLine queues a new line at the end of the document.
func (c *Client) AppendLine(text string, indent int) (*Response, error) {
	return c.Send(Message{Command: CommandAppendLine, Text: text, Indent: indent})
}
