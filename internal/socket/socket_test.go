package socket

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/outline-engine/internal/model"
	"github.com/pstuifzand/outline-engine/internal/outline"
)

// shortDir keeps socket paths under the Unix path length limit.
func shortDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "ol")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func startServer(t *testing.T) *Server {
	server, err := NewServer(shortDir(t), os.Getpid(), nil)
	require.NoError(t, err)
	t.Cleanup(server.Stop)
	server.Start()
	return server
}

// serve runs the handler loop the way the application does.
func serve(t *testing.T, server *Server, h *Handler) {
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	go func() {
		for {
			select {
			case msg := <-server.Messages():
				h.Dispatch(msg)
			case <-done:
				return
			}
		}
	}()
}

func TestAsyncCommandIsQueued(t *testing.T) {
	server := startServer(t)

	client, err := NewClient(server.SocketPath())
	require.NoError(t, err)

	response, err := client.AppendLine("Buy milk", 1)
	require.NoError(t, err)
	assert.True(t, response.Success, response.Message)
	assert.Equal(t, "Command queued", response.Message)

	select {
	case msg := <-server.Messages():
		assert.Equal(t, CommandAppendLine, msg.Command)
		assert.Equal(t, "Buy milk", msg.Text)
		assert.Equal(t, 1, msg.Indent)
		assert.Nil(t, msg.ResponseChan)
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for message")
	}
}

func TestFindRunningInstance(t *testing.T) {
	server := startServer(t)

	socketPath, pid, err := FindRunningInstance(filepath.Dir(server.SocketPath()))
	require.NoError(t, err)
	assert.Equal(t, server.SocketPath(), socketPath)
	assert.Equal(t, os.Getpid(), pid)

	_, _, err = FindRunningInstance(shortDir(t))
	assert.ErrorIs(t, err, ErrNoInstance)
}

func TestSnapshotRoundTripOverSocket(t *testing.T) {
	server := startServer(t)
	doc := outline.New(outline.WithLines([]model.Line{{ID: "a", Text: "alpha"}, {ID: "b", Text: "beta", Indent: 1}}))
	serve(t, server, &Handler{Doc: doc})

	client, err := NewClient(server.SocketPath())
	require.NoError(t, err)

	resp, err := client.Snapshot()
	require.NoError(t, err)
	require.True(t, resp.Success, resp.Message)
	require.NotNil(t, resp.Snapshot)
	assert.Len(t, resp.Snapshot.Lines, 2)
	assert.Equal(t, "beta", resp.Snapshot.Lines[1].Text)

	snap := *resp.Snapshot
	snap.Lines[1].Text = "gamma"
	resp, err = client.ApplySnapshot(snap)
	require.NoError(t, err)
	require.True(t, resp.Success, resp.Message)

	resp, err = client.Search("GAM", "literal")
	require.NoError(t, err)
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, []MatchInfo{{Line: 1, Start: 0, End: 3, Text: "gam"}}, resp.Matches)
}

func TestHandlerCommands(t *testing.T) {
	doc := outline.New(outline.WithLines([]model.Line{{Text: "a@b"}}))
	h := &Handler{Doc: doc}

	resp := h.Handle(Message{Command: CommandVersion})
	assert.True(t, resp.Success)
	v := resp.Version

	resp = h.Handle(Message{Command: CommandAppendLine, Text: "c@d"})
	assert.True(t, resp.Success)
	assert.Equal(t, v+1, resp.Version)

	resp = h.Handle(Message{Command: CommandSearch, Text: `(\w)@(\w)`, Mode: "regex"})
	require.True(t, resp.Success, resp.Message)
	assert.Len(t, resp.Matches, 2)

	resp = h.Handle(Message{Command: CommandSearch, Text: "(", Mode: "regex"})
	assert.False(t, resp.Success)

	resp = h.Handle(Message{Command: CommandSearch, Text: "a", Mode: "fuzzy"})
	assert.False(t, resp.Success)

	assert.False(t, h.Handle(Message{Command: CommandApplySnapshot}).Success)
	assert.False(t, h.Handle(Message{Command: CommandAppendLine}).Success)
	assert.False(t, h.Handle(Message{Command: "add_node"}).Success)
}

func TestDispatchRepliesOnChannel(t *testing.T) {
	h := &Handler{Doc: outline.New()}
	ch := make(chan *Response, 1)
	h.Dispatch(Message{Command: CommandVersion, ResponseChan: ch})

	select {
	case resp := <-ch:
		assert.True(t, resp.Success)
	default:
		t.Fatal("no response delivered")
	}
}
