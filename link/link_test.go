package link

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedModule returns one queued chunk per Read and EOF when idle
type scriptedModule struct {
	mu      sync.Mutex
	written bytes.Buffer
	chunks  []string
	err     error
}

func (m *scriptedModule) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.chunks) == 0 {
		if m.err != nil {
			return 0, m.err
		}
		return 0, io.EOF
	}
	n := copy(p, m.chunks[0])
	m.chunks[0] = m.chunks[0][n:]
	if m.chunks[0] == "" {
		m.chunks = m.chunks[1:]
	}
	return n, nil
}

func (m *scriptedModule) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.written.Write(p)
}

func (m *scriptedModule) queue(s string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = append(m.chunks, s)
}

type lineRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *lineRecorder) sink(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

func (r *lineRecorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

func TestCommands(t *testing.T) {
	cmds := Commands(Config{Name: "TEST_VM", PIN: "1234"})

	require.Len(t, cmds, 10)
	assert.Equal(t, "SET CONTROL ECHO 4", cmds[0])
	assert.Equal(t, "SET BT NAME TEST_VM", cmds[1])
	assert.Equal(t, "SET BT AUTH * 1234", cmds[7])
	assert.Equal(t, "SET PROFILE HFP ON", cmds[9])
}

func TestConfigureWritesLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Configure(&buf, DefaultConfig()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, Commands(DefaultConfig()), lines)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("uart down") }

func TestConfigureError(t *testing.T) {
	assert.Error(t, Configure(failingWriter{}, DefaultConfig()))
}

func TestPassThroughSplitsLines(t *testing.T) {
	module := &scriptedModule{}
	module.queue("READY.\r\nRING 0 ")
	module.queue("00:11:22:33:44:55 1 HFP\r\n")

	rec := &lineRecorder{}
	task := NewTask(module, Config{Name: "VM", PIN: "0000", Poll: time.Millisecond}, rec.sink)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- task.Run(ctx) }()

	require.Eventually(t, func() bool { return len(rec.get()) == 2 }, time.Second, time.Millisecond)

	module.queue("NO CARRIER")
	time.Sleep(5 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)

	assert.Equal(t, []string{"READY.", "RING 0 00:11:22:33:44:55 1 HFP", "NO CARRIER"}, rec.get())
	assert.True(t, strings.HasPrefix(module.written.String(), "SET CONTROL ECHO 4\n"))
}

func TestPassThroughSplitsLongLines(t *testing.T) {
	module := &scriptedModule{err: errors.New("port closed")}
	module.queue(strings.Repeat("x", MaxLineLength+10))

	rec := &lineRecorder{}
	task := NewTask(module, DefaultConfig(), rec.sink)

	err := task.PassThrough(context.Background())
	assert.EqualError(t, err, "port closed")

	lines := rec.get()
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], MaxLineLength)
	assert.Len(t, lines[1], 10)
}
