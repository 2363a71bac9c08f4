package tui

import (
	"bytes"
	"sync"

	"github.com/charmbracelet/bubbletea"
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// LogWriter turns written text into MsgLogLine messages, one per complete line.
type LogWriter struct {
	mu      sync.Mutex
	sender  Sender
	pending []byte
}

// NewLogWriter creates a LogWriter sending to s.
func NewLogWriter(s Sender) *LogWriter {
	return &LogWriter{sender: s}
}

// Write buffers p and sends every complete line it contains.
func (w *LogWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		w.sender.Send(MsgLogLine{Text: string(w.pending[:i])})
		w.pending = w.pending[i+1:]
	}
	return len(p), nil
}
