package logger

import (
	"os"
	"sync/atomic"
)

// ReopenableWriteSyncer appends to the watchdog log file and can reopen it
// after an external rotation moved the old file aside (SIGHUP-driven).
type ReopenableWriteSyncer struct {
	path string
	file atomic.Pointer[os.File]
}

func NewReopenableWriteSyncer(path string) (*ReopenableWriteSyncer, error) {
	ws := &ReopenableWriteSyncer{
		path: path,
	}
	if err := ws.Reload(); err != nil {
		return nil, err
	}
	return ws, nil
}

// Reload opens the configured path again and swaps it in, closing the
// previously open file.
func (ws *ReopenableWriteSyncer) Reload() error {
	file, err := os.OpenFile(ws.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if old := ws.file.Swap(file); old != nil {
		return old.Close()
	}
	return nil
}

func (ws *ReopenableWriteSyncer) Write(p []byte) (int, error) {
	return ws.file.Load().Write(p)
}

func (ws *ReopenableWriteSyncer) Sync() error {
	return ws.file.Load().Sync()
}

func (ws *ReopenableWriteSyncer) Close() error {
	return ws.file.Load().Close()
}
