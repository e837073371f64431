// Package logging builds the run logger: a zap tee that shows every line
// on the console live while mirroring it into an in-memory transcript,
// which the batch flushes to a file when it completes.
package logging

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Transcript is an append-only in-memory sink for the run's log output.
// It implements zapcore.WriteSyncer.
type Transcript struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write appends formatted log output to the transcript.
func (t *Transcript) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.Write(p)
}

// Sync satisfies zapcore.WriteSyncer; the buffer needs no flushing.
func (t *Transcript) Sync() error { return nil }

// String returns everything logged so far.
func (t *Transcript) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}

// WriteFile dumps the transcript to path.
func (t *Transcript) WriteFile(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := os.WriteFile(path, t.buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// New creates the dual-sink logger. Console output goes to stdout at the
// requested level; the transcript captures the same lines.
func New(level string) (*zap.Logger, *Transcript, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encCfg)

	transcript := &Transcript{}
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), lvl),
		zapcore.NewCore(encoder, transcript, lvl),
	)
	return zap.New(core), transcript, nil
}
