package server

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// ConsoleMessage represents a log entry forwarded to a websocket client
type ConsoleMessage struct {
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// consoleCore is a zapcore.Core that forwards entries to a console channel
type consoleCore struct {
	zapcore.LevelEnabler
	fields  []zapcore.Field
	console chan<- ConsoleMessage
}

// NewConsoleCore creates a core that sends entries at or above level to
// console. Sends never block; entries are dropped while the channel is full.
func NewConsoleCore(level zapcore.LevelEnabler, console chan<- ConsoleMessage) zapcore.Core {
	return &consoleCore{LevelEnabler: level, console: console}
}

func (c *consoleCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = make([]zapcore.Field, 0, len(c.fields)+len(fields))
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return &clone
}

func (c *consoleCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *consoleCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if c.console == nil {
		return nil
	}

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	select {
	case c.console <- ConsoleMessage{
		Message:   ent.Message,
		Timestamp: ent.Time,
		Level:     ent.Level.String(),
		Fields:    enc.Fields,
	}:
	default:
		// Channel full, skip (don't block)
	}
	return nil
}

func (c *consoleCore) Sync() error {
	return nil
}
