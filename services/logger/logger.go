package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level định nghĩa các mức độ log
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
)

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Options cấu hình logger. File rỗng thì chỉ ghi ra stdout
type Options struct {
	Level     Level
	File      string
	Component string
}

// DefaultLogger implement Logger interface dựa trên logrus
type DefaultLogger struct {
	entry *logrus.Entry
}

// NewDefaultLogger tạo một instance mới của DefaultLogger
func NewDefaultLogger(opts Options) *DefaultLogger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(toLogrus(opts.Level))

	var out io.Writer = os.Stdout
	if opts.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10,
			MaxBackups: 3,
			LocalTime:  true,
		})
	}
	l.SetOutput(out)

	entry := logrus.NewEntry(l)
	if opts.Component != "" {
		entry = entry.WithField("component", opts.Component)
	}
	return &DefaultLogger{entry: entry}
}

// With trả về logger con có thêm field component
func (l *DefaultLogger) With(component string) *DefaultLogger {
	return &DefaultLogger{entry: l.entry.WithField("component", component)}
}

// Info log thông tin
func (l *DefaultLogger) Info(format string, v ...interface{}) {
	l.entry.Infof(format, v...)
}

// Error log lỗi
func (l *DefaultLogger) Error(format string, v ...interface{}) {
	l.entry.Errorf(format, v...)
}

// Debug log debug
func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	l.entry.Debugf(format, v...)
}

// ParseLevel đọc LOG_LEVEL, mặc định là info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func toLogrus(level Level) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

type discard struct{}

func (discard) Info(string, ...interface{})  {}
func (discard) Error(string, ...interface{}) {}
func (discard) Debug(string, ...interface{}) {}

// Discard bỏ qua mọi log, dùng trong test
func Discard() Logger {
	return discard{}
}
