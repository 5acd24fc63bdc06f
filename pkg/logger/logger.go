// Package logger is a thin leveled wrapper over the standard log package.
package logger

import (
	"log"
	"os"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	Silence
)

func (l Level) tag() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type leveledLogger struct {
	min Level
	out *log.Logger
}

func NewLogger(min Level) *leveledLogger {
	return &leveledLogger{
		min: min,
		out: log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *leveledLogger) printf(level Level, msg string, a ...any) {
	if level < l.min {
		return
	}

	l.out.Printf(level.tag()+" "+msg, a...)
}

func (l *leveledLogger) Debugf(msg string, a ...any) {
	l.printf(LevelDebug, msg, a...)
}

func (l *leveledLogger) Infof(msg string, a ...any) {
	l.printf(LevelInfo, msg, a...)
}

func (l *leveledLogger) Warnf(msg string, a ...any) {
	l.printf(LevelWarn, msg, a...)
}

func (l *leveledLogger) Errorf(msg string, a ...any) {
	l.printf(LevelError, msg, a...)
}
