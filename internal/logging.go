package internal

// Leveled logging on top of logrus.

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	base  *logrus.Logger
	entry *logrus.Entry
}

type LogLevel int

const (
	// error levels that should almost always be printed
	LevelFatal LogLevel = iota // error that must stop the program
	LevelError                 // error that does not need to stop execution

	// debugging levels, okay to disable
	LevelWarn // something may be wrong, but not necessarily an error
	LevelInfo // nothing wrong, informational only

	// Production code by default only shows warnings and above.
	LogLevelDefault = LevelWarn

	// min, max levels for setting print level
	LevelMin = LevelFatal
	LevelMax = LevelInfo
)

var toLogrus = []logrus.Level{
	LevelFatal: logrus.FatalLevel,
	LevelError: logrus.ErrorLevel,
	LevelWarn:  logrus.WarnLevel,
	LevelInfo:  logrus.InfoLevel,
}

func NewLogger() *Logger {
	base := logrus.New()
	base.SetOutput(os.Stderr)
	base.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	base.SetLevel(toLogrus[LogLevelDefault])
	return &Logger{base: base, entry: logrus.NewEntry(base)}
}

// WithFields returns a logger that adds fields to every entry. It shares the level and
// output of l.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	return &Logger{base: l.base, entry: l.entry.WithFields(logrus.Fields(fields))}
}

// SetOutput redirects the logger and every logger derived from it.
func (l *Logger) SetOutput(w io.Writer) {
	l.base.SetOutput(w)
}

func (l *Logger) LogLevel() LogLevel {
	switch l.base.GetLevel() {
	case logrus.PanicLevel, logrus.FatalLevel:
		return LevelFatal
	case logrus.ErrorLevel:
		return LevelError
	case logrus.WarnLevel:
		return LevelWarn
	}
	return LevelInfo
}

// SetLogLevel returns the old level
func (l *Logger) SetLogLevel(level LogLevel) LogLevel {
	if level < LevelMin || level > LevelMax {
		panic("trying to set invalid log level")
	}
	old := l.LogLevel()
	l.base.SetLevel(toLogrus[level])
	return old
}

func (l *Logger) output(level LogLevel, s string) {
	l.entry.Log(toLogrus[level], strings.TrimSuffix(s, "\n"))
}

func (l *Logger) Info(v ...any)                 { l.output(LevelInfo, fmt.Sprintln(v...)) }
func (l *Logger) Infof(format string, v ...any) { l.output(LevelInfo, fmt.Sprintf(format, v...)) }

func (l *Logger) Warn(v ...any)                 { l.output(LevelWarn, fmt.Sprintln(v...)) }
func (l *Logger) Warnf(format string, v ...any) { l.output(LevelWarn, fmt.Sprintf(format, v...)) }

func (l *Logger) Error(v ...any)                 { l.output(LevelError, fmt.Sprintln(v...)) }
func (l *Logger) Errorf(format string, v ...any) { l.output(LevelError, fmt.Sprintf(format, v...)) }

func (l *Logger) Fatal(v ...any) {
	l.base.Out.Write(debug.Stack())
	l.entry.Fatal(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func (l *Logger) Fatalf(format string, v ...any) {
	l.base.Out.Write(debug.Stack())
	l.entry.Fatalf(format, v...)
}
