package framework

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// LogLevel identifies the severity of a diagnostic message.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is the leveled diagnostic logging capability that harness components
// receive at construction time. Implementations decide where messages go;
// components only decide what gets said and at what level.
type Logger interface {
	Debugf(message string, args ...interface{})
	Infof(message string, args ...interface{})
	Warnf(message string, args ...interface{})
	Errorf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Debugf(message string, args ...interface{}) {}
func (n nullLogger) Infof(message string, args ...interface{})  {}
func (n nullLogger) Warnf(message string, args ...interface{})  {}
func (n nullLogger) Errorf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards all messages.
func NullLogger() Logger { return nullLogger{} }

// CapturedMessage is one diagnostic message recorded by a CapturingLogger.
type CapturedMessage struct {
	Time    time.Time
	Level   LogLevel
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger accumulates messages in memory, so that the debug output of
// a test can be shown after the fact only if the test failed.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) log(level LogLevel, message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{
		Time:    time.Now(),
		Level:   level,
		Message: fmt.Sprintf(message, args...),
	})
	l.lock.Unlock()
}

func (l *CapturingLogger) Debugf(message string, args ...interface{}) {
	l.log(LogLevelDebug, message, args...)
}

func (l *CapturingLogger) Infof(message string, args ...interface{}) {
	l.log(LogLevelInfo, message, args...)
}

func (l *CapturingLogger) Warnf(message string, args ...interface{}) {
	l.log(LogLevelWarn, message, args...)
}

func (l *CapturingLogger) Errorf(message string, args ...interface{}) {
	l.log(LogLevelError, message, args...)
}

func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append(CapturedOutput(nil), l.output...)
	l.lock.Unlock()
	return ret
}

func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s %s\n",
			prefix,
			m.Time.Format(timestampFormat),
			m.Level,
			m.Message,
		)
	}
}
