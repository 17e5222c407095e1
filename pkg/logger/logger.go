package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Leveled process logger shared by the activity service binaries.
// Init(level) once at startup; the printf-style helpers and the key/value
// helpers (Infow, Warnw, Errorw) are safe for concurrent use.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu     sync.RWMutex
	logger *log.Logger = log.New(os.Stdout, "", 0)
	level  Level       = LevelInfo
)

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	level = ParseLevel(l)
}

// ParseLevel maps a level name to a Level, LevelInfo when unknown.
func ParseLevel(l string) Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	}
	return LevelInfo
}

// SetOutput redirects log output and returns a func restoring the previous destination.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev := logger
	logger = log.New(w, "", 0)
	return func() {
		mu.Lock()
		logger = prev
		mu.Unlock()
	}
}

func header(lvl string) string {
	return fmt.Sprintf("%s [%s] ", time.Now().UTC().Format(time.RFC3339), strings.ToUpper(lvl))
}

func output(l Level, lvl, msg string) {
	mu.RLock()
	defer mu.RUnlock()
	if l < level {
		return
	}
	logger.Print(header(lvl) + msg)
}

func Debugf(format string, v ...interface{}) { output(LevelDebug, "debug", fmt.Sprintf(format, v...)) }
func Infof(format string, v ...interface{})  { output(LevelInfo, "info", fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...interface{})  { output(LevelWarn, "warn", fmt.Sprintf(format, v...)) }
func Errorf(format string, v ...interface{}) { output(LevelError, "error", fmt.Sprintf(format, v...)) }

func Fatalf(format string, v ...interface{}) {
	output(LevelFatal, "fatal", fmt.Sprintf(format, v...))
	os.Exit(1)
}

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// Infow logs msg followed by key=value pairs, e.g.
// Infow("activity logged", "userId", "u1", "minutes", 30).
func Infow(msg string, kv ...interface{})  { output(LevelInfo, "info", withFields(msg, kv)) }
func Warnw(msg string, kv ...interface{})  { output(LevelWarn, "warn", withFields(msg, kv)) }
func Errorw(msg string, kv ...interface{}) { output(LevelError, "error", withFields(msg, kv)) }

func withFields(msg string, kv []interface{}) string {
	if len(kv) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(kv); i += 2 {
		b.WriteByte(' ')
		if i+1 == len(kv) {
			fmt.Fprintf(&b, "!extra=%v", kv[i])
			break
		}
		val := fmt.Sprint(kv[i+1])
		if strings.ContainsAny(val, " \t\"") {
			val = fmt.Sprintf("%q", val)
		}
		fmt.Fprintf(&b, "%v=%s", kv[i], val)
	}
	return b.String()
}

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
