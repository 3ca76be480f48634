package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

// Level controls logger verbosity.
type Level int

// The levels that can be passed to SetLevel and SetModuleLevel.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelNames = [...]string{"debug", "info", "notice", "warning", "error"}

var backendLevels = [...]logging.Level{
	logging.DEBUG,
	logging.INFO,
	logging.NOTICE,
	logging.WARNING,
	logging.ERROR,
}

func (l Level) clamp() Level {
	return max(Debug, min(Error, l))
}

func (l Level) String() string {
	return levelNames[l.clamp()]
}

// ParseLevel accepts a level name in any case
func ParseLevel(name string) (Level, error) {
	name = strings.TrimSpace(name)
	for i, n := range levelNames {
		if strings.EqualFold(n, name) {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

// The logger format
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// Backend state. Levels outlive the backend so that replacing the sink
// keeps them.
var (
	mu             sync.Mutex
	sink           io.Writer = os.Stderr
	leveledBackend logging.LeveledBackend
	defaultLevel   = Notice
	moduleLevels   = map[string]Level{}
)

// Logger is the leveled logger used by every package of the tracer.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a named logger. The name shows up as the module column and
// selects the level set with SetModuleLevel.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink overrides the backend output sink.
func SetSink(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	sink = w
	install()
}

// install rebuilds the backend over sink and applies every known level.
// Callers hold mu.
func install() {
	backend := logging.NewLogBackend(sink, "", 0)
	leveledBackend = logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	leveledBackend.SetLevel(backendLevels[defaultLevel], "")
	for module, level := range moduleLevels {
		leveledBackend.SetLevel(backendLevels[level], module)
	}
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity of every module without a level of its own.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	defaultLevel = level.clamp()
	if leveledBackend == nil {
		install()
		return
	}
	leveledBackend.SetLevel(backendLevels[defaultLevel], "")
}

// SetModuleLevel sets the verbosity of one module, overriding SetLevel.
func SetModuleLevel(module string, level Level) {
	mu.Lock()
	defer mu.Unlock()
	moduleLevels[module] = level.clamp()
	if leveledBackend == nil {
		install()
		return
	}
	leveledBackend.SetLevel(backendLevels[level.clamp()], module)
}

// SetModuleLevels applies a comma separated list of module=level pairs such
// as "scene=debug,renderer=warning". Nothing is applied if any pair is
// malformed.
func SetModuleLevels(list string) error {
	levels := map[string]Level{}
	for _, pair := range strings.Split(list, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		module, name, ok := strings.Cut(pair, "=")
		module = strings.TrimSpace(module)
		if !ok || module == "" {
			return fmt.Errorf("expected module=level, got %q", pair)
		}
		level, err := ParseLevel(name)
		if err != nil {
			return fmt.Errorf("module %s: %w", module, err)
		}
		levels[module] = level
	}

	for module, level := range levels {
		SetModuleLevel(module, level)
	}
	return nil
}

// ResetModuleLevels drops every module override.
func ResetModuleLevels() {
	mu.Lock()
	defer mu.Unlock()
	moduleLevels = map[string]Level{}
	install()
}

func init() {
	SetSink(os.Stderr)
}
