package log

import (
	"os"
	"sync"

	gperrors "github.com/YuminosukeSato/gaussproc/pkg/errors"
)

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewZerologLogger(os.Stderr, LevelInfo)
)

func init() {
	gperrors.SetZerologWarnFunc(warnThroughGlobal)
}

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetLogger replaces the process-wide logger. Warnings raised through
// pkg/errors.Warn are routed to it as well.
// A nil logger is ignored.
func SetLogger(l Logger) {
	if l == nil {
		return
	}
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
	gperrors.SetZerologWarnFunc(warnThroughGlobal)
}

// GetLoggerWithName returns the global logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

func warnThroughGlobal(w error) {
	var ill *gperrors.IllConditionedWarning
	if gperrors.As(w, &ill) {
		GetLogger().Warn(w.Error(),
			ErrorCodeKey, ErrorIllConditioned,
			InversionMethodKey, ill.Method,
			"condition", ill.Condition,
		)
		return
	}
	GetLogger().Warn(w.Error())
}
