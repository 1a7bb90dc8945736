package telemetry

import (
	"fmt"
	"sync"
	"time"
)

// Logger is the centralized structured logger shared by every
// subsystem (vm, rle, resource, video, audio, host, engine). Logging
// is opt-in per component and is drained off the hot path by a
// background goroutine so a disabled or slow sink never stalls a tic.
type Logger struct {
	entries    []LogEntry
	entriesMu  sync.RWMutex
	maxEntries int
	writeIndex int
	entryCount int

	componentEnabled map[Component]bool
	componentMu      sync.RWMutex

	minLevel LogLevel
	levelMu  sync.RWMutex

	logChan  chan LogEntry
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewLogger creates a logger with the given circular-buffer capacity.
func NewLogger(maxEntries int) *Logger {
	if maxEntries < 100 {
		maxEntries = 100
	}

	logger := &Logger{
		entries:    make([]LogEntry, maxEntries),
		maxEntries: maxEntries,
		componentEnabled: map[Component]bool{
			ComponentVM:       false,
			ComponentRLE:      false,
			ComponentResource: false,
			ComponentVideo:    false,
			ComponentAudio:    false,
			ComponentHost:     false,
			ComponentEngine:   false,
		},
		minLevel: LogLevelInfo,
		logChan:  make(chan LogEntry, 1000),
		shutdown: make(chan struct{}),
	}

	logger.wg.Add(1)
	go logger.processLogs()

	return logger
}

func (l *Logger) processLogs() {
	defer l.wg.Done()

	for {
		select {
		case entry := <-l.logChan:
			l.addEntry(entry)
		case <-l.shutdown:
			for {
				select {
				case entry := <-l.logChan:
					l.addEntry(entry)
				default:
					return
				}
			}
		}
	}
}

func (l *Logger) addEntry(entry LogEntry) {
	l.entriesMu.Lock()
	defer l.entriesMu.Unlock()

	l.entries[l.writeIndex] = entry
	l.writeIndex = (l.writeIndex + 1) % l.maxEntries
	if l.entryCount < l.maxEntries {
		l.entryCount++
	}
}

// Log records a message for component at level, subject to the
// component's enable flag and the logger's minimum level.
func (l *Logger) Log(component Component, level LogLevel, message string, data map[string]interface{}) {
	l.componentMu.RLock()
	enabled := l.componentEnabled[component]
	l.componentMu.RUnlock()
	if !enabled {
		return
	}

	l.levelMu.RLock()
	minLevel := l.minLevel
	l.levelMu.RUnlock()
	if level < minLevel {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Component: component,
		Level:     level,
		Message:   message,
		Data:      data,
	}

	select {
	case l.logChan <- entry:
	default:
		// Channel full: drop rather than block the caller.
	}
}

// Logf logs a formatted message.
func (l *Logger) Logf(component Component, level LogLevel, format string, args ...interface{}) {
	l.Log(component, level, fmt.Sprintf(format, args...), nil)
}

func (l *Logger) LogVM(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentVM, level, message, data)
}

func (l *Logger) LogRLE(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentRLE, level, message, data)
}

func (l *Logger) LogResource(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentResource, level, message, data)
}

func (l *Logger) LogVideo(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentVideo, level, message, data)
}

func (l *Logger) LogAudio(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentAudio, level, message, data)
}

func (l *Logger) LogHost(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentHost, level, message, data)
}

func (l *Logger) LogEngine(level LogLevel, message string, data map[string]interface{}) {
	l.Log(ComponentEngine, level, message, data)
}

func (l *Logger) LogVMf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentVM, level, format, args...)
}

func (l *Logger) LogRLEf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentRLE, level, format, args...)
}

func (l *Logger) LogResourcef(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentResource, level, format, args...)
}

func (l *Logger) LogVideof(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentVideo, level, format, args...)
}

func (l *Logger) LogAudiof(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentAudio, level, format, args...)
}

func (l *Logger) LogHostf(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentHost, level, format, args...)
}

func (l *Logger) LogEnginef(level LogLevel, format string, args ...interface{}) {
	l.Logf(ComponentEngine, level, format, args...)
}

// GetEntries returns a copy of all buffered entries, oldest first.
func (l *Logger) GetEntries() []LogEntry {
	l.entriesMu.RLock()
	defer l.entriesMu.RUnlock()

	if l.entryCount == 0 {
		return []LogEntry{}
	}

	entries := make([]LogEntry, l.entryCount)
	if l.entryCount < l.maxEntries {
		copy(entries, l.entries[:l.entryCount])
	} else {
		for i := 0; i < l.entryCount; i++ {
			idx := (l.writeIndex + i) % l.maxEntries
			entries[i] = l.entries[idx]
		}
	}
	return entries
}

// GetRecentEntries returns the most recent count entries.
func (l *Logger) GetRecentEntries(count int) []LogEntry {
	all := l.GetEntries()
	if count >= len(all) {
		return all
	}
	return all[len(all)-count:]
}

// Clear discards all buffered entries.
func (l *Logger) Clear() {
	l.entriesMu.Lock()
	defer l.entriesMu.Unlock()
	l.entryCount = 0
	l.writeIndex = 0
}

// SetComponentEnabled enables or disables logging for a component.
func (l *Logger) SetComponentEnabled(component Component, enabled bool) {
	l.componentMu.Lock()
	defer l.componentMu.Unlock()
	l.componentEnabled[component] = enabled
}

// SetAllComponentsEnabled enables or disables every known component at
// once (cmd/dump_logs enables all of them before running).
func (l *Logger) SetAllComponentsEnabled(enabled bool) {
	l.componentMu.Lock()
	defer l.componentMu.Unlock()
	for c := range l.componentEnabled {
		l.componentEnabled[c] = enabled
	}
}

// IsComponentEnabled returns whether a component is enabled.
func (l *Logger) IsComponentEnabled(component Component) bool {
	l.componentMu.RLock()
	defer l.componentMu.RUnlock()
	return l.componentEnabled[component]
}

// SetMinLevel sets the minimum log level that will be recorded.
func (l *Logger) SetMinLevel(level LogLevel) {
	l.levelMu.Lock()
	defer l.levelMu.Unlock()
	l.minLevel = level
}

// GetMinLevel returns the minimum log level.
func (l *Logger) GetMinLevel() LogLevel {
	l.levelMu.RLock()
	defer l.levelMu.RUnlock()
	return l.minLevel
}

// Shutdown stops the drain goroutine after flushing any queued entries.
func (l *Logger) Shutdown() {
	close(l.shutdown)
	l.wg.Wait()
}
