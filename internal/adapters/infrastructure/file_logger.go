package infrastructure

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"wapi.app/internal/ports"
	"wapi.app/pkg/errors"
)

// TrafficEntry is one line of the provider traffic log. The provider call attributes
// are first-class keys; anything else a caller logs ends up under "extra".
type TrafficEntry struct {
	Timestamp  string                 `json:"ts"`
	Level      string                 `json:"level"`
	Message    string                 `json:"msg"`
	Event      string                 `json:"event,omitempty"`
	Provider   string                 `json:"provider,omitempty"`
	Endpoint   string                 `json:"endpoint,omitempty"`
	City       string                 `json:"city,omitempty"`
	Country    string                 `json:"country,omitempty"`
	Status     int                    `json:"status,omitempty"`
	DurationMS *int64                 `json:"duration_ms,omitempty"`
	Items      *int64                 `json:"items,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Extra      map[string]interface{} `json:"extra,omitempty"`
}

// FileLoggerAdapter appends provider traffic to a JSON-lines file.
// The file is opened once and kept open until Close.
type FileLoggerAdapter struct {
	path string
	now  func() time.Time

	mu   sync.Mutex
	file *os.File
}

// NewFileLoggerAdapter creates the parent directory if needed
func NewFileLoggerAdapter(logPath string) (*FileLoggerAdapter, error) {
	if logPath == "" {
		return nil, errors.NewConfigurationError("log file path cannot be empty", nil)
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, errors.NewConfigurationError("failed to create log directory", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("failed to open traffic log %s", logPath), err)
	}

	return &FileLoggerAdapter{
		path: logPath,
		now:  time.Now,
		file: file,
	}, nil
}

// Path returns the file entries are appended to
func (f *FileLoggerAdapter) Path() string {
	return f.path
}

func (f *FileLoggerAdapter) Debug(msg string, fields ...ports.Field) { f.write("DEBUG", msg, fields) }
func (f *FileLoggerAdapter) Info(msg string, fields ...ports.Field)  { f.write("INFO", msg, fields) }
func (f *FileLoggerAdapter) Warn(msg string, fields ...ports.Field)  { f.write("WARN", msg, fields) }
func (f *FileLoggerAdapter) Error(msg string, fields ...ports.Field) { f.write("ERROR", msg, fields) }

// Close releases the file. Later writes are dropped.
func (f *FileLoggerAdapter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}

func (f *FileLoggerAdapter) write(level, msg string, fields []ports.Field) {
	entry := newTrafficEntry(f.now(), level, msg, fields)

	line, err := json.Marshal(entry)
	if err != nil {
		line = []byte(fmt.Sprintf(`{"ts":%q,"level":"ERROR","msg":"failed to marshal log entry","error":%q}`,
			entry.Timestamp, err.Error()))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.file == nil {
		return
	}
	if _, err := f.file.Write(append(line, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write traffic log entry: %v\n", err)
	}
}

func newTrafficEntry(at time.Time, level, msg string, fields []ports.Field) TrafficEntry {
	entry := TrafficEntry{
		Timestamp: at.UTC().Format(time.RFC3339Nano),
		Level:     level,
		Message:   msg,
	}

	for _, field := range fields {
		handled := false
		switch field.Key {
		case "event":
			entry.Event, handled = field.Value.(string)
		case "provider":
			entry.Provider, handled = field.Value.(string)
		case "endpoint":
			entry.Endpoint, handled = field.Value.(string)
		case "city":
			entry.City, handled = field.Value.(string)
		case "country":
			entry.Country, handled = field.Value.(string)
		case "status":
			var n int64
			if n, handled = asInt64(field.Value); handled {
				entry.Status = int(n)
			}
		case "duration_ms":
			var n int64
			if n, handled = asInt64(field.Value); handled {
				entry.DurationMS = &n
			}
		case "items":
			var n int64
			if n, handled = asInt64(field.Value); handled {
				entry.Items = &n
			}
		case "error":
			switch v := field.Value.(type) {
			case error:
				entry.Error, handled = v.Error(), true
			case string:
				entry.Error, handled = v, true
			}
		}
		if handled {
			continue
		}

		if entry.Extra == nil {
			entry.Extra = make(map[string]interface{})
		}
		if err, ok := field.Value.(error); ok {
			entry.Extra[field.Key] = err.Error()
		} else {
			entry.Extra[field.Key] = field.Value
		}
	}
	return entry
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case time.Duration:
		return n.Milliseconds(), true
	default:
		return 0, false
	}
}
