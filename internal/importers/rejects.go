package importers

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// DefaultRejectLogPath is where rejected records are appended by default.
const DefaultRejectLogPath = "invalid_bookstore.txt"

// RejectLog receives every record the pipeline skips.
type RejectLog interface {
	Reject(entityType, id string)
}

// RejectLogFunc adapts a function to RejectLog.
type RejectLogFunc func(entityType, id string)

func (f RejectLogFunc) Reject(entityType, id string) {
	f(entityType, id)
}

// FormatRejection renders one rejection log line without the newline.
func FormatRejection(entityType, id string) string {
	return fmt.Sprintf("%s with ID %s is invalid", entityType, id)
}

// FileRejectLog appends one line per rejected record to a text file.
// The file is opened in append mode for every line, so it can be rotated
// or removed between imports.
type FileRejectLog struct {
	path string
	mu   sync.Mutex
}

func NewFileRejectLog(path string) *FileRejectLog {
	return &FileRejectLog{path: path}
}

func (l *FileRejectLog) Path() string {
	return l.path
}

func (l *FileRejectLog) Reject(entityType, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("Failed to open rejection log %s: %v", l.path, err)
		return
	}
	defer f.Close()

	logger := log.New(f, "", 0)
	logger.Print(FormatRejection(entityType, id))
}
