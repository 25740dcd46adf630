package logger

import (
	"log"

	logModel "civic-report/models/log"
	"civic-report/types"

	"gorm.io/gorm"
)

// AsyncLogger persists request/response log entries without blocking the
// request path. Entries are pushed onto a buffered channel and written to
// the database by a single goroutine started via ProcessLog.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100),
	}
}

func (l *AsyncLogger) ProcessLog() {
	for entry := range l.channel {
		dbLog := logModel.Log{
			Method:          entry.Method,
			URL:             entry.URL,
			RequestBody:     entry.RequestBody,
			ResponseBody:    entry.ResponseBody,
			RequestHeaders:  entry.RequestHeaders,
			ResponseHeaders: entry.ResponseHeaders,
			StatusCode:      entry.StatusCode,
			CreatedAt:       entry.CreatedAt,
		}

		if err := l.db.Create(&dbLog).Error; err != nil {
			log.Printf("Failed to insert log entry: %v", err)
		}
	}
}

// Log pushes a log entry into the channel.
func (l *AsyncLogger) Log(entry types.LogEntry) {
	l.channel <- entry
}
