package logger

import (
	"log"

	logmodel "estate-access/models/log"

	"gorm.io/gorm"
)

// AsyncLogger drains HTTP request/response entries into the logs table
// without blocking the request path. Distinct from the validation audit
// trail, which is written synchronously inside the engine.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan logmodel.Log
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan logmodel.Log, 100), // Buffered channel to hold log entries
	}
}

// ProcessLog runs in its own goroutine and persists queued entries.
func (logger *AsyncLogger) ProcessLog() {
	log.Println("Starting asynchronous request logger...")

	for entry := range logger.channel {
		if err := logger.db.Create(&entry).Error; err != nil {
			log.Printf("Failed to insert request log entry: %v", err)
		}
	}
}

// Log pushes a log entry into the channel. Drops the entry when the buffer
// is full rather than stalling a request.
func (logger *AsyncLogger) Log(entry logmodel.Log) {
	select {
	case logger.channel <- entry:
	default:
		log.Println("Request log buffer full, dropping entry")
	}
}
