package model

import (
	"time"
)

// SessionRecord is one committed segment of focused work on a problem
type SessionRecord struct {
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Duration  time.Duration `json:"duration"`
}

// NewSessionRecord builds a record for the interval [start, end)
func NewSessionRecord(start, end time.Time) SessionRecord {
	return SessionRecord{
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}
}
