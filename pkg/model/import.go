package model

import "time"

const MentorImportRequestedEvent = "mentor.import.requested"

// MentorImport points at an uploaded spreadsheet waiting to be processed.
type MentorImport struct {
	Bucket      string    `json:"bucket" validate:"required"`
	Key         string    `json:"key" validate:"required"`
	RequestedBy string    `json:"requestedBy,omitempty"`
	RequestedAt time.Time `json:"requestedAt"`
}

type ImportResult struct {
	SuccessCount int `json:"successCount"`
	ErrorCount   int `json:"errorCount"`
}
