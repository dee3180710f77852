// Package core holds the shared data model passed between the pipeline
// stages.
package core

import (
	"time"

	"newspress/internal/schedule"
)

// Article is a prepared news item awaiting publication. It is created by the
// prepare pass (raw Drive file, classified, rewritten) and is immutable once
// placed in the pool.
type Article struct {
	ID              string            `json:"id"` // source file identifier
	Title           string            `json:"title"`
	Body            string            `json:"body"`
	Category        schedule.Category `json:"category"`
	OriginalTitle   string            `json:"original_title,omitempty"`
	OriginalBody    string            `json:"original_body,omitempty"`
	Summary         string            `json:"summary,omitempty"`
	InvestmentTip   string            `json:"investment_tip,omitempty"`
	PreparedAt      time.Time         `json:"prepared_at"`
	RewriteFallback bool              `json:"rewrite_fallback,omitempty"` // body is the unmodified original
}

// StorageFile describes a file listed from cloud storage.
type StorageFile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ModifiedTime time.Time `json:"modified_time"`
}

// PrepareOutcome records what happened to one file during a prepare pass.
type PrepareOutcome struct {
	ID            string            `json:"id,omitempty"`
	OriginalTitle string            `json:"original_title"`
	NewTitle      string            `json:"new_title,omitempty"`
	Category      schedule.Category `json:"category,omitempty"`
	Fallback      bool              `json:"fallback,omitempty"`
	Error         string            `json:"error,omitempty"`
}

// PrepareReport aggregates a full prepare pass.
type PrepareReport struct {
	RunID    string           `json:"run_id"`
	FolderID string           `json:"folder_id,omitempty"`
	Total    int              `json:"total"`
	Prepared int              `json:"prepared"`
	Results  []PrepareOutcome `json:"results"`
}

// PublishOutcome records one publication attempt.
type PublishOutcome struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Category      schedule.Category `json:"category"`
	CategoryLabel string            `json:"category_label"`
	Success       bool              `json:"success"`
	URL           string            `json:"url,omitempty"`
	Error         string            `json:"error,omitempty"`
}

// PublishReport aggregates a full publish pass. A pass with nothing due is a
// valid report, not an error.
type PublishReport struct {
	RunID       string           `json:"run_id"`
	Message     string           `json:"message"`
	CurrentTime time.Time        `json:"current_time"`
	CurrentHour int              `json:"current_hour"`
	Attempted   int              `json:"attempted"`
	Published   int              `json:"published"`
	Results     []PublishOutcome `json:"results,omitempty"`
}

// ScheduleStatus is the read-only view served by the status endpoint.
type ScheduleStatus struct {
	Slots             []schedule.Slot     `json:"schedule"`
	NextPublishTime   time.Time           `json:"next_publish_time"`
	NextPublishDue    []schedule.Category `json:"next_publish_categories"`
	CurrentTime       time.Time           `json:"current_time"`
	PreparedNewsCount int                 `json:"prepared_news_count"`
	// ClosestSlot is set when the policy supports nearest-slot lookup and a
	// slot lies within its tolerance of the current time.
	ClosestSlot *schedule.Slot `json:"closest_slot,omitempty"`
}
