package dto

import "time"

// ArchiveDownloadResponse carries a time-limited download link for one
// archived report card.
type ArchiveDownloadResponse struct {
	ArchiveID string    `json:"archive_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
