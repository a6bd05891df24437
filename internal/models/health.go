// ABOUTME: Health probe response models.
// ABOUTME: Liveness status and descriptive backend info.
package models

import "time"

// HealthStatus is the liveness check response.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	Message   string `json:"message"`
}

// CheckedAt converts the millisecond timestamp.
func (h HealthStatus) CheckedAt() time.Time {
	return time.UnixMilli(h.Timestamp)
}

// HealthInfo describes the running backend.
type HealthInfo struct {
	Application string `json:"application"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Features    string `json:"features"`
}
