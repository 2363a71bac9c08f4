package domain

import "strings"

// StageStatus represents the lifecycle state of one pipeline stage for an archive.
type StageStatus string

const (
	// StageStatusPending indicates the stage has not started.
	StageStatusPending StageStatus = "pending"
	// StageStatusRunning indicates the stage is executing.
	StageStatusRunning StageStatus = "running"
	// StageStatusCompleted indicates the stage wrote its artifact.
	StageStatusCompleted StageStatus = "completed"
	// StageStatusFailed indicates the stage failed.
	StageStatusFailed StageStatus = "failed"
	// StageStatusCached indicates the artifact was already up to date and left untouched.
	StageStatusCached StageStatus = "cached"
)

// IsTerminal checks if a status is a terminal state (Completed, Failed, Cached).
func (s StageStatus) IsTerminal() bool {
	switch s {
	case StageStatusCompleted, StageStatusFailed, StageStatusCached:
		return true
	default:
		return false
	}
}

// NormalizeStageStatus converts a string to a StageStatus, defaulting to pending if unknown.
func NormalizeStageStatus(s string) StageStatus {
	switch strings.ToLower(s) {
	case string(StageStatusRunning):
		return StageStatusRunning
	case string(StageStatusCompleted):
		return StageStatusCompleted
	case string(StageStatusFailed):
		return StageStatusFailed
	case string(StageStatusCached):
		return StageStatusCached
	default:
		return StageStatusPending
	}
}

// ArchiveResult summarizes what the pipeline did for one archive.
type ArchiveResult struct {
	Archive      string
	Entries      int
	CacheChanged bool
	SourceStatus StageStatus
	HeaderStatus StageStatus
}
