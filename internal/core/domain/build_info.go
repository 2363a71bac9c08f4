package domain

import "time"

// BuildInfo records the last successful emission of an archive.
type BuildInfo struct {
	Archive    string    `json:"archive,omitzero"`
	InputHash  string    `json:"input_hash,omitzero"`
	OutputHash string    `json:"output_hash,omitzero"`
	FileCount  int       `json:"file_count,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}
