package tui

import "github.com/vito/progrock"

// MsgTapeUpdate wraps the raw update from progrock.
type MsgTapeUpdate struct {
	Update *progrock.StatusUpdate
}

// MsgTapeEnded is sent when the tape stream has ended.
type MsgTapeEnded struct{}

// MsgLogLine carries one line of log output to print above the dashboard.
type MsgLogLine struct {
	Text string
}
