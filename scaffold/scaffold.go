// Package scaffold creates JavaScript front-end projects by shelling out to
// external scaffolding tools (create-react-app, gatsby), streaming their
// output as events, and tagging the generated package.json with guppy
// metadata.
package scaffold

import (
	"errors"
	"fmt"
	"time"
)

// ProjectType identifies the external scaffolding tool to use.
type ProjectType string

const (
	// TypeCreateReactApp scaffolds via create-react-app.
	TypeCreateReactApp ProjectType = "create-react-app"
	// TypeGatsby scaffolds via gatsby new.
	TypeGatsby ProjectType = "gatsby"
)

// ErrUnrecognizedProjectType is returned for any type outside the closed enum.
var ErrUnrecognizedProjectType = errors.New("unrecognized project type")

// ParseProjectType validates a raw string against the closed enum.
func ParseProjectType(s string) (ProjectType, error) {
	switch t := ProjectType(s); t {
	case TypeCreateReactApp, TypeGatsby:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedProjectType, s)
	}
}

// ProjectInfo describes the project to create. Input only; the scaffold
// package never persists it directly.
type ProjectInfo struct {
	Name string
	Type ProjectType
	Icon string
}

// EventType distinguishes emitted creation events.
type EventType int

const (
	// EventStatus is a progress update from the orchestrator itself.
	EventStatus EventType = iota
	// EventToolOutput is one line from the scaffolding tool's stdout.
	EventToolOutput
	// EventToolError is one line from the scaffolding tool's stderr.
	EventToolError
	// EventCompleted carries the final patched manifest. Emitted at most once,
	// only on the full-success path.
	EventCompleted
	// EventFailed reports an unrecoverable failure: spawn error, nonzero tool
	// exit (unless ignored), or a manifest read/write error.
	EventFailed
)

// Event is one notification from a project creation run. Line is set for
// Status/ToolOutput/ToolError, Manifest for Completed, Err for Failed.
type Event struct {
	Type     EventType
	Line     string
	Manifest *Manifest
	Err      error
	When     time.Time
}
