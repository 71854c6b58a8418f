// Package ledger records generation runs and the files they wrote.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/cre-datagen/internal/export"
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = eris.New("ledger: run not found")

// RunStatus is the lifecycle state of a run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunSpec holds what identifies and reproduces a run.
type RunSpec struct {
	Seed       uint64   `json:"seed"`
	Today      string   `json:"today"`
	OutputDir  string   `json:"output_dir"`
	Categories []string `json:"categories"`
}

// Run is one generation run.
type Run struct {
	ID        string    `json:"id"`
	Spec      RunSpec   `json:"spec"`
	Status    RunStatus `json:"status"`
	Files     int       `json:"files"`
	Records   int       `json:"records"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RunStats summarises a finished run.
type RunStats struct {
	Files   int
	Records int
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status RunStatus `json:"status,omitempty"`
	Limit  int       `json:"limit,omitempty"`
	Offset int       `json:"offset,omitempty"`
}

// Artifact is a file recorded against a run.
type Artifact struct {
	ID    string `json:"id"`
	RunID string `json:"run_id"`
	export.Artifact
	CreatedAt time.Time `json:"created_at"`
}

// Ledger persists runs and their artifacts.
type Ledger interface {
	CreateRun(ctx context.Context, spec RunSpec) (*Run, error)
	AddArtifact(ctx context.Context, runID string, a export.Artifact) error
	CompleteRun(ctx context.Context, runID string, stats RunStats) error
	FailRun(ctx context.Context, runID string, cause error) error
	GetRun(ctx context.Context, runID string) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)
	ListArtifacts(ctx context.Context, runID string) ([]Artifact, error)

	Migrate(ctx context.Context) error
	Close() error
}

// NopLedger discards everything. CreateRun still returns a run with a fresh
// id so callers can proceed unchanged.
type NopLedger struct{}

var _ Ledger = NopLedger{}

func (NopLedger) CreateRun(_ context.Context, spec RunSpec) (*Run, error) {
	now := time.Now().UTC()
	return &Run{ID: uuid.New().String(), Spec: spec, Status: RunStatusRunning, CreatedAt: now, UpdatedAt: now}, nil
}

func (NopLedger) AddArtifact(context.Context, string, export.Artifact) error { return nil }
func (NopLedger) CompleteRun(context.Context, string, RunStats) error        { return nil }
func (NopLedger) FailRun(context.Context, string, error) error               { return nil }

func (NopLedger) GetRun(_ context.Context, runID string) (*Run, error) {
	return nil, eris.Wrapf(ErrRunNotFound, "ledger: %s", runID)
}

func (NopLedger) ListRuns(context.Context, RunFilter) ([]Run, error)        { return nil, nil }
func (NopLedger) ListArtifacts(context.Context, string) ([]Artifact, error) { return nil, nil }
func (NopLedger) Migrate(context.Context) error                             { return nil }
func (NopLedger) Close() error                                              { return nil }
