package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"dqc_validation/pkg/core/dqc"
)

// FindingsRepo handles the storage of validation run results.
type FindingsRepo struct{}

// NewFindingsRepo creates a new repository instance.
func NewFindingsRepo() *FindingsRepo {
	return &FindingsRepo{}
}

// Finding is the flattened, persistable form of one diagnostic.
type Finding struct {
	RuleID   string    `json:"rule_id,omitempty"`
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	FactID   string    `json:"fact_id,omitempty"`
	Children []Finding `json:"children,omitempty"`
}

// Flatten converts diagnostic trees into their persistable form.
func Flatten(diags []*dqc.Diagnostic) []Finding {
	var out []Finding
	for _, d := range diags {
		f := Finding{
			RuleID:   d.RuleID,
			Severity: d.Severity.String(),
			Message:  d.Message,
			Children: Flatten(d.Children),
		}
		if d.Location != nil {
			f.FactID = d.Location.ID
		}
		out = append(out, f)
	}
	return out
}

// Save persists the findings of one validation run, replacing any previous
// run for the same document. Each run gets a fresh id.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS validation_runs (
//   document_id TEXT PRIMARY KEY,
//   run_id UUID,
//   findings_json JSONB,
//   created_at TIMESTAMPTZ
// );
func (r *FindingsRepo) Save(ctx context.Context, documentID string, findings []Finding) (string, error) {
	pool := GetPool()
	if pool == nil {
		return "", fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(findings)
	if err != nil {
		return "", fmt.Errorf("failed to marshal findings: %w", err)
	}

	runID := uuid.NewString()
	query := `
		INSERT INTO validation_runs (document_id, run_id, findings_json, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (document_id)
		DO UPDATE SET
			run_id = EXCLUDED.run_id,
			findings_json = EXCLUDED.findings_json,
			created_at = EXCLUDED.created_at;
	`

	if _, err := pool.Exec(ctx, query, documentID, runID, jsonData, time.Now()); err != nil {
		return "", fmt.Errorf("failed to save findings: %w", err)
	}
	return runID, nil
}

// Load retrieves the latest run for a document.
func (r *FindingsRepo) Load(ctx context.Context, documentID string) (string, []Finding, error) {
	pool := GetPool()
	if pool == nil {
		return "", nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT run_id, findings_json FROM validation_runs WHERE document_id = $1`

	var runID string
	var jsonData []byte
	err := pool.QueryRow(ctx, query, documentID).Scan(&runID, &jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil, fmt.Errorf("no validation run found for document %s", documentID)
		}
		return "", nil, fmt.Errorf("failed to load findings: %w", err)
	}

	var findings []Finding
	if err := json.Unmarshal(jsonData, &findings); err != nil {
		return "", nil, fmt.Errorf("failed to unmarshal findings: %w", err)
	}
	return runID, findings, nil
}
