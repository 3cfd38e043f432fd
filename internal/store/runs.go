package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Simplici0/marsloop/internal/balance"
)

// Run is a saved evaluation.
type Run struct {
	ID        string         `json:"id"`
	CreatedAt string         `json:"created_at"`
	Title     string         `json:"title"`
	Notes     string         `json:"notes,omitempty"`
	Inputs    balance.Inputs `json:"inputs"`
	Result    balance.Result `json:"result"`
}

// RunSummary is a list entry for saved evaluations.
type RunSummary struct {
	ID                 string `json:"id"`
	CreatedAt          string `json:"created_at"`
	Title              string `json:"title"`
	SelfSufficiencyPct int    `json:"self_sufficiency_pct"`
	BrickCount         int    `json:"brick_count"`
}

// SaveRun records an evaluation and returns its generated ID.
func (s *Store) SaveRun(ctx context.Context, title, notes string, in balance.Inputs, res balance.Result) (string, error) {
	inputsJSON, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encode run inputs: %w", err)
	}
	resultJSON, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("encode run result: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluation_runs (id, title, notes, inputs_json, result_json)
		VALUES (?, ?, ?, ?, ?)
	`, id, title, notes, string(inputsJSON), string(resultJSON))
	if err != nil {
		return "", fmt.Errorf("insert evaluation run: %w", err)
	}
	return id, nil
}

// likeEscaper makes LIKE wildcards in a search query match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListRuns returns saved runs newest first, optionally filtered by a
// substring of the title or notes.
func (s *Store) ListRuns(ctx context.Context, query string) ([]RunSummary, error) {
	search := "%" + likeEscaper.Replace(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			id,
			created_at,
			COALESCE(title, ''),
			result_json
		FROM evaluation_runs
		WHERE (? = '' OR COALESCE(title, '') LIKE ? ESCAPE '\' OR COALESCE(notes, '') LIKE ? ESCAPE '\')
		ORDER BY datetime(created_at) DESC, rowid DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query evaluation runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunSummary, 0)
	for rows.Next() {
		var item RunSummary
		var resultJSON string
		if err := rows.Scan(&item.ID, &item.CreatedAt, &item.Title, &resultJSON); err != nil {
			return nil, fmt.Errorf("scan evaluation run: %w", err)
		}
		item.SelfSufficiencyPct, item.BrickCount = extractSummary(resultJSON)
		runs = append(runs, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluation runs: %w", err)
	}
	return runs, nil
}

// Run loads one saved evaluation.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	var r Run
	var notes sql.NullString
	var title sql.NullString
	var inputsJSON, resultJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, title, notes, inputs_json, result_json
		FROM evaluation_runs
		WHERE id = ?
	`, id).Scan(&r.ID, &r.CreatedAt, &title, &notes, &inputsJSON, &resultJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("query evaluation run: %w", err)
	}
	r.Title = title.String
	r.Notes = notes.String

	if err := json.Unmarshal([]byte(inputsJSON), &r.Inputs); err != nil {
		return Run{}, fmt.Errorf("decode run inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &r.Result); err != nil {
		return Run{}, fmt.Errorf("decode run result: %w", err)
	}
	return r, nil
}

// extractSummary pulls list columns out of a stored result; malformed rows
// summarize as zero.
func extractSummary(resultJSON string) (int, int) {
	var partial struct {
		Balance struct {
			SelfSufficiencyPct int `json:"self_sufficiency_pct"`
		} `json:"balance"`
		Bricks struct {
			Batch struct {
				Count int `json:"count"`
			} `json:"batch"`
		} `json:"bricks"`
	}
	if err := json.Unmarshal([]byte(resultJSON), &partial); err != nil {
		return 0, 0
	}
	return partial.Balance.SelfSufficiencyPct, partial.Bricks.Batch.Count
}
