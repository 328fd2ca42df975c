package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	v1 "github.com/aevon-lab/aevon-duration/internal/api/v1"
)

// marshalLabels encodes a sample's labels as JSON.
// Empty labels produce nil (SQL NULL) rather than JSON "null" string.
func marshalLabels(sample *v1.Sample) ([]byte, error) {
	if len(sample.Labels) == 0 {
		return nil, nil
	}
	labelsJSON, err := json.Marshal(sample.Labels)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal labels: %w", err)
	}
	return labelsJSON, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanSampleRow scans a database row into a Sample.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanSampleRow(row scanner) (*v1.Sample, error) {
	var s v1.Sample
	var labelsJSON []byte

	err := row.Scan(
		&s.ID,
		&s.Series,
		&s.Value,
		&s.ObservedAt,
		&s.IngestedAt,
		&labelsJSON,
		&s.IngestSeq,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan sample row: %w", err)
	}

	if len(labelsJSON) > 0 {
		if err := json.Unmarshal(labelsJSON, &s.Labels); err != nil {
			return nil, fmt.Errorf("failed to unmarshal labels: %w", err)
		}
	}

	return &s, nil
}

// collectSamples drains rows into samples.
func collectSamples(rows *sql.Rows) ([]*v1.Sample, error) {
	var samples []*v1.Sample
	for rows.Next() {
		s, err := scanSampleRow(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating samples: %w", err)
	}
	return samples, nil
}
