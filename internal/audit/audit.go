// Package audit persists one JSON record per confirmed import run so an
// operator can reconstruct what a batch did after the fact.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/yrbane/nethttp.net-vcf-import/internal/importer"
)

// ImportRecord summarizes one confirmed import run.
type ImportRecord struct {
	StartedAt time.Time          `json:"started_at"`
	Submitted int                `json:"submitted"`
	Created   int                `json:"created"`
	Updated   int                `json:"updated"`
	Failed    int                `json:"failed"`
	Outcomes  []importer.Outcome `json:"outcomes"`
}

// NewImportRecord builds a record from a batch's outcome list.
func NewImportRecord(submitted int, outcomes []importer.Outcome) ImportRecord {
	rec := ImportRecord{
		StartedAt: time.Now(),
		Submitted: submitted,
		Outcomes:  outcomes,
	}
	for _, o := range outcomes {
		switch o.Kind {
		case importer.OutcomeCreated:
			rec.Created++
		case importer.OutcomeUpdated:
			rec.Updated++
		case importer.OutcomeFailed:
			rec.Failed++
		}
	}
	return rec
}

type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{AuditDir: auditDir}
}

// SaveJSON saves the provided data as JSON to a file with UUID4 filename
func (a *Auditor) SaveJSON(data any) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	filename := fmt.Sprintf("%s.json", uuid.New().String())
	path := filepath.Join(a.AuditDir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	return filename, nil
}

func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}
