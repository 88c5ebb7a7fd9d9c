package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yrbane/nethttp.net-vcf-import/internal/importer"
)

func TestNewImportRecord_CountsOutcomes(t *testing.T) {
	outcomes := []importer.Outcome{
		{Kind: importer.OutcomeCreated, Email: "a@example.com"},
		{Kind: importer.OutcomeCreated, Email: "b@example.com"},
		{Kind: importer.OutcomeUpdated, Email: "c@example.com"},
		{Kind: importer.OutcomeFailed, Email: "d@example.com", Reason: "boom"},
		{Kind: importer.OutcomeStored, Email: "a@example.com"},
	}

	rec := NewImportRecord(4, outcomes)

	assert.Equal(t, 4, rec.Submitted)
	assert.Equal(t, 2, rec.Created)
	assert.Equal(t, 1, rec.Updated)
	assert.Equal(t, 1, rec.Failed)
	assert.Len(t, rec.Outcomes, 5)
}

func TestAuditor_SaveJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "audit")
	auditor := NewAuditor(dir)

	rec := NewImportRecord(1, []importer.Outcome{
		{Kind: importer.OutcomeCreated, Email: "a@example.com"},
	})

	filename, err := auditor.SaveJSON(rec)
	require.NoError(t, err)
	assert.NotEmpty(t, filename)

	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)

	var loaded ImportRecord
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, 1, loaded.Created)
}
