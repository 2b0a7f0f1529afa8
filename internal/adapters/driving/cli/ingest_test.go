package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

func TestIngestCmd_DefaultsToCurrentDirectory(t *testing.T) {
	svc := &mockIngestService{report: &domain.IngestReport{
		FilesSeen:     4,
		FilesSkipped:  1,
		ChunksEmitted: 12,
		ChunksStored:  10,
		Duration:      1500 * time.Microsecond,
	}}
	withServices(t, Services{Ingest: svc})

	out, _, err := execute(t, "ingest")

	require.NoError(t, err)
	assert.Equal(t, ".", svc.lastPath)
	assert.Contains(t, out, "Ingested .")
	assert.Contains(t, out, "4 seen, 1 skipped")
	assert.Contains(t, out, "10 stored (12 before filtering)")
	assert.NotContains(t, out, "Dropped")
}

func TestIngestCmd_ReportsDroppedLines(t *testing.T) {
	svc := &mockIngestService{report: &domain.IngestReport{FilesSeen: 1, LinesDropped: 3, ChunksStored: 2}}
	withServices(t, Services{Ingest: svc})

	out, _, err := execute(t, "ingest", "./docs")

	require.NoError(t, err)
	assert.Equal(t, "./docs", svc.lastPath)
	assert.Contains(t, out, "Dropped: 3 suspicious lines")
}

func TestIngestCmd_EmptyCorpusHint(t *testing.T) {
	withServices(t, Services{Ingest: &mockIngestService{report: &domain.IngestReport{}}})

	out, _, err := execute(t, "ingest", "empty")

	require.NoError(t, err)
	assert.Contains(t, out, "No chunks were stored")
}

func TestIngestCmd_Error(t *testing.T) {
	withServices(t, Services{Ingest: &mockIngestService{err: errors.New("path does not exist")}})

	_, _, err := execute(t, "ingest", "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest failed")
	assert.Contains(t, err.Error(), "path does not exist")
}

func TestIngestCmd_Watch(t *testing.T) {
	svc := &mockIngestService{report: &domain.IngestReport{ChunksStored: 5}}
	withServices(t, Services{Ingest: svc})

	out, _, err := execute(t, "ingest", "--watch", "docs")

	require.NoError(t, err)
	assert.True(t, svc.watched)
	assert.Contains(t, out, "Watching docs for changes")
}

func TestIngestCmd_NotConfigured(t *testing.T) {
	withServices(t, Services{})

	_, _, err := execute(t, "ingest")

	assert.EqualError(t, err, "ingest service not configured")
}

func TestIngestCmd_TooManyArgs(t *testing.T) {
	withServices(t, Services{Ingest: &mockIngestService{report: &domain.IngestReport{}}})

	_, _, err := execute(t, "ingest", "a", "b")

	assert.Error(t, err)
}
