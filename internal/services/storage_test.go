package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStorageSaveReplaces(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	storage := NewReportStorage(dir)

	name := ReportFilename(time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC))
	path, err := storage.SaveReport(name, "<!DOCTYPE html><p>hi</p>")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, name), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<!DOCTYPE html><p>hi</p>", string(raw))

	_, err = storage.SaveReport(name, "<p>again</p>")
	require.NoError(t, err)
	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>again</p>", string(raw))
}

func TestReportStorageRejectsBadNames(t *testing.T) {
	storage := NewReportStorage(t.TempDir())

	_, err := storage.SaveReport("report.pdf", "x")
	assert.ErrorContains(t, err, "invalid report extension")

	_, err = storage.SaveReport("../escape.html", "x")
	assert.ErrorContains(t, err, "invalid report filename")
}
