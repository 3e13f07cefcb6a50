package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ReportStorage writes exported reports into a directory.
type ReportStorage interface {
	SaveReport(filename, html string) (string, error)
	GetFilePath(filename string) string
	EnsureDir() error
}

type reportStorage struct {
	dir string
}

func NewReportStorage(dir string) ReportStorage {
	return &reportStorage{
		dir: dir,
	}
}

func (s *reportStorage) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	return nil
}

// SaveReport writes the document and returns its path. An existing report
// with the same name is replaced.
func (s *reportStorage) SaveReport(filename, html string) (string, error) {
	// Validate file extension
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".html" {
		return "", fmt.Errorf("invalid report extension: %s", ext)
	}
	if filepath.Base(filename) != filename {
		return "", fmt.Errorf("invalid report filename: %s", filename)
	}

	if err := s.EnsureDir(); err != nil {
		return "", err
	}

	filePath := s.GetFilePath(filename)
	if err := os.WriteFile(filePath, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	return filePath, nil
}

func (s *reportStorage) GetFilePath(filename string) string {
	return filepath.Join(s.dir, filename)
}
