package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ai-mentorship/internal/models"
)

func sampleAnalysis() *models.AnalysisResult {
	return NewFallbackGenerator().FallbackAnalysis(models.UserProfile{
		LifeStage: "College/University student",
		Field:     "Technology/Engineering",
		Goal:      "Finding my first job",
	}, make([]models.Response, 6))
}

func TestFormatReportIsIdempotent(t *testing.T) {
	result := sampleAnalysis()
	date := time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)

	first, err := FormatReport(result, date)
	require.NoError(t, err)
	second, err := FormatReport(result, date)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFormatReportEmbedsAllSections(t *testing.T) {
	result := sampleAnalysis()
	html, err := FormatReport(result, time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "Generated on October 16, 2026")
	assert.Contains(t, html, "Academic Achiever")
	assert.Contains(t, html, "Entry-level technology/engineering Role")
	assert.Contains(t, html, "88%")
	assert.Contains(t, html, "Set 90-day learning goals")
	assert.Contains(t, html, "Peer mentor network for accountability and support")
	assert.NotContains(t, html, "<link")
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "http://")
	assert.NotContains(t, html, "https://")
}

func TestFormatReportEscapesGeneratedText(t *testing.T) {
	result := sampleAnalysis()
	result.PersonalityProfile.Type = `<script>alert("x")</script>`

	html, err := FormatReport(result, time.Now())
	require.NoError(t, err)
	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestReportFilename(t *testing.T) {
	assert.Equal(t, "AI_Career_Analysis_Report_2026-10-16.html",
		ReportFilename(time.Date(2026, time.October, 16, 23, 59, 0, 0, time.UTC)))
}

func TestFormatMarkdown(t *testing.T) {
	md := FormatMarkdown(sampleAnalysis())

	assert.True(t, strings.HasPrefix(md, "# Your Career Analysis"))
	assert.Contains(t, md, "## Academic Achiever")
	assert.Contains(t, md, "| Analysis | 75% |")
	assert.Contains(t, md, "(88% match)")
	assert.Contains(t, md, "- Update LinkedIn profile with career interests")
}
