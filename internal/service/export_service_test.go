package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kumusta-app/kumusta-api/internal/models"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
)

type stubSummaryProvider struct {
	summary *models.WeeklySummary
	err     error
}

func (s *stubSummaryProvider) WeeklySummary(username string) (*models.WeeklySummary, error) {
	return s.summary, s.err
}

type recordingStorage struct {
	filenames []string
}

func (r *recordingStorage) Save(filename string, data []byte) (string, error) {
	r.filenames = append(r.filenames, filename)
	return filename, nil
}

func testSummary() *models.WeeklySummary {
	return &models.WeeklySummary{
		Rows: []models.SummaryRow{
			{Date: "2026-08-23", Mood: "tired", Minutes: 20},
			{Date: "2026-08-24", Mood: "hopeful", Minutes: 40},
		},
		TotalMinutes:   60,
		AverageMinutes: 8.57,
		Advice:         "keep going",
		Productivity:   ProductivityModerate,
		Recommendation: RecommendationNiceBalance,
	}
}

func TestExportServiceCSV(t *testing.T) {
	storage := &recordingStorage{}
	svc := NewExportService(&stubSummaryProvider{summary: testSummary()}, storage, zap.NewNop())

	file, err := svc.WeeklySummary("ana", FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

	content := string(file.Data)
	assert.Contains(t, content, "Date,Mood,Minutes")
	assert.Contains(t, content, "2026-08-24,hopeful,40")
	assert.Contains(t, content, "Total,,60")
	assert.Contains(t, content, "Average,,8.57")

	require.Len(t, storage.filenames, 1)
}

func TestExportServicePDF(t *testing.T) {
	svc := NewExportService(&stubSummaryProvider{summary: testSummary()}, &recordingStorage{}, zap.NewNop())

	file, err := svc.WeeklySummary("ana", FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&stubSummaryProvider{summary: testSummary()}, &recordingStorage{}, zap.NewNop())

	_, err := svc.WeeklySummary("ana", "xlsx")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestExportServicePropagatesSummaryError(t *testing.T) {
	svc := NewExportService(&stubSummaryProvider{err: appErrors.ErrNotFound}, &recordingStorage{}, zap.NewNop())

	_, err := svc.WeeklySummary("ana", FormatCSV)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
