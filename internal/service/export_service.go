package service

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kumusta-app/kumusta-api/internal/models"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
	"github.com/kumusta-app/kumusta-api/pkg/export"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type summaryProvider interface {
	WeeklySummary(username string) (*models.WeeklySummary, error)
}

type exportStorage interface {
	Save(filename string, data []byte) (string, error)
}

// ExportFile is a rendered weekly summary ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the weekly summary as CSV or PDF and keeps a copy on
// disk.
type ExportService struct {
	summaries summaryProvider
	storage   exportStorage
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService instance.
func NewExportService(summaries summaryProvider, storage exportStorage, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		summaries: summaries,
		storage:   storage,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		logger:    logger,
		now:       time.Now,
	}
}

// WeeklySummary renders the user's trailing-7-day summary in the requested
// format. The rendered file is also saved to storage, best effort.
func (s *ExportService) WeeklySummary(username, format string) (*ExportFile, error) {
	summary, err := s.summaries.WeeklySummary(username)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Date", "Mood", "Minutes"},
		Rows:    make([]map[string]string, 0, len(summary.Rows)),
	}
	for _, row := range summary.Rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Date":    row.Date,
			"Mood":    row.Mood,
			"Minutes": strconv.Itoa(row.Minutes),
		})
	}

	stamp := s.now().UTC().Format("20060102-150405")
	var file *ExportFile
	switch format {
	case FormatCSV:
		dataset.Rows = append(dataset.Rows,
			map[string]string{"Date": "Total", "Minutes": strconv.Itoa(summary.TotalMinutes)},
			map[string]string{"Date": "Average", "Minutes": fmt.Sprintf("%.2f", summary.AverageMinutes)},
		)
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		file = &ExportFile{
			Filename:    fmt.Sprintf("summary-%s-%s.csv", username, stamp),
			ContentType: "text/csv",
			Data:        data,
		}
	case FormatPDF:
		notes := []string{
			fmt.Sprintf("Total study time: %d minutes", summary.TotalMinutes),
			fmt.Sprintf("Average per day: %.2f minutes", summary.AverageMinutes),
			fmt.Sprintf("Productivity: %s", summary.Productivity),
			fmt.Sprintf("Advice: %s", summary.Advice),
			fmt.Sprintf("Recommendation: %s", summary.Recommendation),
		}
		data, err := s.pdf.Render(dataset, "Weekly Study Summary", notes)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		file = &ExportFile{
			Filename:    fmt.Sprintf("summary-%s-%s.pdf", username, stamp),
			ContentType: "application/pdf",
			Data:        data,
		}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	if s.storage != nil {
		if _, err := s.storage.Save(file.Filename, file.Data); err != nil {
			s.logger.Warn("failed to keep export copy", zap.String("filename", file.Filename), zap.Error(err))
		}
	}
	return file, nil
}
