package export

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driving"
)

// Exporter renders completed extraction results as an XLSX workbook, one row
// per document with one column per top-level schema field.
type Exporter struct {
	schemas     driving.SchemaService
	extractions driving.ExtractionService
	logger      *slog.Logger
	concurrency int
}

// Config holds dependencies for the Exporter.
type Config struct {
	Schemas     driving.SchemaService
	Extractions driving.ExtractionService
	Logger      *slog.Logger
	Concurrency int // concurrent result fetches, default 4
}

// NewExporter creates a new Exporter.
func NewExporter(cfg Config) *Exporter {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	return &Exporter{
		schemas:     cfg.Schemas,
		extractions: cfg.Extractions,
		logger:      logger,
		concurrency: concurrency,
	}
}

const sheet = "Results"

// ResultsXLSX collects the extraction results of documentIDs for promptRevID
// and returns a workbook. Columns come from schemaRevID's field names.
// Documents whose extraction is missing or not yet terminal are skipped and
// logged; fetch failures abort the export.
func (e *Exporter) ResultsXLSX(ctx context.Context, schemaRevID, promptRevID string, documentIDs []string) ([]byte, error) {
	rev, err := e.schemas.GetRevision(ctx, schemaRevID)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	fields := rev.FieldNames()

	jobs := make([]*domain.ExtractionJob, len(documentIDs))
	var mu sync.Mutex

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(e.concurrency)
	for i, docID := range documentIDs {
		eg.Go(func() error {
			job, err := e.extractions.GetResult(gctx, docID, promptRevID)
			if err != nil {
				return fmt.Errorf("export: document %s: %w", docID, err)
			}
			mu.Lock()
			jobs[i] = job
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	headers := append([]string{"Document ID", "Status"}, fields...)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for i, job := range jobs {
		if job.Status != domain.JobStatusCompleted {
			e.logger.Warn("skipping document without completed extraction",
				"document_id", documentIDs[i],
				"status", job.Status,
			)
			continue
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, job.DocumentID)
		write(2, string(job.Status))
		for j, field := range fields {
			if v, ok := job.Result[field]; ok {
				write(j+3, v.String())
			}
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	e.logger.Info("exported extraction results",
		"schema_revid", schemaRevID,
		"documents", len(documentIDs),
		"rows", row-2,
	)

	return buf.Bytes(), nil
}
