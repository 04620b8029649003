package service

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"solar_telemetry/internal/export"
	"solar_telemetry/internal/pipeline"
)

const filenameDateLayout = "2006-01-02"

// ExportService renders snapshots into their download serializations.
type ExportService struct {
	// now is swappable so filename tests stay deterministic
	now func() time.Time
}

func NewExportService() *ExportService {
	return &ExportService{now: time.Now}
}

// CSV returns the semicolon-delimited export and its download filename,
// e.g. voltajes_2025-08-01.csv.
func (s *ExportService) CSV(snap *pipeline.Snapshot) ([]byte, string) {
	return export.CSV(snap), s.filename(snap, "csv")
}

// Workbook returns the multi-sheet spreadsheet export and its filename,
// e.g. potencias_2025-08-01.xlsx.
func (s *ExportService) Workbook(snap *pipeline.Snapshot) (*excelize.File, string, error) {
	f, err := export.Workbook(snap)
	if err != nil {
		return nil, "", fmt.Errorf("build workbook: %w", err)
	}
	return f, s.filename(snap, "xlsx"), nil
}

func (s *ExportService) filename(snap *pipeline.Snapshot, ext string) string {
	return fmt.Sprintf("%s_%s.%s", snap.Policy().ExportBase, s.now().Format(filenameDateLayout), ext)
}
