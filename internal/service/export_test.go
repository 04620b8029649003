package service

import (
	"strings"
	"testing"
	"time"

	"solar_telemetry/internal/pipeline"
)

func fixedClockExport(t *testing.T) *ExportService {
	t.Helper()
	svc := NewExportService()
	svc.now = func() time.Time {
		return time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestExport_CSVFilenameCarriesPolicyPrefix(t *testing.T) {
	t.Parallel()

	svc := fixedClockExport(t)

	snap := pipeline.New(pipeline.VoltagePolicy()).Refresh(nil)
	body, name := svc.CSV(snap)
	if name != "voltajes_2025-08-15.csv" {
		t.Errorf("unexpected filename %q", name)
	}
	if !strings.HasPrefix(string(body), "sep=;\n") {
		t.Errorf("CSV body must start with the sep directive")
	}

	snap = pipeline.New(pipeline.PowerPolicy()).Refresh(nil)
	if _, name = svc.CSV(snap); name != "potencias_2025-08-15.csv" {
		t.Errorf("unexpected filename %q", name)
	}
}

func TestExport_WorkbookFilename(t *testing.T) {
	t.Parallel()

	svc := fixedClockExport(t)
	snap := pipeline.New(pipeline.PowerPolicy()).Refresh(nil)

	wb, name, err := svc.Workbook(snap)
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	if wb == nil {
		t.Fatalf("expected workbook")
	}
	if name != "potencias_2025-08-15.xlsx" {
		t.Errorf("unexpected filename %q", name)
	}
}
