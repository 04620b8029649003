package export

import (
	"strings"
	"testing"

	"solar_telemetry"
	"solar_telemetry/internal/pipeline"
)

const (
	senderCaledonia = "+593982138667"
	senderTugula    = "+593996002370"
)

func voltageSnapshot(t *testing.T) *pipeline.Snapshot {
	t.Helper()
	// two panels, one date; Caledonia arrives "first" by key to prove
	// the export ignores discovery order
	return pipeline.New(pipeline.VoltagePolicy()).Refresh(map[string]solar_telemetry.RawRecord{
		"a": {Message: `25/08/01,09:00:00 "500"`, Sender: senderCaledonia},
		"b": {Message: `25/08/01,10:30:00 "600"`, Sender: senderTugula},
		"c": {Message: `25/08/02,11:00:00 "700"`, Sender: senderTugula},
	})
}

func TestCSV_SeparatorDirectiveFirst(t *testing.T) {
	t.Parallel()

	lines := strings.Split(string(CSV(voltageSnapshot(t))), "\n")
	if lines[0] != "sep=;" {
		t.Fatalf("first line must be the sep directive, got %q", lines[0])
	}
}

func TestCSV_FixedPanelOrder(t *testing.T) {
	t.Parallel()

	out := string(CSV(voltageSnapshot(t)))

	tugula := strings.Index(out, "Panel TUGULA")
	caledonia := strings.Index(out, "Panel CALEDONIA")
	sanCristobal := strings.Index(out, "Panel SAN CRISTOBAL")
	if tugula < 0 || caledonia < 0 || sanCristobal < 0 {
		t.Fatalf("missing panel section header:\n%s", out)
	}
	if !(tugula < caledonia && caledonia < sanCristobal) {
		t.Errorf("panel sections out of order: TUGULA@%d CALEDONIA@%d SAN CRISTOBAL@%d", tugula, caledonia, sanCristobal)
	}
}

func TestCSV_BlockLayout(t *testing.T) {
	t.Parallel()

	out := string(CSV(voltageSnapshot(t)))

	// date re-formatted with slashes, header with the policy label,
	// reading rows time;value
	for _, want := range []string{
		"2025/08/01;\n",
		"Hora;Voltaje (V)\n",
		"10:30:00;37.2\n", // 600 * 0.062
		"09:00:00;31\n",   // 500 * 0.062, no trailing zeros
		"2025/08/02;\n",
		"11:00:00;43.4\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestCSV_SkipsEmptyDatePanelPairs(t *testing.T) {
	t.Parallel()

	out := string(CSV(voltageSnapshot(t)))

	// Caledonia has no readings on 08/02: its section must contain a
	// single date block
	section := out[strings.Index(out, "Panel CALEDONIA"):strings.Index(out, "Panel SAN CRISTOBAL")]
	if strings.Contains(section, "2025/08/02") {
		t.Errorf("Caledonia section must not include 2025/08/02:\n%s", section)
	}
}

func TestCSV_NullValueExportsAsZero(t *testing.T) {
	t.Parallel()

	snap := pipeline.New(pipeline.VoltagePolicy()).Refresh(map[string]solar_telemetry.RawRecord{
		"a": {Message: `25/08/01,09:00:00 "sin datos"`, Sender: senderTugula},
	})
	if want := "09:00:00;0\n"; !strings.Contains(string(CSV(snap)), want) {
		t.Errorf("missing %q in:\n%s", want, CSV(snap))
	}
}

func TestWorkbook_SheetPerPanelWithoutPrefix(t *testing.T) {
	t.Parallel()

	wb, err := Workbook(voltageSnapshot(t))
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	want := []string{"TUGULA", "CALEDONIA", "SAN CRISTOBAL"}
	got := wb.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheet list: want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestWorkbook_MinutePrecisionRows(t *testing.T) {
	t.Parallel()

	wb, err := Workbook(voltageSnapshot(t))
	if err != nil {
		t.Fatalf("Workbook: %v", err)
	}

	date, err := wb.GetCellValue("TUGULA", "A1")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if date != "2025/08/01" {
		t.Errorf("A1: want 2025/08/01, got %q", date)
	}
	hora, err := wb.GetCellValue("TUGULA", "A3")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if hora != "10:30" {
		t.Errorf("A3: want 10:30 (minute precision), got %q", hora)
	}
}

func TestBuildDocument_SharedOrdering(t *testing.T) {
	t.Parallel()

	snap := voltageSnapshot(t)
	csvDoc := BuildDocument(snap, TargetCSV)
	xlsxDoc := BuildDocument(snap, TargetXLSX)

	if len(csvDoc) != len(xlsxDoc) {
		t.Fatalf("section counts differ: %d vs %d", len(csvDoc), len(xlsxDoc))
	}
	for i := range csvDoc {
		if csvDoc[i].Panel != xlsxDoc[i].Panel {
			t.Errorf("section %d: %q vs %q", i, csvDoc[i].Panel, xlsxDoc[i].Panel)
		}
		if len(csvDoc[i].Blocks) != len(xlsxDoc[i].Blocks) {
			t.Errorf("section %d block counts differ", i)
		}
	}
}
