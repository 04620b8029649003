package export

import (
	"strings"

	"solar_telemetry"
	"solar_telemetry/internal/pipeline"
)

// Target selects the serialization the row document is built for. Row
// content and ordering are identical across targets; only time-of-day
// granularity and the serializer differ.
type Target int

const (
	TargetCSV  Target = iota // semicolon-delimited text, HH:MM:SS
	TargetXLSX               // multi-sheet workbook, HH:MM
)

// Row is one reading line: its time of day and its transformed value
// (0 when the payload was unparseable).
type Row struct {
	Time  string
	Value float64
}

// DateBlock holds one date's rows for a panel, with the date
// re-formatted with slash separators for display.
type DateBlock struct {
	Date string // YYYY/MM/DD
	Rows []Row
}

// Section is one panel's sub-blocks, one per date that has readings.
type Section struct {
	Panel  solar_telemetry.Panel
	Blocks []DateBlock
}

// BuildDocument renders a snapshot into the row-oriented structure both
// serializers share. Sections follow the fixed export panel order;
// blocks follow ascending date order; a (date, panel) pair with no
// readings emits no block.
func BuildDocument(snap *pipeline.Snapshot, target Target) []Section {
	sections := make([]Section, 0, len(solar_telemetry.ExportPanels))
	for _, panel := range solar_telemetry.ExportPanels {
		section := Section{Panel: panel}
		for _, date := range snap.DateKeys() {
			readings := snap.ReadingsFor(date, panel)
			if len(readings) == 0 {
				continue
			}
			block := DateBlock{Date: strings.ReplaceAll(date, "-", "/")}
			for _, r := range readings {
				var v float64
				if r.Value != nil {
					v = *r.Value
				}
				block.Rows = append(block.Rows, Row{
					Time:  timeOfDay(r.TimeText, target),
					Value: v,
				})
			}
			section.Blocks = append(section.Blocks, block)
		}
		sections = append(sections, section)
	}
	return sections
}

// timeOfDay truncates to minute precision for the spreadsheet target.
func timeOfDay(timeText string, target Target) string {
	hms := pipeline.TimeOfDay(timeText)
	if target == TargetXLSX && len(hms) == len("15:04:05") {
		return hms[:len("15:04")]
	}
	return hms
}
