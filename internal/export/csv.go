package export

import (
	"strconv"
	"strings"

	"solar_telemetry/internal/pipeline"
)

// CSV serializes a snapshot as the semicolon-delimited export. The
// first line is the "sep=;" directive so spreadsheet applications in
// comma-decimal locales split fields correctly. The document is ragged
// (title lines, per-date headers, blank separators), which is why it is
// assembled line by line rather than fed through a rectangular CSV
// encoder.
func CSV(snap *pipeline.Snapshot) []byte {
	var b strings.Builder
	b.WriteString("sep=;\n")

	for _, section := range BuildDocument(snap, TargetCSV) {
		b.WriteString(string(section.Panel))
		b.WriteByte('\n')

		for _, block := range section.Blocks {
			b.WriteString(block.Date)
			b.WriteString(";\n")
			b.WriteString("Hora;")
			b.WriteString(snap.Policy().ValueLabel)
			b.WriteByte('\n')

			for _, row := range block.Rows {
				b.WriteString(row.Time)
				b.WriteByte(';')
				b.WriteString(formatValue(row.Value))
				b.WriteByte('\n')
			}
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// formatValue prints values without trailing zeros, so 15 stays "15"
// and 16.52 stays "16.52".
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
