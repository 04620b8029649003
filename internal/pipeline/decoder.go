package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"solar_telemetry"
)

// trailingDigits matches the raw payload: a run of decimal digits at the
// very end of the quoted message segment.
var trailingDigits = regexp.MustCompile(`\d+$`)

// Decoded is the structured form of one raw record before value
// transformation. Raw is nil when no payload could be extracted.
type Decoded struct {
	TimeText string
	Raw      *int
	Panel    solar_telemetry.Panel
}

// Decode splits a message on the quote character: the segment before the
// first quote is the raw time text, the segment after it (up to the next
// quote, if any) is searched for a trailing run of digits. Malformed
// input never fails; every failure degrades to a nil payload or an
// unknown panel.
func Decode(rec solar_telemetry.RawRecord) Decoded {
	parts := strings.Split(rec.Message, `"`)

	d := Decoded{
		TimeText: strings.TrimSpace(parts[0]),
		Panel:    solar_telemetry.PanelFromSender(rec.Sender),
	}

	if len(parts) > 1 {
		payload := strings.TrimSpace(parts[1])
		if m := trailingDigits.FindString(payload); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				d.Raw = &n
			}
		}
	}
	return d
}
