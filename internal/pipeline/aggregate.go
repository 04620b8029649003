package pipeline

// Aggregator reduces the non-null values of one (date, panel) partition
// to a single summary statistic.
type Aggregator interface {
	Summarize(values []float64) float64
}

// PositiveMean averages the strictly-positive values of the partition.
// Zero and negative readings are sensor noise and are excluded on
// purpose; an empty filtered set summarizes to 0.
type PositiveMean struct{}

func (PositiveMean) Summarize(values []float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return round2(sum / float64(n))
}

// Installed-capacity normalization for the power-percentage policy:
// three panels at 120 kW nominal each.
const (
	panelCount         = 3
	panelCapacityWatts = 120000.0
	installedCapacity  = panelCount * panelCapacityWatts
)

// PowerPercentage sums every non-null value (zeros included, no
// positivity filter) and normalizes against the installed capacity.
type PowerPercentage struct{}

func (PowerPercentage) Summarize(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return round2(sum / installedCapacity * 100)
}
