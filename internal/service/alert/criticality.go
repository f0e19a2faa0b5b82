// Package alert decides whether a distributor's reservoir is critically low.
package alert

// Criticality is the outcome of comparing a weight reading against the
// configured critical threshold. Unknown is a genuine third state: with
// no reading yet or no threshold configured the system can neither alert
// nor claim safety.
type Criticality string

const (
	Critical Criticality = "critical"
	Safe     Criticality = "safe"
	Unknown  Criticality = "unknown"
)

func (c Criticality) String() string {
	return string(c)
}

func (c Criticality) IsCritical() bool {
	return c == Critical
}

// Evaluate compares a weight reading against the critical threshold.
// Either input being absent yields Unknown. The comparison is inclusive:
// a reading exactly at the threshold counts as critical.
func Evaluate(weightGrams *float64, thresholdGrams *int) Criticality {
	if weightGrams == nil || thresholdGrams == nil {
		return Unknown
	}
	if *weightGrams <= float64(*thresholdGrams) {
		return Critical
	}
	return Safe
}
