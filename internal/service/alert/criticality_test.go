package alert

import "testing"

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		weight    *float64
		threshold *int
		want      Criticality
	}{
		{name: "no reading yet", weight: nil, threshold: ptrInt(150), want: Unknown},
		{name: "no threshold configured", weight: ptrFloat(100), threshold: nil, want: Unknown},
		{name: "neither present", weight: nil, threshold: nil, want: Unknown},
		{name: "below threshold is critical", weight: ptrFloat(100), threshold: ptrInt(150), want: Critical},
		{name: "exactly at threshold is critical", weight: ptrFloat(150), threshold: ptrInt(150), want: Critical},
		{name: "just above threshold is safe", weight: ptrFloat(151), threshold: ptrInt(150), want: Safe},
		{name: "zero threshold with zero weight", weight: ptrFloat(0), threshold: ptrInt(0), want: Critical},
		{name: "fractional reading above threshold", weight: ptrFloat(150.5), threshold: ptrInt(150), want: Safe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.weight, tt.threshold); got != tt.want {
				t.Errorf("Evaluate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnknownIsNotCritical(t *testing.T) {
	if Unknown.IsCritical() {
		t.Error("Unknown must never be treated as critical")
	}
	if Unknown == Safe {
		t.Error("Unknown must never collapse to Safe")
	}
}
