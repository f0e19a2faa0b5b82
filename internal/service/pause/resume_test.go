package pause

import (
	"testing"
	"time"
)

func TestResumeTime(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		duration int
		active   bool
		want     string
		wantOK   bool
	}{
		{
			name:     "rolls over midnight",
			now:      time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC),
			duration: 4,
			active:   true,
			want:     "02:00",
			wantOK:   true,
		},
		{
			name:     "same day",
			now:      time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC),
			duration: 2,
			active:   true,
			want:     "11:30",
			wantOK:   true,
		},
		{
			name:     "rolls over month boundary",
			now:      time.Date(2025, 6, 30, 23, 0, 0, 0, time.UTC),
			duration: 3,
			active:   true,
			want:     "02:00",
			wantOK:   true,
		},
		{
			name:     "multi day duration keeps time of day arithmetic",
			now:      time.Date(2025, 12, 31, 20, 15, 0, 0, time.UTC),
			duration: 30,
			active:   true,
			want:     "02:15",
			wantOK:   true,
		},
		{
			name:     "zero duration has no resume time",
			now:      time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC),
			duration: 0,
			active:   true,
			wantOK:   false,
		},
		{
			name:     "inactive break regardless of duration",
			now:      time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC),
			duration: 12,
			active:   false,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResumeTime(tt.now, tt.duration, tt.active)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("resume = %q, want %q", got, tt.want)
			}
		})
	}
}
