package timeutil

import (
	"testing"
	"time"
)

func TestParseWindow(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		"empty":     {in: "", want: 0},
		"days":      {in: "3d", want: 3 * day},
		"composite": {in: "1w2d12h", want: 9*day + 12*time.Hour},
		"words":     {in: "2 weeks", want: 14 * day},
		"no unit":   {in: "5", wantErr: true},
		"bad unit":  {in: "4y", wantErr: true},
		"no number": {in: "d", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseWindow(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCutoff(t *testing.T) {
	now := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)
	if got := Cutoff(now, 0); !got.IsZero() {
		t.Fatalf("expected no cutoff, got %v", got)
	}
	if got := Cutoff(now, 2*day); !got.Equal(now.Add(-48 * time.Hour)) {
		t.Fatalf("unexpected cutoff %v", got)
	}
}
