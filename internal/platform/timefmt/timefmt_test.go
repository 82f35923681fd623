package timefmt_test

import (
	"testing"
	"time"

	"worklog/internal/platform/timefmt"
)

func TestClock(t *testing.T) {
	t.Parallel()
	cases := map[time.Duration]string{
		0:                             "00:00:00",
		999 * time.Millisecond:        "00:00:00",
		61 * time.Second:              "00:01:01",
		2*time.Hour + 3*time.Minute:   "02:03:00",
		30*time.Hour + 59*time.Second: "30:00:59",
		-5 * time.Second:              "00:00:00",
	}
	for in, want := range cases {
		if got := timefmt.Clock(in); got != want {
			t.Fatalf("Clock(%s) = %s, want %s", in, got, want)
		}
	}
}
