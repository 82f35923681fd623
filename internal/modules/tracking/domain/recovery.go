package domain

import "time"

const (
	StaleAfter  = 24 * time.Hour
	StaleMarker = " [Auto-closed: Stale]"
)

// RecoverStale closes every open session in place. Sessions left open for
// longer than StaleAfter collapse to zero length and get StaleMarker appended
// to their note; younger ones end at now. It reports how many were closed.
func RecoverStale(sessions []Session, now time.Time) int {
	closed := 0
	for i := range sessions {
		s := &sessions[i]
		if !s.IsOpen() {
			continue
		}
		if now.Sub(s.StartTime) > StaleAfter {
			s.Close(s.StartTime)
			s.Note += StaleMarker
		} else {
			s.Close(now)
		}
		closed++
	}
	return closed
}
