package domain

import "time"

// DayView lists the store positions of sessions that started on date, most
// recent first. Row i of a day table always refers to sessions[DayView(...)[i]].
func DayView(sessions []Session, date Date, loc *time.Location) []int {
	positions := make([]int, 0)
	for i := len(sessions) - 1; i >= 0; i-- {
		if DateOf(sessions[i].StartTime, loc) == date {
			positions = append(positions, i)
		}
	}
	return positions
}

// ResolveDisplayIndex maps a row of the day view to a store position.
func ResolveDisplayIndex(sessions []Session, date Date, loc *time.Location, row int) (int, bool) {
	positions := DayView(sessions, date, loc)
	if row < 0 || row >= len(positions) {
		return 0, false
	}
	return positions[row], true
}

// DayLog is the set of sessions that started on a day, most recent first.
type DayLog struct {
	Date     Date
	Location *time.Location
	Sessions []Session
	Totals   Aggregate
}

// DayTotals is one day of aggregated time as read back from the projection.
type DayTotals struct {
	Date     Date
	Totals   Aggregate
	Sessions int
}

// LogFor builds the DayLog of date.
func LogFor(sessions []Session, date Date, loc *time.Location, now time.Time) DayLog {
	positions := DayView(sessions, date, loc)
	rows := make([]Session, 0, len(positions))
	for _, pos := range positions {
		rows = append(rows, sessions[pos])
	}
	return DayLog{Date: date, Location: loc, Sessions: rows, Totals: DailyAggregate(sessions, date, loc, now)}
}
