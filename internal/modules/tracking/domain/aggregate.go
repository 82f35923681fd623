package domain

import "time"

type Aggregate struct {
	Work  time.Duration
	Break time.Duration
}

// WorkRatio is Work/(Work+Break), or 0 when nothing was tracked.
func (a Aggregate) WorkRatio() float64 {
	total := a.Work + a.Break
	if total <= 0 {
		return 0
	}
	return float64(a.Work) / float64(total)
}

// DailyAggregate sums Work and Break time of sessions that started on date.
// Open sessions count up to now; Idle is ignored.
func DailyAggregate(sessions []Session, date Date, loc *time.Location, now time.Time) Aggregate {
	agg := Aggregate{}
	for _, s := range sessions {
		if DateOf(s.StartTime, loc) != date {
			continue
		}
		switch s.Kind {
		case KindWork:
			agg.Work += s.Duration(now)
		case KindBreak:
			agg.Break += s.Duration(now)
		}
	}
	return agg
}
