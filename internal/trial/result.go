package trial

import "time"

// Result is the summary of a finished run handed to persistence.
type Result struct {
	Mode         Mode
	Score        int
	Accuracy     float64 // CorrectTotal / PlayedTotal
	Level        int
	StreakMax    int
	CorrectTotal int
	PlayedTotal  int
	EndReason    EndReason
	Seed         int64
	Timestamp    time.Time
}

// Summarize captures the result of the run in s at the given time.
func Summarize(s State, at time.Time) Result {
	return Result{
		Mode:         s.Mode,
		Score:        s.Score,
		Accuracy:     s.Accuracy(),
		Level:        s.Level,
		StreakMax:    s.StreakMax,
		CorrectTotal: s.CorrectTotal,
		PlayedTotal:  s.PlayedTotal,
		EndReason:    s.EndReason,
		Seed:         s.Seed,
		Timestamp:    at,
	}
}
