package mastery

import "github.com/abhisek/learnpath/internal/signal"

// Change estimates how many mastery points a practice session score is
// worth. Scores of 70 and above earn (score-50)/5 points; lower scores cost
// (score-70)/10 points. The input is clamped to [0,100] first.
func Change(sessionScore int) int {
	s := signal.Clamp(float64(sessionScore))
	if s >= 70 {
		return signal.Round((s - 50) / 5)
	}
	return signal.Round((s - 70) / 10)
}
