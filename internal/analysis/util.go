package analysis

import "math"

func clip(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func abs(v float64) float64 { return math.Abs(v) }

// guardZero keeps z-score denominators finite on flat windows.
func guardZero(v float64) float64 {
	if v == 0 || math.IsNaN(v) {
		return 1e-6
	}
	return v
}

// Confidence scores how trustworthy a signal is, from a neutral 50:
// stronger moves add weight, a confirming year trend adds more, a
// contradicting one subtracts, and high volatility penalizes. Clamped to
// [10, 95].
func Confidence(momChange float64, yoyChange, volatility *float64) int {
	score := 50.0

	score += math.Min(math.Abs(momChange)*10, 20)

	if yoyChange != nil {
		if sameSign(momChange, *yoyChange) {
			score += 10
		} else {
			score -= 10
		}
	}

	if volatility != nil && *volatility > 2 {
		score -= 10
	}

	return int(clip(score, 10, 95))
}

func sameSign(a, b float64) bool {
	return (a >= 0) == (b >= 0)
}
