package scoring

import "ieltscheck/backend/models"

// BandScore maps a percentage in [0,100] onto the 9-point IELTS band scale.
// Ten-point descending threshold ladder, first match wins.
func BandScore(percentage float64) float64 {
	switch {
	case percentage >= 90:
		return 9.0
	case percentage >= 80:
		return 8.0
	case percentage >= 70:
		return 7.0
	case percentage >= 60:
		return 6.0
	case percentage >= 50:
		return 5.0
	case percentage >= 40:
		return 4.0
	case percentage >= 30:
		return 3.0
	case percentage >= 20:
		return 2.0
	default:
		return 1.0
	}
}

// Feedback renders the templated result sentence for an objective test.
func Feedback(bandScore float64, testType models.TestType) string {
	name := testType.DisplayName()
	switch {
	case bandScore >= 8.0:
		return "Excellent! You achieved an outstanding " + name + " result."
	case bandScore >= 6.5:
		return "Good work! You achieved a solid " + name + " result."
	case bandScore >= 5.0:
		return "Average result. More " + name + " practice is recommended."
	default:
		return "You need more preparation for the " + name + " test."
	}
}
