package mood

// ConfidenceLevel buckets a 0..1 confidence into a display label.
func ConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.9:
		return "Very High"
	case confidence >= 0.7:
		return "High"
	case confidence >= 0.5:
		return "Medium"
	case confidence >= 0.3:
		return "Low"
	default:
		return "Very Low"
	}
}
