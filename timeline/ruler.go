package timeline

// RulerStep returns the spacing, in seconds, between labelled ruler markers at zoom.
func RulerStep(zoom int) float64 {
	switch {
	case zoom >= 180:
		return 1
	case zoom >= 120:
		return 2
	case zoom >= 80:
		return 5
	case zoom >= 60:
		return 10
	case zoom >= 40:
		return 15
	default:
		return 30
	}
}

// RulerMarkers lists marker times from zero up to and including duration.
func RulerMarkers(duration float64, zoom int) []float64 {
	step := RulerStep(zoom)
	var markers []float64
	for i := 0; float64(i)*step <= duration; i++ {
		markers = append(markers, float64(i)*step)
	}
	return markers
}
