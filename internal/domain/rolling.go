package domain

// Average calcula la media simple de vals[endIndex-window+1 .. endIndex].
// Devuelve false mientras no haya suficientes observaciones (warm-up): las
// estrategias deben tratar ese caso como "sin decisión posible", nunca operar
// sobre una media indefinida.
func Average(vals []float64, endIndex, window int) (float64, bool) {
	if window <= 0 {
		return 0, false
	}
	start := endIndex - window + 1
	if start < 0 || endIndex >= len(vals) {
		return 0, false
	}

	sum := 0.0
	for _, v := range vals[start : endIndex+1] {
		sum += v
	}
	return sum / float64(window), true
}
