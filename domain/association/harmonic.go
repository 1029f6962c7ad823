package association

import "sort"

// DefaultBuffer is the default HarmonicSumScorer capacity.
const DefaultBuffer = 100

// DefaultScaleFactor is the rank-decay exponent used for datasource and
// overall pools.
const DefaultScaleFactor = 2.0

// HarmonicSum computes a rank-decayed sum over data: the values are sorted
// descending and each contributes value/rank^scaleFactor with 1-indexed
// ranks, so the largest value is undiscounted. When cap is non-nil the
// result is clamped to *cap. The input slice is not modified.
func HarmonicSum(data []float64, scaleFactor float64, cap *float64) float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	total := 0.0
	for i, v := range sorted {
		total += v / pow(float64(i+1), scaleFactor)
	}

	if cap != nil && total > *cap {
		return *cap
	}
	return total
}

// pow computes base^exp for the small positive exponents used in rank
// decay. Integral exponents stay exact (no math.Pow rounding) which keeps
// scale factor 2 results bit-stable across platforms.
func pow(base, exp float64) float64 {
	switch exp {
	case 1:
		return base
	case 2:
		return base * base
	}
	result := 1.0
	for i := 0; i < int(exp); i++ {
		result *= base
	}
	return result
}

// HarmonicSumScorer accumulates scores for one pool (a single datasource,
// datatype, or the shared overall pool) in bounded memory. The buffer holds
// exactly K slots pre-filled with 0.0; Add replaces the current minimum only
// when the incoming score strictly exceeds it. Until K real scores have been
// seen, structural zeros occupy rank positions in the harmonic sum. They add
// nothing to the total but they do shift rank decay, and that padding is
// part of the scoring contract: callers comparing scores across pools rely
// on every pool being padded the same way.
type HarmonicSumScorer struct {
	buffer      []float64
	min         float64
	scaleFactor float64
	cap         *float64
}

// NewHarmonicSumScorer creates a scorer with the given buffer capacity,
// scale factor, and optional cap. A non-positive buffer falls back to
// DefaultBuffer.
func NewHarmonicSumScorer(buffer int, scaleFactor float64, cap *float64) *HarmonicSumScorer {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &HarmonicSumScorer{
		buffer:      make([]float64, buffer),
		min:         0,
		scaleFactor: scaleFactor,
		cap:         cap,
	}
}

// Add offers a score to the pool. Scores at or below the cached minimum are
// ignored; ties with the minimum deliberately do not displace it, bounding
// memory at the cost of exact top-K selection among duplicate minima.
func (s *HarmonicSumScorer) Add(score float64) {
	if score <= s.min {
		return
	}
	for i, v := range s.buffer {
		if v == s.min {
			s.buffer[i] = score
			break
		}
	}
	s.min = s.buffer[0]
	for _, v := range s.buffer[1:] {
		if v < s.min {
			s.min = v
		}
	}
}

// Score returns the harmonic sum over the current buffer contents,
// including structural zero padding.
func (s *HarmonicSumScorer) Score() float64 {
	return HarmonicSum(s.buffer, s.scaleFactor, s.cap)
}

// Capacity returns the buffer capacity K.
func (s *HarmonicSumScorer) Capacity() int { return len(s.buffer) }

// capOf returns a pointer to a copy of v, for use as a HarmonicSum cap.
func capOf(v float64) *float64 { return &v }
