package arbridge

// FrameDropRate returns the fraction of provider frames dropped before
// emission (0.0 to 1.0). Returns 0.0 when no frames have been seen.
func FrameDropRate(s Stats) float64 {
	dropped := s.FramesDroppedNoIntrinsics + s.FramesDroppedNoImage
	total := s.FramesEmitted + dropped
	if total == 0 {
		return 0.0
	}
	return float64(dropped) / float64(total)
}
