package engine

import "math"

// Aggregate computes summary counts over records. All values are zero for an empty set.
func Aggregate(records []VideoRecord) Stats {
	var s Stats
	s.TotalVideos = len(records)
	for _, r := range records {
		s.TotalViews += r.Views
		s.TotalComments += r.Comments
	}
	if s.TotalVideos > 0 {
		s.AvgViews = int64(math.Round(float64(s.TotalViews) / float64(s.TotalVideos)))
	}
	return s
}
