package services

// BucketCounts is the resolved number of questions per difficulty bucket.
type BucketCounts struct {
	Easy     int `json:"easy"`
	Moderate int `json:"moderate"`
	Hard     int `json:"hard"`
}

// Total returns the sum across buckets.
func (b BucketCounts) Total() int {
	return b.Easy + b.Moderate + b.Hard
}

// ResolveCounts converts a percentage split into per-bucket question counts
// for a total of n items. Easy and moderate truncate toward zero; hard
// absorbs the rounding remainder so the counts always sum to n.
func ResolveCounts(n, easyPercent, moderatePercent, hardPercent int) BucketCounts {
	easy := n * easyPercent / 100
	moderate := n * moderatePercent / 100

	return BucketCounts{
		Easy:     easy,
		Moderate: moderate,
		Hard:     n - easy - moderate,
	}
}
