package ratings

// DisplayRating blends a personal rating into a product's baseline
// aggregate as one additional vote. A userRating of 0 means "not rated"
// and leaves the baseline untouched; stored ratings are always in [1,5].
func DisplayRating(baseline float64, baselineCount, userRating int) float64 {
	if userRating == 0 {
		return baseline
	}
	return (baseline*float64(baselineCount) + float64(userRating)) / float64(baselineCount+1)
}

// DisplayRatingCount reports the vote count shown next to the blended
// rating: the baseline count plus one when a personal rating exists.
func DisplayRatingCount(baselineCount, userRating int) int {
	if userRating == 0 {
		return baselineCount
	}
	return baselineCount + 1
}
