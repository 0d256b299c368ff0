package mastery

// Band is a coarse label for a mastery score, used for display.
type Band string

const (
	BandEmerging   Band = "emerging"
	BandDeveloping Band = "developing"
	BandStrong     Band = "strong"
)

// BandFor returns the display band for a mastery score.
func BandFor(score int) Band {
	switch {
	case score >= 80:
		return BandStrong
	case score >= 60:
		return BandDeveloping
	default:
		return BandEmerging
	}
}
