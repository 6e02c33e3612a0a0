package coefficient

// Division weights point values across competitions of differing
// strength; Club modulates within a competition. Values outside
// [MinValue, MaxValue] are clamped on ingestion.
const (
	MinValue = 0.5
	MaxValue = 2.0
)

type Division struct {
	CompetitionID string
	SeasonID      string
	Matchday      int
	Value         float64
}

type Club struct {
	ClubID   string
	SeasonID string
	Matchday int
	Value    float64
}

func Clamp(value float64) float64 {
	switch {
	case value < MinValue:
		return MinValue
	case value > MaxValue:
		return MaxValue
	default:
		return value
	}
}
