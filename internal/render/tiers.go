package render

// Tier ranks the render strategies from most to least sophisticated.
type Tier int

const (
	TierAnimated Tier = iota + 1
	TierSimple
	TierAnimatedBackground
	TierStaticBackground
	TierPlaceholder
)

var tierNames = map[Tier]string{
	TierAnimated:           "animated",
	TierSimple:             "simple",
	TierAnimatedBackground: "animated_background",
	TierStaticBackground:   "static_background",
	TierPlaceholder:        "placeholder",
}

func (t Tier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return "unknown"
}
