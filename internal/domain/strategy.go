package domain

// StrategyTag is the internal risk-profile label. The upstream finance API
// has its own strategy vocabulary; ToUpstreamName/StrategyFromUpstreamName is
// the single place the two are mapped.
type StrategyTag string

const (
	StrategyConservative StrategyTag = "conservative"
	StrategyBalanced     StrategyTag = "balanced"
	StrategyAggressive   StrategyTag = "aggressive"
)

// AllStrategies is ordered; every recommendation covers exactly these three.
var AllStrategies = []StrategyTag{
	StrategyConservative,
	StrategyBalanced,
	StrategyAggressive,
}

var strategyToUpstream = map[StrategyTag]string{
	StrategyConservative: "conservative",
	StrategyBalanced:     "balanced",
	StrategyAggressive:   "aggressive_growth",
}

func (s StrategyTag) ToUpstreamName() string {
	if name, ok := strategyToUpstream[s]; ok {
		return name
	}
	return strategyToUpstream[StrategyBalanced]
}

func StrategyFromUpstreamName(name string) (StrategyTag, bool) {
	for tag, upstream := range strategyToUpstream {
		if upstream == name {
			return tag, true
		}
	}
	return "", false
}
