package domain

// Strategy names an assignment policy. Only the greedy matcher is
// implemented; "nearest" and "capacity" are accepted selector names that
// currently run the same greedy priority+nearest pass.
type Strategy string

// List of accepted strategy names
const (
	StrategyGreedy   Strategy = "greedy"
	StrategyNearest  Strategy = "nearest"
	StrategyCapacity Strategy = "capacity"
)

var allowedStrategies = [...]Strategy{
	StrategyGreedy, StrategyNearest, StrategyCapacity,
}

// Valid checks if the Strategy is valid
func (s Strategy) Valid() bool {
	for _, v := range allowedStrategies {
		if s == v {
			return true
		}
	}
	return false
}
