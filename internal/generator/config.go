package generator

// Config drives the synthetic network generator.
type Config struct {
	Towns       int
	EdgeChance  float64
	MinDistance int
	MaxDistance int
	Seed        int64
}

// DefaultConfig returns a mid-sized network dense enough to stress the
// enumeration queries.
func DefaultConfig() Config {
	return Config{
		Towns:       12,
		EdgeChance:  0.3,
		MinDistance: 1,
		MaxDistance: 9,
		Seed:        42,
	}
}
