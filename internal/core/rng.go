package core

// RNG is the source of randomness for the simulation. Every random draw goes
// through it so a seeded run replays identically.
type RNG interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n <= 0 returns 0.
	Intn(n int) int
}

// SimpleRNG is a deterministic 64-bit linear congruential generator.
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a generator seeded with seed.
func NewRNG(seed int64) *SimpleRNG {
	return &SimpleRNG{state: uint64(seed)} //#nosec G115 -- seed bits are reinterpreted, not range-checked
}

// Next advances the generator and returns the raw state.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a value in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n > 0 checked above
}

// Float64 returns a value in [0, 1) built from the top 53 bits.
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// State returns the internal state for snapshot hashing.
func (r *SimpleRNG) State() uint64 { return r.state }

// ScriptedRNG replays a fixed list of Float64 values, cycling when exhausted.
// Tests use it to force specific rolls.
type ScriptedRNG struct {
	Values []float64
	pos    int
}

// Float64 returns the next scripted value, or 0 for an empty script.
func (r *ScriptedRNG) Float64() float64 {
	if len(r.Values) == 0 {
		return 0
	}
	v := r.Values[r.pos%len(r.Values)]
	r.pos++
	return v
}

// Intn maps the next scripted value onto [0, n).
func (r *ScriptedRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
