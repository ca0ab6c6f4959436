package engine

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// stdGen is the library's default Park-Miller generator, seeded with 1
// like the original's `static RandomGen _stdgen(1)`. It is process-wide by
// design: RandomVar reproducibility across an entire program run is the
// point of the process-wide default generator contract, the same way math/rand's
// top-level convenience functions share one global source.
var stdGen = NewRandomGen(1)

// pstdgen is the generator handed out to RandomVar values constructed
// without an explicit one. ChangeGenerator/RestoreGenerator mutate this
// pointer, never stdGen itself.
var pstdgen *RandomGen = stdGen

// ChangeGenerator swaps the default generator used by future RandomVar
// constructions, returning the previous one.
func ChangeGenerator(g *RandomGen) *RandomGen {
	old := pstdgen
	pstdgen = g
	return old
}

// RestoreGenerator restores the library's built-in default generator.
func RestoreGenerator() {
	pstdgen = stdGen
}

// RandomVar is the common interface implemented by every distribution.
type RandomVar interface {
	// Get returns the next sample from the distribution.
	Get() float64
}

// randomVarBase carries the generator pointer shared by every concrete
// distribution; it is embedded rather than duplicated everywhere.
type randomVarBase struct {
	gen *RandomGen
}

func newRandomVarBase(g *RandomGen) randomVarBase {
	if g == nil {
		g = pstdgen
	}
	return randomVarBase{gen: g}
}

func (b randomVarBase) uniform01() float64 {
	s := b.gen.Sample()
	return float64(s) / float64(b.gen.Module())
}

// DeltaVar always returns the same constant. It is the degenerate
// distribution used by fixed inter-arrival times (a Dirac delta).
type DeltaVar struct {
	value float64
}

func NewDeltaVar(v float64) *DeltaVar { return &DeltaVar{value: v} }
func (d *DeltaVar) Get() float64      { return d.value }

// CreateDeltaVar implements the createInstance factory contract.
func CreateDeltaVar(par []string) (RandomVar, error) {
	if len(par) != 1 {
		return nil, wrongArity("DeltaVar", 1, par)
	}
	a, err := parseFloat(par[0])
	if err != nil {
		return nil, err
	}
	return NewDeltaVar(a), nil
}

// UniformVar draws uniformly in [min,max].
type UniformVar struct {
	randomVarBase
	min, max float64
}

func NewUniformVar(min, max float64, gen *RandomGen) *UniformVar {
	return &UniformVar{randomVarBase: newRandomVarBase(gen), min: min, max: max}
}

func (u *UniformVar) Get() float64 {
	s := float64(u.gen.Sample())
	return s*(u.max-u.min)/float64(u.gen.Module()) + u.min
}

func CreateUniformVar(par []string) (RandomVar, error) {
	if len(par) != 2 {
		return nil, wrongArity("UniformVar", 2, par)
	}
	a, err := parseFloat(par[0])
	if err != nil {
		return nil, err
	}
	b, err := parseFloat(par[1])
	if err != nil {
		return nil, err
	}
	return NewUniformVar(a, b, nil), nil
}

// ExponentialVar draws from an exponential distribution with the given
// mean, by inverse transform of an underlying Uniform(0,1).
type ExponentialVar struct {
	*UniformVar
	mean float64
}

func NewExponentialVar(mean float64, gen *RandomGen) *ExponentialVar {
	return &ExponentialVar{UniformVar: NewUniformVar(0, 1, gen), mean: mean}
}

func (e *ExponentialVar) Get() float64 {
	return -math.Log(e.UniformVar.Get()) * e.mean
}

func CreateExponentialVar(par []string) (RandomVar, error) {
	if len(par) != 1 {
		return nil, wrongArity("ExponentialVar", 1, par)
	}
	a, err := parseFloat(par[0])
	if err != nil {
		return nil, err
	}
	return NewExponentialVar(a, nil), nil
}

// ParetoVar draws from a Pareto distribution with scale mu and shape k.
type ParetoVar struct {
	*UniformVar
	mu, k float64
}

func NewParetoVar(mu, k float64, gen *RandomGen) *ParetoVar {
	return &ParetoVar{UniformVar: NewUniformVar(0, 1, gen), mu: mu, k: k}
}

func (p *ParetoVar) Get() float64 {
	return p.mu * math.Pow(p.UniformVar.Get(), -1/p.k)
}

func CreateParetoVar(par []string) (RandomVar, error) {
	if len(par) != 2 {
		return nil, wrongArity("ParetoVar", 2, par)
	}
	a, err := parseFloat(par[0])
	if err != nil {
		return nil, err
	}
	b, err := parseFloat(par[1])
	if err != nil {
		return nil, err
	}
	return NewParetoVar(a, b, nil), nil
}

// NormalVar draws from a Normal(mu,sigma) distribution using the polar
// Box-Muller transform, caching one spare sample per pair generated.
type NormalVar struct {
	*UniformVar
	mu, sigma float64
	hasSpare  bool
	spare     float64
}

func NewNormalVar(mu, sigma float64, gen *RandomGen) *NormalVar {
	return &NormalVar{UniformVar: NewUniformVar(0, 1, gen), mu: mu, sigma: sigma}
}

func (n *NormalVar) Get() float64 {
	if n.hasSpare {
		n.hasSpare = false
		return n.spare
	}

	var t1, t2, r float64
	for {
		t1 = 2*n.UniformVar.Get() - 1
		t2 = 2*n.UniformVar.Get() - 1
		r = t1*t1 + t2*t2
		if r < 1 {
			break
		}
	}

	r = math.Sqrt(-2*math.Log(r)/r) * n.sigma
	n.spare = n.mu + t1*r
	n.hasSpare = true
	return n.mu + t2*r
}

func CreateNormalVar(par []string) (RandomVar, error) {
	if len(par) != 2 {
		return nil, wrongArity("NormalVar", 2, par)
	}
	a, err := parseFloat(par[0])
	if err != nil {
		return nil, err
	}
	b, err := parseFloat(par[1])
	if err != nil {
		return nil, err
	}
	return NewNormalVar(a, b, nil), nil
}

// PoissonCutoff bounds the direct-inversion search in PoissonVar.Get, the
// same hard cutoff the original library uses to guarantee termination for
// pathologically large lambda.
const PoissonCutoff = 10000

// PoissonVar draws from a Poisson(lambda) distribution by direct
// inversion of the CDF.
type PoissonVar struct {
	*UniformVar
	lambda float64
}

func NewPoissonVar(lambda float64, gen *RandomGen) *PoissonVar {
	return &PoissonVar{UniformVar: NewUniformVar(0, 1, gen), lambda: lambda}
}

func (p *PoissonVar) Get() float64 {
	u := p.UniformVar.Get()
	f := math.Exp(-p.lambda)
	s := f

	for i := 1; i < PoissonCutoff; i++ {
		if u < s {
			return float64(i - 1)
		}
		f = f * p.lambda / float64(i)
		s += f
	}
	return float64(PoissonCutoff)
}

func CreatePoissonVar(par []string) (RandomVar, error) {
	if len(par) != 1 {
		return nil, wrongArity("PoissonVar", 1, par)
	}
	a, err := parseFloat(par[0])
	if err != nil {
		return nil, err
	}
	return NewPoissonVar(a, nil), nil
}

// DetVar replays a fixed sequence of values cyclically: once the sequence
// is exhausted, Get starts over from the beginning.
type DetVar struct {
	values []float64
	count  int
}

func NewDetVar(values []float64) *DetVar {
	cp := make([]float64, len(values))
	copy(cp, values)
	return &DetVar{values: cp}
}

// NewDetVarFromFile reads a whitespace-separated text file of doubles.
func NewDetVarFromFile(filename string) (*DetVar, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrIO, filename, err)
	}
	fields := strings.Fields(string(data))
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed value %q in %s", ErrIO, f, filename)
		}
		values = append(values, v)
	}
	return &DetVar{values: values}, nil
}

func (d *DetVar) Get() float64 {
	if len(d.values) == 0 {
		return 0
	}
	if d.count >= len(d.values) {
		d.count = 0
	}
	v := d.values[d.count]
	d.count++
	return v
}

func CreateDetVar(par []string) (RandomVar, error) {
	if len(par) != 1 {
		return nil, wrongArity("DetVar", 1, par)
	}
	return NewDetVarFromFile(par[0])
}

func parseFloat(s string) (float64, error) {
	// Permissive C-style numeric parse: atof() never fails, it just stops
	// at the first non-numeric character and returns whatever prefix it
	// managed to read (0 if nothing). TrimSpace keeps "  1.5" usable.
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return v, nil
	}
	// Fall back to the longest numeric prefix, mimicking atof.
	end := 0
	for end < len(s) && (s[end] == '+' || s[end] == '-' || s[end] == '.' ||
		s[end] == 'e' || s[end] == 'E' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	for ; end > 0; end-- {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return v, nil
		}
	}
	return 0, nil
}

func wrongArity(class string, want int, par []string) error {
	return fmt.Errorf("%w: %s expects %d parameter(s), got %d", ErrParse, class, want, len(par))
}
