package colorfilter

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Filter parameters, in application order. Hue is 0..100 mapped to 0..360deg.
const (
	pInvert = iota
	pSepia
	pSaturate
	pHue
	pBrightness
	pContrast
	numParams
)

type Params [numParams]float64

// Quality grades a solve by its loss.
type Quality string

const (
	Perfect    Quality = "perfect"
	Close      Quality = "close"
	Acceptable Quality = "acceptable"
	Poor       Quality = "poor"
)

func QualityOf(loss float64) Quality {
	switch {
	case loss < 1:
		return Perfect
	case loss < 5:
		return Close
	case loss < 15:
		return Acceptable
	default:
		return Poor
	}
}

type Result struct {
	Values  Params  `json:"values"`
	Loss    float64 `json:"loss"`
	Filter  string  `json:"filter"`
	Quality Quality `json:"quality"`
}

// Solver searches filter parameters with SPSA (simultaneous perturbation
// stochastic approximation). A Solver is not safe for concurrent use.
type Solver struct {
	target    Color
	targetHSL HSL
	rng       *rand.Rand
}

// NewSolver returns a solver for target. A nil rng uses a randomly seeded
// source.
func NewSolver(target Color, rng *rand.Rand) *Solver {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Solver{target: target, targetHSL: target.HSL(), rng: rng}
}

// Solve runs a wide search followed by a narrow refinement.
func (s *Solver) Solve() Result {
	wide := s.solveWide()
	best := s.solveNarrow(wide)
	if wide.loss < best.loss {
		best = wide
	}
	return Result{
		Values:  best.values,
		Loss:    best.loss,
		Filter:  CSS(best.values),
		Quality: QualityOf(best.loss),
	}
}

type candidate struct {
	values Params
	loss   float64
}

func (s *Solver) solveWide() candidate {
	const (
		A = 5
		c = 15
	)
	a := Params{60, 180, 18000, 600, 1.2, 1.2}

	best := candidate{loss: math.Inf(1)}
	for i := 0; best.loss > 25 && i < 3; i++ {
		initial := Params{50, 20, 3750, 50, 100, 100}
		if r := s.spsa(A, a, c, initial, 1000); r.loss < best.loss {
			best = r
		}
	}
	return best
}

func (s *Solver) solveNarrow(wide candidate) candidate {
	A := wide.loss
	const c = 2
	a1 := A + 1
	a := Params{0.25 * a1, 0.25 * a1, a1, 0.25 * a1, 0.2 * a1, 0.2 * a1}
	return s.spsa(A, a, c, wide.values, 500)
}

func (s *Solver) spsa(A float64, a Params, c float64, values Params, iters int) candidate {
	const (
		alpha = 1.0
		gamma = 1.0 / 6
	)

	best := candidate{values: values, loss: math.Inf(1)}
	var deltas, high, low Params
	for k := 0; k < iters; k++ {
		ck := c / math.Pow(float64(k+1), gamma)
		for i := range values {
			deltas[i] = -1
			if s.rng.Float64() > 0.5 {
				deltas[i] = 1
			}
			high[i] = values[i] + ck*deltas[i]
			low[i] = values[i] - ck*deltas[i]
		}

		diff := s.loss(high) - s.loss(low)
		for i := range values {
			g := diff / (2 * ck) * deltas[i]
			ak := a[i] / math.Pow(A+float64(k)+1, alpha)
			values[i] = fix(values[i]-ak*g, i)
		}

		if l := s.loss(values); l < best.loss {
			best = candidate{values: values, loss: l}
		}
	}
	return best
}

// fix wraps hue into [0, 100] and clamps everything else to its range.
func fix(v float64, i int) float64 {
	hi := 100.0
	switch i {
	case pSaturate:
		hi = 7500
	case pBrightness, pContrast:
		hi = 200
	}

	if i == pHue {
		if v > hi {
			v = math.Mod(v, hi)
		} else if v < 0 {
			v = hi + math.Mod(v, hi)
		}
		return v
	}
	return math.Max(0, math.Min(hi, v))
}

// Apply runs the filter chain on black.
func Apply(p Params) Color {
	return Color{}.
		Invert(p[pInvert] / 100).
		Sepia(p[pSepia] / 100).
		Saturate(p[pSaturate] / 100).
		HueRotate(p[pHue] * 3.6).
		Brightness(p[pBrightness] / 100).
		Contrast(p[pContrast] / 100)
}

func (s *Solver) loss(p Params) float64 {
	got := Apply(p)
	hsl := got.HSL()
	return math.Abs(got.R-s.target.R) +
		math.Abs(got.G-s.target.G) +
		math.Abs(got.B-s.target.B) +
		math.Abs(hsl.H-s.targetHSL.H) +
		math.Abs(hsl.S-s.targetHSL.S) +
		math.Abs(hsl.L-s.targetHSL.L)
}

// Loss is the distance between the filtered color of p and target.
func Loss(target Color, p Params) float64 {
	s := Solver{target: target, targetHSL: target.HSL()}
	return s.loss(p)
}

// CSS formats p as a CSS filter value.
func CSS(p Params) string {
	return fmt.Sprintf("invert(%d%%) sepia(%d%%) saturate(%d%%) hue-rotate(%ddeg) brightness(%d%%) contrast(%d%%)",
		round(p[pInvert]), round(p[pSepia]), round(p[pSaturate]),
		round(p[pHue]*3.6), round(p[pBrightness]), round(p[pContrast]))
}

func round(v float64) int {
	return int(math.Round(v))
}
