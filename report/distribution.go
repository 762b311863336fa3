package report

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	DefaultSamples = 500
	DefaultSigma   = 10.0
	DefaultBins    = 10
	MaxSamples     = 100_000

	ratingMin = 0.0
	ratingMax = 100.0
)

// Bin is one histogram bucket covering [Lower, Upper).
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Distribution summarizes simulated ratings around a counterparty rating.
type Distribution struct {
	Rating  int     `json:"rating"`
	Samples int     `json:"samples"`
	Sigma   float64 `json:"sigma"`
	Seed    uint64  `json:"seed"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Bins    []Bin   `json:"bins"`
}

// SimulateRating draws samples from Normal(rating, sigma), clamps them to the
// rating scale and bins them. The same seed always yields the same result.
func SimulateRating(rating, samples int, sigma float64, bins int, seed uint64) Distribution {
	if samples <= 0 {
		samples = DefaultSamples
	}
	if samples > MaxSamples {
		samples = MaxSamples
	}
	if sigma <= 0 {
		sigma = DefaultSigma
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	normal := distuv.Normal{
		Mu:    float64(rating),
		Sigma: sigma,
		Src:   rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}

	xs := make([]float64, samples)
	for i := range xs {
		xs[i] = math.Min(math.Max(normal.Rand(), ratingMin), ratingMax)
	}
	sort.Float64s(xs)

	dividers := floats.Span(make([]float64, bins+1), ratingMin, ratingMax)
	// the top bucket must include ratingMax itself
	dividers[bins] = math.Nextafter(ratingMax, math.Inf(1))
	counts := stat.Histogram(nil, dividers, xs, nil)

	mean, std := stat.MeanStdDev(xs, nil)

	out := Distribution{
		Rating:  rating,
		Samples: samples,
		Sigma:   sigma,
		Seed:    seed,
		Mean:    mean,
		StdDev:  std,
		Bins:    make([]Bin, bins),
	}
	for i := range out.Bins {
		upper := dividers[i+1]
		if i == bins-1 {
			upper = ratingMax
		}
		out.Bins[i] = Bin{Lower: dividers[i], Upper: upper, Count: int(counts[i])}
	}
	return out
}
