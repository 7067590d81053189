package record

import (
	"math/rand/v2"
	"runtime"

	"github.com/exascience/sortbench"
	"github.com/exascience/sortbench/parallel"
	"github.com/exascience/sortbench/sequential"
)

// A Generator produces synthetic datasets of a requested size.
type Generator interface {
	Generate(n int) Dataset
}

// generateBatch is the number of records one goroutine generates.
const generateBatch = 4096

// maxDigits bounds the decimal width of generated keys.
const maxDigits = 8

var pow10 = [...]uint64{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000}

/*
RandomGenerator generates records whose keys are spread evenly over
decimal widths: a width between 1 and 8 digits is drawn uniformly, and
then a key uniformly among the numbers of that width. Statuses follow
the percentages in Weights.

Datasets are generated in batches, in parallel unless GOMAXPROCS is 1.
Each batch has its own random source derived from Seed and the batch
offset, so the same Seed and size always produce the same dataset.
*/
type RandomGenerator struct {
	Seed uint64

	// Weights holds the percentage of Preserved, Burned and Deforested
	// records. The zero value means 90/5/5.
	Weights [3]int
}

// NewRandomGenerator returns a generator with the default status
// distribution.
func NewRandomGenerator(seed uint64) *RandomGenerator {
	return &RandomGenerator{Seed: seed}
}

func (g *RandomGenerator) weights() [3]int {
	w := g.Weights
	if w[0]+w[1]+w[2] <= 0 {
		return [3]int{90, 5, 5}
	}
	return w
}

// Generate returns a dataset of n records.
func (g *RandomGenerator) Generate(n int) Dataset {
	if runtime.GOMAXPROCS(0) == 1 {
		return g.generate(n, sequential.Range)
	}
	return g.generate(n, parallel.Range)
}

func (g *RandomGenerator) generate(n int, batch func(low, high, n int, f sortbench.RangeFunc)) Dataset {
	if n <= 0 {
		return Dataset{}
	}
	data := make(Dataset, n)
	weights := g.weights()
	batches := (n + generateBatch - 1) / generateBatch
	batch(0, n, batches, func(low, high int) {
		g.fill(data[low:high], uint64(low), weights)
	})
	return data
}

func (g *RandomGenerator) fill(data Dataset, offset uint64, weights [3]int) {
	rng := rand.New(rand.NewPCG(g.Seed, offset))
	total := weights[0] + weights[1] + weights[2]
	for i := range data {
		digits := rng.IntN(maxDigits) + 1
		lower, upper := pow10[digits-1], pow10[digits]-1
		data[i].Key = lower + rng.Uint64N(upper-lower+1)
		data[i].Status = pickStatus(rng.IntN(total), weights)
	}
}

func pickStatus(roll int, weights [3]int) Status {
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return Status(i + 1)
		}
	}
	return Preserved
}
