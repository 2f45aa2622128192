package testutil

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/packed"
	"github.com/hupe1980/colsaw/table"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed uint64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// IntN returns a non-negative pseudo-random number in [0,n).
func (r *RNG) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.IntN(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Present returns n flags, each false with probability missingRate.
func (r *RNG) Present(n int, missingRate float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	present := make([]bool, n)
	for i := range n {
		present[i] = r.rand.Float64() >= missingRate
	}
	return present
}

// ZipfIndices returns n values in [0, k) following Zipf's law with skew s:
// P(i) ∝ 1/(i+1)^s. s=1.5 puts roughly 80% of the values in 20% of the keys,
// which is how categorical columns tend to look.
func (r *RNG) ZipfIndices(n, k int, s float64) []int {
	out := make([]int, n)
	if k <= 1 {
		return out
	}

	cdf := make([]float64, k)
	var sum float64
	for i := range k {
		sum += 1 / math.Pow(float64(i+1), s)
		cdf[i] = sum
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range out {
		u := r.rand.Float64() * sum
		out[i] = min(sort.SearchFloat64s(cdf, u), k-1)
	}
	return out
}

// Ints returns an Int column of n values in [-bound, bound).
func (r *RNG) Ints(name string, n, bound int, missingRate float64) *column.IntColumn {
	present := r.Present(n, missingRate)
	c := column.NewIntColumn(name)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ok := range present {
		if !ok {
			c.AppendMissing()
			continue
		}
		c.AppendValue(int32(r.rand.IntN(2*bound) - bound))
	}
	return c
}

// Doubles returns a Double column of normally distributed values rounded to
// one decimal, so that ties occur.
func (r *RNG) Doubles(name string, n int, missingRate float64) *column.DoubleColumn {
	present := r.Present(n, missingRate)
	c := column.NewDoubleColumn(name)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ok := range present {
		if !ok {
			c.AppendMissing()
			continue
		}
		c.AppendValue(math.Round(r.rand.NormFloat64()*100) / 10)
	}
	return c
}

// Strings returns a String column drawing from distinct values with Zipf
// skew. Missing cells are the empty string.
func (r *RNG) Strings(name string, n, distinct int, missingRate float64) *column.StringColumn {
	present := r.Present(n, missingRate)
	keys := r.ZipfIndices(n, distinct, 1.2)
	values := make([]string, n)
	for i, ok := range present {
		if ok {
			values[i] = fmt.Sprintf("%s-%d", name, keys[i])
		}
	}
	return column.NewStringColumn(name, values...)
}

// Texts returns a Text column of random lowercase words.
func (r *RNG) Texts(name string, n, maxLen int) *column.TextColumn {
	r.mu.Lock()
	defer r.mu.Unlock()

	values := make([]string, n)
	buf := make([]byte, maxLen)
	for i := range values {
		l := r.rand.IntN(maxLen + 1)
		for j := range l {
			buf[j] = byte('a' + r.rand.IntN(26))
		}
		values[i] = string(buf[:l])
	}
	return column.NewTextColumn(name, values...)
}

// Dates returns a Date column spread over days days starting at from.
func (r *RNG) Dates(name string, n int, from time.Time, days int, missingRate float64) *column.DateColumn {
	present := r.Present(n, missingRate)
	c := column.NewDateColumn(name)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ok := range present {
		if !ok {
			c.AppendMissing()
			continue
		}
		d, err := packed.DateOf(from.AddDate(0, 0, r.rand.IntN(days)))
		if err != nil {
			panic(err)
		}
		c.AppendValue(d)
	}
	return c
}

// Table returns a table of n rows with an Int, Double, String, Text and
// Date column, each with some missing cells.
func (r *RNG) Table(name string, n int) *table.Table {
	return table.Must(name,
		r.Ints("id", n, 1000, 0.02),
		r.Doubles("score", n, 0.05),
		r.Strings("state", n, 50, 0.01),
		r.Texts("note", n, 12),
		r.Dates("day", n, time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), 3650, 0.03),
	)
}
