package catalog

import (
	"cmp"
	"slices"

	"github.com/eak1mov/go-tilecatalog/tile"
	"gonum.org/v1/gonum/stat"
)

// Frequency is the number of grid positions occupied by one identifier.
type Frequency struct {
	ID    tile.ID
	Count int
}

func countFrequencies(ids []tile.ID) []Frequency {
	counts := make(map[tile.ID]int)
	for _, id := range ids {
		counts[id]++
	}

	frequencies := make([]Frequency, 0, len(counts))
	for id, count := range counts {
		frequencies = append(frequencies, Frequency{ID: id, Count: count})
	}
	slices.SortFunc(frequencies, func(a, b Frequency) int {
		return a.ID.Compare(b.ID)
	})
	return frequencies
}

// Count returns how many grid positions hold id.
func (c *Catalog) Count(id tile.ID) int {
	i, found := slices.BinarySearchFunc(c.Frequencies, id, func(f Frequency, id tile.ID) int {
		return f.ID.Compare(id)
	})
	if !found {
		return 0
	}
	return c.Frequencies[i].Count
}

// Distinct returns the number of distinct tiles.
func (c *Catalog) Distinct() int {
	return len(c.Frequencies)
}

// Weights returns the relative frequency of every identifier; the values sum to 1.
func (c *Catalog) Weights() map[tile.ID]float64 {
	weights := make(map[tile.ID]float64, len(c.Frequencies))
	total := float64(len(c.Sequence))
	for _, f := range c.Frequencies {
		weights[f.ID] = float64(f.Count) / total
	}
	return weights
}

// Entropy returns the Shannon entropy (in nats) of the tile distribution.
func (c *Catalog) Entropy() float64 {
	if len(c.Sequence) == 0 {
		return 0
	}
	p := make([]float64, len(c.Frequencies))
	total := float64(len(c.Sequence))
	for i, f := range c.Frequencies {
		p[i] = float64(f.Count) / total
	}
	return stat.Entropy(p)
}

// MostFrequent returns frequencies ordered by descending count, ties broken by identifier.
func (c *Catalog) MostFrequent() []Frequency {
	sorted := slices.Clone(c.Frequencies)
	slices.SortStableFunc(sorted, func(a, b Frequency) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return sorted
}
