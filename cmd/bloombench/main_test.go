package main

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rag-nar1/bloomcheck/filter"
)

func TestDatasetDisjoint(t *testing.T) {
	members, strangers := dataset(rand.New(rand.NewSource(1)), 2000)
	require.Len(t, members, 2000)
	require.Len(t, strangers, 2000)

	seen := make(map[string]bool)
	for _, s := range append(members, strangers...) {
		require.False(t, seen[s], "duplicate %q", s)
		seen[s] = true
	}
}

func TestMeasure(t *testing.T) {
	members, strangers := dataset(rand.New(rand.NewSource(7)), 20000)

	var results []result
	for _, name := range filter.HashNames() {
		fn, _ := filter.HashByName(name)
		res, err := measure(name, fn, members, strangers, 0.01)
		require.NoError(t, err)

		assert.Zero(t, res.fn, name)
		assert.LessOrEqual(t, float64(res.fp)/float64(res.queries), 0.1, name)
		results = append(results, res)
	}

	var buf bytes.Buffer
	printResults(&buf, 0.01, len(members), results)
	for _, name := range filter.HashNames() {
		assert.Contains(t, buf.String(), name)
	}
}

func TestMeasureInvalidRate(t *testing.T) {
	_, err := measure("murmur3", filter.Murmur3, []string{"a"}, []string{"b"}, 0)
	require.ErrorIs(t, err, filter.ErrInvalidArgument)
}
