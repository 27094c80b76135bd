// Package testutil provides shared test infrastructure for the warehouse
// simulator: golden-file comparison and tolerant float assertions used across
// sim/ and its sub-packages.
package testutil

import (
	"math"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// AssertGolden compares data with testdata/golden/<name>.golden in the
// calling package's directory. Run the test with -update to rewrite the file.
func AssertGolden(t *testing.T, name string, data []byte) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
