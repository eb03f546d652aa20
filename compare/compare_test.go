package compare

import (
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rwtaggart/framebench/table"
)

func mustTable(t *testing.T, names []string, cols [][]int64) *table.Table {
	t.Helper()

	tbl, err := table.FromColumns(names, cols)
	require.NoError(t, err)

	return tbl
}

func cloneTable(t *testing.T, src *table.Table) *table.Table {
	t.Helper()

	out := table.New()
	for _, name := range src.Columns() {
		col := src.Column(name)
		require.NoError(t, out.AddColumn(name, append([]int64(nil), col...)))
	}

	return out
}

func TestVariantsFixedOrder(t *testing.T) {
	var names []string
	for _, v := range Variants() {
		names = append(names, v.Name)
	}

	want := []string{
		"column-vector", "table-diff", "element-wise", "scalar-apply",
	}
	assert.Equal(t, want, names)
}

func TestAllVariantsKnownFixture(t *testing.T) {
	a := mustTable(t,
		[]string{"colX", "colY"},
		[][]int64{{1, 2, 3}, {4, 5, 6}},
	)
	b := mustTable(t,
		[]string{"colX", "colY"},
		[][]int64{{2, 2, 5}, {4, 7, 6}},
	)

	for _, v := range Variants() {
		t.Run(v.Name, func(t *testing.T) {
			got, err := v.Fn(a, b)
			require.NoError(t, err)

			assert.Equal(t, []int64{1, 0, 2}, got.Column("colX"))
			assert.Equal(t, []int64{0, 2, 0}, got.Column("colY"))
		})
	}
}

func TestAllVariantsZeroOffset(t *testing.T) {
	a := mustTable(t,
		[]string{"c0", "c1"},
		[][]int64{{10, 20, 30}, {-1, 0, 1}},
	)
	b := cloneTable(t, a)

	for _, v := range Variants() {
		t.Run(v.Name, func(t *testing.T) {
			got, err := v.Fn(a, b)
			require.NoError(t, err)

			for _, name := range got.Columns() {
				for _, cell := range got.Column(name) {
					assert.Zero(t, cell)
				}
			}
		})
	}
}

func TestAllVariantsConstantOffset(t *testing.T) {
	const k = int64(7)

	a := mustTable(t,
		[]string{"c0", "c1"},
		[][]int64{{10, 20, 30}, {-1, 0, 1}},
	)

	b := table.New()
	for _, name := range a.Columns() {
		col := a.Column(name)

		shifted := make([]int64, len(col))
		for i, v := range col {
			shifted[i] = v + k
		}

		require.NoError(t, b.AddColumn(name, shifted))
	}

	for _, v := range Variants() {
		t.Run(v.Name, func(t *testing.T) {
			got, err := v.Fn(a, b)
			require.NoError(t, err)

			for _, name := range got.Columns() {
				for _, cell := range got.Column(name) {
					assert.Equal(t, k, cell)
				}
			}
		})
	}
}

func TestAllVariantsAgreeOnRandomPair(t *testing.T) {
	rng := mrand.New(mrand.NewSource(42))

	a := table.New()
	b := table.New()

	for c := 0; c < 5; c++ {
		colA := make([]int64, 200)
		colB := make([]int64, 200)

		for i := range colA {
			colA[i] = rng.Int63n(10000)
			colB[i] = colA[i] + rng.Int63n(11) - 5
		}

		name := string(rune('p' + c))
		require.NoError(t, a.AddColumn(name, colA))
		require.NoError(t, b.AddColumn(name, colB))
	}

	variants := Variants()

	reference, err := variants[0].Fn(a, b)
	require.NoError(t, err)

	for _, v := range variants[1:] {
		t.Run(v.Name, func(t *testing.T) {
			got, err := v.Fn(a, b)
			require.NoError(t, err)
			assert.True(t, table.Equal(reference, got),
				"%s disagrees with %s", v.Name, variants[0].Name)
		})
	}
}

func TestAllVariantsRejectRowMismatch(t *testing.T) {
	a := mustTable(t, []string{"c0"}, [][]int64{{1, 2, 3}})
	b := mustTable(t, []string{"c0"}, [][]int64{{1, 2}})

	for _, v := range Variants() {
		t.Run(v.Name, func(t *testing.T) {
			_, err := v.Fn(a, b)
			assert.ErrorIs(t, err, ErrMisaligned)
		})
	}
}

func TestAllVariantsRejectColumnMismatch(t *testing.T) {
	a := mustTable(t, []string{"c0", "c1"}, [][]int64{{1}, {2}})
	renamed := mustTable(t, []string{"c0", "other"}, [][]int64{{1}, {2}})
	narrower := mustTable(t, []string{"c0"}, [][]int64{{1}})

	for _, v := range Variants() {
		t.Run(v.Name, func(t *testing.T) {
			_, err := v.Fn(a, renamed)
			assert.ErrorIs(t, err, ErrMisaligned)

			_, err = v.Fn(a, narrower)
			assert.ErrorIs(t, err, ErrMisaligned)
		})
	}
}

func TestVariantsDoNotMutateInputs(t *testing.T) {
	a := mustTable(t,
		[]string{"c0", "c1"},
		[][]int64{{1, 2, 3}, {4, 5, 6}},
	)
	b := mustTable(t,
		[]string{"c0", "c1"},
		[][]int64{{7, 8, 9}, {10, 11, 12}},
	)

	wantA := cloneTable(t, a)
	wantB := cloneTable(t, b)

	for _, v := range Variants() {
		_, err := v.Fn(a, b)
		require.NoError(t, err)

		assert.True(t, table.Equal(wantA, a), "%s mutated table A", v.Name)
		assert.True(t, table.Equal(wantB, b), "%s mutated table B", v.Name)
	}
}
