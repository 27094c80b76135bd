package results

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Column_ReturnsValuesInRowOrder(t *testing.T) {
	table := sampleTable()

	workers, err := table.Column("n")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 0}, workers)

	full, err := table.Column("full_rate_g")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.0625, 1}, full)
}

func TestTable_Column_AcceptsASCIIAliases(t *testing.T) {
	table := sampleTable()

	byGreek, err := table.Column("λ_g")
	require.NoError(t, err)
	byASCII, err := table.Column("lambda_g")
	require.NoError(t, err)
	assert.Equal(t, byGreek, byASCII)

	caps, err := table.Column("q_f")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1}, caps)
}

func TestTable_Column_UnknownName(t *testing.T) {
	_, err := sampleTable().Column("throughput")
	assert.ErrorContains(t, err, `unknown column "throughput"`)
}

func TestTable_XY_PairsTwoColumns(t *testing.T) {
	xs, ys, err := sampleTable().XY("duration", "rejects_f")
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 10.5}, xs)
	assert.Equal(t, []float64{0, 9}, ys)
}

func TestTable_Count(t *testing.T) {
	table := sampleTable()
	table.Append(Row{Index: 2, Result: sampleRows()[0].Result})

	n, err := table.Count("Q_g", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = table.Count("Q_g", 7)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTable_Value_CoversEveryColumn(t *testing.T) {
	row := sampleRows()[0]
	for _, c := range Columns {
		_, err := row.Value(c)
		assert.NoError(t, err, c)
	}
	v, err := row.Value("empty_rate_f")
	require.NoError(t, err)
	assert.Equal(t, 0.75, v)
}

func TestTable_ConcurrentAppend_SortByIndex(t *testing.T) {
	// GIVEN rows appended from several goroutines in arbitrary order
	table := NewTable(0)
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			batch := make([]Row, 0, 25)
			for i := g; i < 100; i += 4 {
				batch = append(batch, Row{Index: i})
			}
			table.AppendAll(batch)
		}(g)
	}
	wg.Wait()

	// WHEN sorted
	table.SortByIndex()

	// THEN every index appears exactly once, in order
	rows := table.Rows()
	require.Len(t, rows, 100)
	for i, r := range rows {
		assert.Equal(t, i, r.Index)
	}
}

func TestTable_Rows_ReturnsCopy(t *testing.T) {
	table := sampleTable()
	rows := table.Rows()
	rows[0].Workers = 99
	assert.Equal(t, 2, table.Rows()[0].Workers)
}
