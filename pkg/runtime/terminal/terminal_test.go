package terminal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureCSV = "Row ID,Order ID,Order Date,Customer Name,Region,Product Name,Category,Sales,Quantity,Profit\n" +
	"1,A-1,1/5/2024,Claire Gute,East,Stapler,Office Supplies,100,2,40\n" +
	"2,A-2,2/10/2024,Darrin Van Huff,West,Chair,Furniture,300,1,60\n" +
	"3,A-3,3/3/2024,Sean O'Donnell,East,Phone,Technology,600,3,-50\n"

func writeFixture(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "superstore.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	cli := NewCLI(Options{
		Output: &out,
		Clock:  func() time.Time { return time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC) },
	})
	err := cli.ExecuteContext(context.Background(), args...)
	return out.String(), err
}

func TestSummary(t *testing.T) {
	source := writeFixture(t)

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name: "whole dataset",
			args: []string{"summary", "--source", source},
			expected: []string{
				"Filters: No filters",
				"Total Sales:   $1,000.00",
				"Total Profit:  $50.00",
				"Total Orders:  3",
				"Profit Margin: 5.0%",
				"=== Top Products ===",
			},
		},
		{
			name: "single category",
			args: []string{"summary", "--source", source, "--category", "Furniture"},
			expected: []string{
				"Filters: categories: Furniture",
				"Total Sales:   $300.00",
				"Profit Margin: 20.0%",
			},
		},
		{
			name: "date range with comparison",
			args: []string{"summary", "--source", source, "--from", "2024-02-01", "--to", "2024-03-31", "--compare", "mom"},
			expected: []string{
				"Filters: 2024-02-01 to 2024-03-31",
				"Total Sales:   $900.00",
				"Previous period (2024-01-01 to 2024-03-02)",
				"Sales $400.00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.expected {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestSummary_InvalidFlags(t *testing.T) {
	source := writeFixture(t)

	_, err := run(t, "summary", "--source", source, "--from", "01/02/2024", "--to", "2024-03-01")
	assert.ErrorContains(t, err, "invalid --from date")

	_, err = run(t, "summary", "--source", source, "--preset", "fortnight")
	assert.ErrorContains(t, err, "unknown date preset")

}

func TestFailedLoadDegradesToEmptyDataset(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.csv")

	out, err := run(t, "summary", "--source", missing)
	require.NoError(t, err)
	assert.Contains(t, out, "Load failed: open dataset file")
	assert.Contains(t, out, "Total Sales:   $0.00")
	assert.Contains(t, out, "Total Orders:  0")

	out, err = run(t, "ask", "--source", missing, "what", "is", "the", "profit", "margin")
	require.NoError(t, err)
	assert.Contains(t, out, "The data is not loaded yet.")

	out, err = run(t, "table", "--source", missing)
	require.NoError(t, err)
	assert.Contains(t, out, "Page 1 of 1 (0 rows")
}

func TestAsk(t *testing.T) {
	source := writeFixture(t)

	out, err := run(t, "ask", "--source", source, "What", "is", "the", "profit", "margin?")
	require.NoError(t, err)
	assert.Contains(t, out, "Current overall profit margin: **5.00%**")

	out, err = run(t, "ask", "--source", source)
	require.NoError(t, err)
	assert.Contains(t, out, "0. What are the top selling products?")

	out, err = run(t, "ask", "--source", source, "--suggestion", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Phone: $600.00")
	assert.Contains(t, out, "3. Stapler: $100.00")

	out, err = run(t, "ask", "--source", source, "tell", "me", "a", "joke")
	require.NoError(t, err)
	assert.Contains(t, out, "could not understand your query")
}

func TestTable(t *testing.T) {
	source := writeFixture(t)

	out, err := run(t, "table", "--source", source)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Phone"), strings.Index(out, "Stapler"))
	assert.Contains(t, out, "Page 1 of 1 (3 rows, sorted by Sales desc)")

	out, err = run(t, "table", "--source", source, "--sort", "Product Name", "--asc")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Chair"), strings.Index(out, "Phone"))
	assert.Contains(t, out, "sorted by Product Name asc")

	out, err = run(t, "table", "--source", source, "--search", "EAST")
	require.NoError(t, err)
	assert.Contains(t, out, "(2 rows, sorted by Sales desc, search \"EAST\")")
	assert.NotContains(t, out, "Chair")

	_, err = run(t, "table", "--source", source, "--sort", "Row ID")
	assert.ErrorContains(t, err, "unknown table column")
}

func TestExport(t *testing.T) {
	source := writeFixture(t)
	target := filepath.Join(t.TempDir(), "out.csv")

	out, err := run(t, "export", "--source", source, "--region", "East", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 rows to "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Row ID,Order ID,Order Date,Customer Name,Region,Product Name,Category,Sales,Quantity,Profit", lines[0])

	out, err = run(t, "export", "--source", source, "-o", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Row ID,Order ID"))

	_, err = run(t, "export", "--source", source, "--format", "docx")
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestImportThenReadFromDuckDB(t *testing.T) {
	source := writeFixture(t)
	db := filepath.Join(t.TempDir(), "atlas.db")

	out, err := run(t, "import", "--source", source, "--duckdb", db, "--name", "fixture")
	require.NoError(t, err)
	assert.Contains(t, out, `Imported 3 rows into "fixture" (2024-01-05 to 2024-03-03)`)

	// importing again replaces the previous rows
	_, err = run(t, "import", "--source", source, "--duckdb", db, "--name", "fixture")
	require.NoError(t, err)

	out, err = run(t, "import", "--list", "--duckdb", db)
	require.NoError(t, err)
	assert.Equal(t, "fixture\n", out)

	out, err = run(t, "summary", "--source", "duckdb", "--duckdb", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Total Sales:   $1,000.00")
	assert.Contains(t, out, "Total Orders:  3")
}
