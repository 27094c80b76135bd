package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/warehouse-sim/warehouse-sim/sim"
)

// Header captures metadata written next to an exported result table.
type Header struct {
	Version      int    `yaml:"results_version"`
	SweepID      string `yaml:"sweep_id"`
	CreatedAt    string `yaml:"created_at,omitempty"`
	Mode         string `yaml:"mode"` // "simulate" or "sweep"
	Seed         int64  `yaml:"seed"`
	Threads      int    `yaml:"threads,omitempty"`
	Combinations int    `yaml:"combinations"`
	ServiceTime  string `yaml:"service_time"` // sampling convention for p_g/p_f
}

// ServiceTimeMean documents that p_g and p_f are mean service times.
const ServiceTimeMean = "exponential(mean=p)"

// NewHeader creates a header with a fresh time-sortable sweep ID.
func NewHeader(mode string, seed int64, threads, combinations int) *Header {
	return &Header{
		Version:      1,
		SweepID:      uuid.Must(uuid.NewV7()).String(),
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		Mode:         mode,
		Seed:         seed,
		Threads:      threads,
		Combinations: combinations,
		ServiceTime:  ServiceTimeMean,
	}
}

// WriteCSV writes the column header and one line per row.
// Integer columns use %d formatting; floats use the shortest exact form.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range rows {
		if err := writer.Write(formatRow(r)); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", r.Index, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatRow(r Row) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []string{
		f(r.GroceryRate),
		f(r.FrozenRate),
		f(r.GroceryService),
		f(r.FrozenService),
		strconv.Itoa(r.GroceryCapacity),
		strconv.Itoa(r.FrozenCapacity),
		strconv.Itoa(r.Workers),
		f(r.Duration),
		strconv.Itoa(r.RejectsGrocery),
		strconv.Itoa(r.RejectsFrozen),
		strconv.Itoa(r.FinishedGrocery),
		strconv.Itoa(r.FinishedFrozen),
		f(r.WorkerUtil),
		f(r.AvgWaitGrocery),
		f(r.AvgWaitFrozen),
		f(r.FullRateGrocery),
		f(r.FullRateFrozen),
		f(r.EmptyRateGrocery),
		f(r.EmptyRateFrozen),
	}
}

// ReadCSV parses a table written by WriteCSV. Row indexes follow file order.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Columns)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	for i, name := range header {
		if name != Columns[i] {
			return nil, fmt.Errorf("CSV column %d is %q, expected %q", i, name, Columns[i])
		}
	}

	table := NewTable(0)
	for idx := 0; ; idx++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		row, err := parseRow(idx, record)
		if err != nil {
			return nil, err
		}
		table.Append(row)
	}
	return table, nil
}

func parseRow(idx int, record []string) (Row, error) {
	vals := make([]float64, len(record))
	for i, s := range record {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Row{}, fmt.Errorf("row %d column %s: %w", idx, Columns[i], err)
		}
		vals[i] = v
	}
	return Row{
		Index: idx,
		Result: sim.Result{
			GroceryRate:      vals[0],
			FrozenRate:       vals[1],
			GroceryService:   vals[2],
			FrozenService:    vals[3],
			GroceryCapacity:  int(vals[4]),
			FrozenCapacity:   int(vals[5]),
			Workers:          int(vals[6]),
			Duration:         vals[7],
			RejectsGrocery:   int(vals[8]),
			RejectsFrozen:    int(vals[9]),
			FinishedGrocery:  int(vals[10]),
			FinishedFrozen:   int(vals[11]),
			WorkerUtil:       vals[12],
			AvgWaitGrocery:   vals[13],
			AvgWaitFrozen:    vals[14],
			FullRateGrocery:  vals[15],
			FullRateFrozen:   vals[16],
			EmptyRateGrocery: vals[17],
			EmptyRateFrozen:  vals[18],
		},
	}, nil
}

// WriteHeader writes h as YAML to path.
func WriteHeader(path string, h *Header) error {
	data, err := yaml.Marshal(h)
	if err != nil {
		return fmt.Errorf("marshaling results header: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results header: %w", err)
	}
	return nil
}

// ReadHeader parses a header written by WriteHeader.
func ReadHeader(path string) (*Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results header: %w", err)
	}
	var h Header
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parsing results header: %w", err)
	}
	return &h, nil
}

// WriteCSVFile writes the table as CSV to path.
func WriteCSVFile(path string, table *Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results data file: %w", err)
	}
	if err := WriteCSV(file, table.Rows()); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// Export writes the header (YAML) and the table (CSV) to separate files.
func Export(header *Header, table *Table, headerPath, dataPath string) error {
	if err := WriteHeader(headerPath, header); err != nil {
		return err
	}
	return WriteCSVFile(dataPath, table)
}

// Load reads a header (YAML) and table (CSV) written by Export.
func Load(headerPath, dataPath string) (*Header, *Table, error) {
	header, err := ReadHeader(headerPath)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(dataPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening results data: %w", err)
	}
	defer func() { _ = file.Close() }()

	table, err := ReadCSV(file)
	if err != nil {
		return nil, nil, err
	}
	return header, table, nil
}
