package timetable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	da "github.com/lintang-b-s/tdnavigator/pkg/datastructure"
	"github.com/lintang-b-s/tdnavigator/pkg/util"
)

// DurationTable holds the predicted traversal duration of every edge for each timestamp.
// Row i of a timestamp is the duration of topology edge i. It is read-only once loaded.
type DurationTable struct {
	timestamps []string
	rows       map[string][]float64
	numEdges   int
}

func NewDurationTable(numEdges int) *DurationTable {
	return &DurationTable{
		timestamps: make([]string, 0),
		rows:       make(map[string][]float64),
		numEdges:   numEdges,
	}
}

// Add appends the durations of one timestamp. Each timestamp may appear once.
func (dt *DurationTable) Add(timestamp string, durations []float64) error {
	if len(durations) != dt.numEdges {
		return fmt.Errorf("%w: timestamp %q has %d durations, topology has %d edges", ErrMisalignedTable,
			timestamp, len(durations), dt.numEdges)
	}
	if _, ok := dt.rows[timestamp]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateRow, timestamp)
	}
	dt.timestamps = append(dt.timestamps, timestamp)
	row := make([]float64, len(durations))
	copy(row, durations)
	dt.rows[timestamp] = row
	return nil
}

func (dt *DurationTable) NumberOfEdges() int {
	return dt.numEdges
}

// Timestamps returns the timestamps in file order.
func (dt *DurationTable) Timestamps() []string {
	return dt.timestamps
}

func (dt *DurationTable) DurationsAt(timestamp string) ([]float64, error) {
	row, ok := dt.rows[timestamp]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimestamp, timestamp)
	}
	return row, nil
}

func (dt *DurationTable) DurationAt(timestamp string, edge da.Index) (float64, error) {
	row, err := dt.DurationsAt(timestamp)
	if err != nil {
		return 0, err
	}
	if int(edge) >= len(row) {
		return 0, fmt.Errorf("%w: edge %d, table has %d edges", ErrMisalignedTable, edge, len(row))
	}
	return row[edge], nil
}

// ReadDurationTable reads rows of "timestamp,d0,d1,...". numEdges is the topology edge count.
func ReadDurationTable(filename string, numEdges int) (*DurationTable, error) {
	rc, err := util.OpenFile(filename)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ParseDurationTable(rc, numEdges)
}

func ParseDurationTable(r io.Reader, numEdges int) (*DurationTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	dt := NewDurationTable(numEdges)
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			return nil, fmt.Errorf("%w: durations row %d has no timestamp", ErrMalformedRow, row)
		}

		durations := make([]float64, len(record)-1)
		for i, field := range record[1:] {
			durations[i], err = util.StringToFloat64(field)
			if err != nil {
				return nil, fmt.Errorf("%w: durations row %d column %d: %v", ErrMalformedRow, row, i+1, err)
			}
		}
		if err := dt.Add(strings.TrimSpace(record[0]), durations); err != nil {
			return nil, fmt.Errorf("durations row %d: %w", row, err)
		}
	}
	return dt, nil
}
