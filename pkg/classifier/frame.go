package classifier

import (
	"sort"

	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
)

// Frame is a named-column table of feature values. Predict reindexes it
// against the classifier's feature order; extra columns are ignored.
type Frame struct {
	Columns []string
	Rows    [][]float64
}

func FrameFromSamples(samples []models.SensorSample) Frame {
	return Frame{
		Columns: models.FeatureColumns,
		Rows:    common.Mapper(samples, models.SensorSample.Features),
	}
}

// FrameFromRows wraps rows that are already in canonical feature order.
func FrameFromRows(rows [][]float64) Frame {
	return Frame{Columns: models.FeatureColumns, Rows: rows}
}

// FrameFromRecords builds a frame from keyed rows. The columns are the keys
// of the first record; every record must carry the same keys.
func FrameFromRecords(records []map[string]float64) (Frame, error) {
	if len(records) == 0 {
		return Frame{Columns: models.FeatureColumns}, nil
	}

	columns := make([]string, 0, len(records[0]))
	for k := range records[0] {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	rows := make([][]float64, len(records))
	for i, rec := range records {
		row := make([]float64, len(columns))
		var missing []string
		for c, name := range columns {
			v, ok := rec[name]
			if !ok {
				missing = append(missing, name)
				continue
			}
			row[c] = v
		}
		if len(missing) > 0 {
			return Frame{}, &common.DataShapeError{Missing: missing, Got: -1, Want: len(columns)}
		}
		rows[i] = row
	}
	return Frame{Columns: columns, Rows: rows}, nil
}

// Select returns the rows reordered to the given columns.
func (f Frame) Select(columns []string) ([][]float64, error) {
	pos := make(map[string]int, len(f.Columns))
	for i, c := range f.Columns {
		pos[c] = i
	}

	index := make([]int, len(columns))
	var missing []string
	for i, c := range columns {
		p, ok := pos[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		index[i] = p
	}
	if len(missing) > 0 {
		return nil, &common.DataShapeError{Missing: missing, Got: -1, Want: len(columns)}
	}

	out := make([][]float64, len(f.Rows))
	for r, row := range f.Rows {
		if len(row) != len(f.Columns) {
			return nil, &common.DataShapeError{Got: len(row), Want: len(f.Columns)}
		}
		selected := make([]float64, len(columns))
		for i, p := range index {
			selected[i] = row[p]
		}
		out[r] = selected
	}
	return out, nil
}
