package series

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gocarina/gocsv"
)

// ReadBarsCSV decodes bars from CSV with a time,open,high,low,close,volume
// header. Column order is free and unknown columns are ignored.
func ReadBarsCSV(r io.Reader) ([]Bar, error) {
	var bars []Bar
	if err := gocsv.Unmarshal(r, &bars); err != nil {
		return nil, fmt.Errorf("series: decode bars: %w", err)
	}
	return bars, nil
}

// LoadBarsCSV reads bars from a CSV file.
func LoadBarsCSV(path string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("series: open bars: %w", err)
	}
	defer f.Close()

	return ReadBarsCSV(f)
}

// WriteBarsCSV encodes bars with the header ReadBarsCSV expects.
func WriteBarsCSV(w io.Writer, bars []Bar) error {
	if err := gocsv.Marshal(bars, w); err != nil {
		return fmt.Errorf("series: encode bars: %w", err)
	}
	return nil
}

// WriteCSV writes the set as CSV, one row per bar and one column per key.
// Values are rounded to places decimals; a negative places writes them
// unrounded.
func (st *Set) WriteCSV(w io.Writer, places int32) error {
	cw := gocsv.DefaultCSVWriter(w)

	if err := cw.Write(st.Keys()); err != nil {
		return fmt.Errorf("series: write header: %w", err)
	}

	row := make([]string, len(st.keys))
	for i := range st.Len() {
		for j, key := range st.keys {
			v := st.data[key].At(i)
			if places >= 0 {
				v = round(v, places)
			}
			row[j] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("series: write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("series: flush: %w", err)
	}
	return nil
}
