package series

import (
	"fmt"
	"strings"
	"time"
)

// timeLayouts are tried in order when parsing bar timestamps.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp is a bar time that accepts RFC 3339, "2006-01-02 15:04:05" and
// plain dates in CSV input.
type Timestamp struct {
	time.Time
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (t *Timestamp) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("series: unsupported time %q", s)
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (t Timestamp) MarshalCSV() (string, error) {
	return t.Format(time.RFC3339), nil
}

// Bar is one OHLCV record.
type Bar struct {
	Time   Timestamp `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// PriceField selects the value of a bar fed to the analysis.
type PriceField int

const (
	Close PriceField = iota
	Open
	High
	Low
	// Median is (high + low) / 2.
	Median
	// Typical is (high + low + close) / 3.
	Typical
	// Weighted is (high + low + 2*close) / 4.
	Weighted
)

var priceFieldNames = []string{"close", "open", "high", "low", "median", "typical", "weighted"}

func (f PriceField) String() string {
	if f < 0 || int(f) >= len(priceFieldNames) {
		return fmt.Sprintf("PriceField(%d)", int(f))
	}
	return priceFieldNames[f]
}

// ParsePriceField maps a name produced by String back to a PriceField. The
// empty name selects Close.
func ParsePriceField(name string) (PriceField, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Close, nil
	}
	for i, n := range priceFieldNames {
		if n == name {
			return PriceField(i), nil
		}
	}
	return 0, fmt.Errorf("series: unknown price field %q", name)
}

// Price returns the selected value of b.
func (f PriceField) Price(b Bar) float64 {
	switch f {
	case Open:
		return b.Open
	case High:
		return b.High
	case Low:
		return b.Low
	case Median:
		return (b.High + b.Low) / 2
	case Typical:
		return (b.High + b.Low + b.Close) / 3
	case Weighted:
		return (b.High + b.Low + 2*b.Close) / 4
	default:
		return b.Close
	}
}

// Extract returns the selected field of every bar as a series.
func (f PriceField) Extract(bars []Bar) *Series {
	s := New(len(bars))
	for _, b := range bars {
		s.Append(f.Price(b))
	}
	return s
}
