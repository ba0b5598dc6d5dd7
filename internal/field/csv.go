package field

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a scalar field from a comma-separated file. See ReadCSV.
func LoadCSV(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open field data: %w", err)
	}
	defer f.Close()

	g, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ReadCSV reads "x,y,S" rows and builds a grid with FromSamples.
//
// The first line is a header and is always skipped. Only the first three
// fields of a row are used. Rows with fewer than three fields, or with an
// empty x, y or S field, are skipped. A field that is present but not a number,
// or an S of NaN or ±Inf, fails the whole read with ErrParse. Quotes are
// tolerated rather than enforced.
func ReadCSV(r io.Reader) (*Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	cr.LazyQuotes = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoSamples
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var samples []Sample
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read field data: %w", err)
		}
		if len(rec) < 3 {
			continue
		}
		xs, ys, ss := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1]), strings.TrimSpace(rec[2])
		if xs == "" || ys == "" || ss == "" {
			continue
		}

		line, _ := cr.FieldPos(0)
		var s Sample
		if s.X, err = parseField(line, "x", xs); err != nil {
			return nil, err
		}
		if s.Y, err = parseField(line, "y", ys); err != nil {
			return nil, err
		}
		if s.S, err = parseField(line, "S", ss); err != nil {
			return nil, err
		}
		if !finite(s.S) {
			return nil, fmt.Errorf("%w: line %d: S=%q is not finite", ErrParse, line, ss)
		}
		samples = append(samples, s)
	}

	return FromSamples(samples)
}

func parseField(line int, name, text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %s=%q", ErrParse, line, name, text)
	}
	return v, nil
}
