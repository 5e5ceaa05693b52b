package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hanling14/graphchi-ltr/internal/model"
)

// CsvReader parses comma separated records with configurable qid, doc and
// relevance columns; every remaining column is a feature, in file order.
type CsvReader struct {
	opts Options
}

// NewCsvReader creates a csv reader with the given column layout.
func NewCsvReader(opts Options) *CsvReader {
	return &CsvReader{opts: opts}
}

func (r *CsvReader) Name() string {
	return "csv"
}

func (r *CsvReader) Read(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	groups := newGrouper()
	dimensions := 0

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		cols := strings.Split(text, ",")
		rel := r.opts.RelColumn
		if rel < 0 {
			rel = len(cols) - 1
		}
		if r.opts.QidColumn >= len(cols) || r.opts.DocColumn >= len(cols) || rel >= len(cols) {
			return nil, fmt.Errorf("%s:%d: %d columns cannot satisfy qid=%d doc=%d rel=%d",
				path, line, len(cols), r.opts.QidColumn, r.opts.DocColumn, rel)
		}

		relevance, err := strconv.ParseFloat(strings.TrimSpace(cols[rel]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad relevance %q: %w", path, line, cols[rel], err)
		}

		features := make([]float64, 0, len(cols)-3)
		for i, col := range cols {
			if i == r.opts.QidColumn || i == r.opts.DocColumn || i == rel {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(col), 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad feature %q: %w", path, line, col, err)
			}
			features = append(features, v)
		}
		if dimensions == 0 {
			dimensions = len(features)
		}

		groups.add(strings.TrimSpace(cols[r.opts.QidColumn]), model.Document{
			ID:        strings.TrimSpace(cols[r.opts.DocColumn]),
			Features:  features,
			Relevance: relevance,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	return &Dataset{Groups: groups.collect(), Dimensions: dimensions}, nil
}
