package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hanling14/graphchi-ltr/internal/model"
)

// LetorReader parses the LETOR format:
//
//	<rel> qid:<q> <fid>:<val> ... # docid = <id>
//
// Feature ids are 1-based and may be sparse; vectors are padded to the
// largest feature id seen in the file.
type LetorReader struct {
	withDocID bool
}

// NewLetorReader creates a LETOR reader.
func NewLetorReader() *LetorReader {
	return &LetorReader{withDocID: true}
}

// NewYahooReader creates a reader for the Yahoo LTR challenge format,
// which is LETOR without the docid comment; documents get sequential ids.
func NewYahooReader() *LetorReader {
	return &LetorReader{withDocID: false}
}

func (r *LetorReader) Name() string {
	if r.withDocID {
		return "letor"
	}
	return "yahoo"
}

func (r *LetorReader) Read(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	groups := newGrouper()
	dimensions := 0
	seq := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		comment := ""
		if idx := strings.Index(text, "#"); idx >= 0 {
			comment = strings.TrimSpace(text[idx+1:])
			text = strings.TrimSpace(text[:idx])
		}

		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%s:%d: expected at least a relevance and a qid", path, line)
		}

		relevance, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad relevance %q: %w", path, line, fields[0], err)
		}
		qid, ok := strings.CutPrefix(fields[1], "qid:")
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected qid:<q>, got %q", path, line, fields[1])
		}

		features := make([]float64, 0, len(fields)-2)
		for _, field := range fields[2:] {
			fid, val, ok := strings.Cut(field, ":")
			if !ok {
				return nil, fmt.Errorf("%s:%d: expected <fid>:<val>, got %q", path, line, field)
			}
			id, err := strconv.Atoi(fid)
			if err != nil || id < 1 {
				return nil, fmt.Errorf("%s:%d: bad feature id %q", path, line, fid)
			}
			v, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad feature value %q: %w", path, line, val, err)
			}
			for len(features) < id {
				features = append(features, 0)
			}
			features[id-1] = v
		}
		if len(features) > dimensions {
			dimensions = len(features)
		}

		seq++
		docID := fmt.Sprintf("doc-%d", seq)
		if r.withDocID && comment != "" {
			docID = parseDocID(comment)
		}

		groups.add(qid, model.Document{
			ID:        docID,
			Features:  features,
			Relevance: relevance,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	ds := &Dataset{Groups: groups.collect(), Dimensions: dimensions}
	pad(ds)
	return ds, nil
}

// parseDocID understands the common "docid = GX000-..." comment, falling back
// to the first comment token.
func parseDocID(comment string) string {
	fields := strings.Fields(comment)
	for i := 0; i+2 < len(fields); i++ {
		if fields[i] == "docid" && fields[i+1] == "=" {
			return fields[i+2]
		}
	}
	return fields[0]
}

// pad extends every sparse vector to the dataset dimensions.
func pad(ds *Dataset) {
	for gi := range ds.Groups {
		for di := range ds.Groups[gi].Docs {
			doc := &ds.Groups[gi].Docs[di]
			for len(doc.Features) < ds.Dimensions {
				doc.Features = append(doc.Features, 0)
			}
		}
	}
}
