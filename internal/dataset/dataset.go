package dataset

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/hanling14/graphchi-ltr/internal/model"
)

// Dataset is an in-memory query grouped feature collection.
type Dataset struct {
	Groups     []model.QueryGroup
	Dimensions int
}

// Reader parses a dataset file into query groups.
type Reader interface {
	Name() string
	Read(path string) (*Dataset, error)
}

// Options tune the csv reader column layout.
type Options struct {
	QidColumn int
	DocColumn int
	// RelColumn selects the relevance column; -1 selects the last column.
	RelColumn int
}

// DefaultOptions mirrors the historical csv layout: qid first, doc second,
// relevance in the last column.
func DefaultOptions() Options {
	return Options{QidColumn: 0, DocColumn: 1, RelColumn: -1}
}

// Builder constructs a reader with the given options.
type Builder func(opts Options) Reader

var readers = map[string]Builder{
	"csv": func(opts Options) Reader {
		return NewCsvReader(opts)
	},
	"letor": func(_ Options) Reader {
		return NewLetorReader()
	},
	"yahoo": func(_ Options) Reader {
		return NewYahooReader()
	},
}

// New creates the reader registered under name.
func New(name string, opts Options) (Reader, error) {
	if build, ok := readers[name]; ok {
		return build(opts), nil
	}
	return nil, fmt.Errorf("reader %q is not implemented; select one of csv, letor, yahoo", name)
}

// Prune drops query groups whose documents do not share the dataset
// dimensions, so that one malformed query cannot corrupt the gradients of
// the others. It returns the number of dropped groups.
func (d *Dataset) Prune() int {
	kept := d.Groups[:0]
	dropped := 0
	for _, g := range d.Groups {
		if err := g.CheckDimensions(d.Dimensions); err != nil {
			log.Error().Err(err).Str("qid", g.QID).Msg("dropping query with inconsistent features")
			dropped++
			continue
		}
		kept = append(kept, g)
	}
	d.Groups = kept
	return dropped
}

// PadTo extends every vector to dim, for evaluation sets that happen to miss
// trailing features of the training set. A larger dimension cannot be mapped
// onto the trained model and is an error.
func (d *Dataset) PadTo(dim int) error {
	if d.Dimensions > dim {
		return fmt.Errorf("dataset has %d features, the model was trained with %d", d.Dimensions, dim)
	}
	d.Dimensions = dim
	pad(d)
	return nil
}

// groups assembles records into query groups preserving first-seen query order.
type grouper struct {
	order  []string
	groups map[string]*model.QueryGroup
}

func newGrouper() *grouper {
	return &grouper{groups: make(map[string]*model.QueryGroup)}
}

func (g *grouper) add(qid string, doc model.Document) {
	group, ok := g.groups[qid]
	if !ok {
		group = &model.QueryGroup{QID: qid}
		g.groups[qid] = group
		g.order = append(g.order, qid)
	}
	group.Docs = append(group.Docs, doc)
}

func (g *grouper) collect() []model.QueryGroup {
	out := make([]model.QueryGroup, 0, len(g.order))
	for _, qid := range g.order {
		out = append(out, *g.groups[qid])
	}
	return out
}
