package model

import (
	"fmt"
)

// Phase defines the stage of a training run.
// Weights are only mutated during Train.
type Phase int

const (
	Train Phase = iota
	Validation
	Testing
)

func (p Phase) String() string {
	switch p {
	case Train:
		return "train"
	case Validation:
		return "validation"
	case Testing:
		return "testing"
	}
	return fmt.Sprintf("phase-%d", int(p))
}

// Document is one query-document example with its feature vector and relevance label.
type Document struct {
	ID        string
	Features  []float64
	Relevance float64
}

// QueryGroup holds all documents belonging to one query.
// It is the scope within which pairwise comparisons are formed.
type QueryGroup struct {
	QID  string
	Docs []Document
}

// CheckDimensions verifies that every document of the group carries the given feature size.
func (g QueryGroup) CheckDimensions(dim int) error {
	for _, doc := range g.Docs {
		if len(doc.Features) != dim {
			return fmt.Errorf("query %s: document %s has %d features, expected %d",
				g.QID, doc.ID, len(doc.Features), dim)
		}
	}
	return nil
}
