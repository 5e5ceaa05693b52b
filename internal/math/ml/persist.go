package ml

import (
	"encoding/json"
	"fmt"
	"os"
)

// snapshot is the on-disk representation of a trained model.
type snapshot struct {
	Kind       string      `json:"kind"`
	Dimensions int         `json:"dimensions"`
	Hidden     int         `json:"hidden,omitempty"`
	Weights    []float64   `json:"weights,omitempty"`
	W1         [][]float64 `json:"w1,omitempty"`
	Wy         []float64   `json:"wy,omitempty"`
}

func (m *Linear) Save(path string) error {
	return write(path, snapshot{
		Kind:       "linreg",
		Dimensions: len(m.weights),
		Weights:    m.weights,
	})
}

func (m *NeuralNet) Save(path string) error {
	return write(path, snapshot{
		Kind:       "nn",
		Dimensions: m.dimensions,
		Hidden:     m.hidden,
		W1:         m.w1,
		Wy:         m.wy,
	})
}

func write(path string, s snapshot) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal model: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("could not save model to %s: %w", path, err)
	}
	return nil
}

// Load restores a model persisted with Save.
func Load(path string, rate Rate) (Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not load model from %s: %w", path, err)
	}
	var s snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("could not unmarshal model from %s: %w", path, err)
	}
	switch s.Kind {
	case "linreg":
		if len(s.Weights) != s.Dimensions {
			return nil, fmt.Errorf("model in %s is corrupt: %d weights for %d dimensions",
				path, len(s.Weights), s.Dimensions)
		}
		m := NewLinear(s.Dimensions, rate)
		copy(m.weights, s.Weights)
		return m, nil
	case "nn":
		if s.Hidden < 1 || len(s.W1) != s.Dimensions || len(s.Wy) != s.Hidden {
			return nil, fmt.Errorf("model in %s is corrupt: %dx%d weights for %d inputs and %d neurons",
				path, len(s.W1), len(s.Wy), s.Dimensions, s.Hidden)
		}
		for i, row := range s.W1 {
			if len(row) != s.Hidden {
				return nil, fmt.Errorf("model in %s is corrupt: input %d has %d weights for %d neurons",
					path, i, len(row), s.Hidden)
			}
		}
		m := NewNeuralNet(s.Dimensions, s.Hidden, rate)
		for i := range m.w1 {
			copy(m.w1[i], s.W1[i])
		}
		copy(m.wy, s.Wy)
		return m, nil
	}
	return nil, fmt.Errorf("model kind %q in %s is not supported", s.Kind, path)
}
