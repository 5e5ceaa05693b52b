package ml

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultRate is the step size used when no learning rate policy is configured.
const DefaultRate = 0.001

// Rate produces the step size for a given iteration.
type Rate interface {
	At(iteration int) float64
}

// Constant is an iteration independent learning rate.
type Constant struct {
	Eta float64
}

func (c Constant) At(_ int) float64 {
	return c.Eta
}

// Decay shrinks the learning rate as eta0 / (1 + t/tau).
type Decay struct {
	Eta0 float64
	Tau  float64
}

func (d Decay) At(t int) float64 {
	return d.Eta0 / (1 + float64(t)/d.Tau)
}

// ParseRate creates a learning rate policy from its spec string.
// Recognized forms: "" (constant default), "const:<eta>", "decay:<eta0>,<tau>".
func ParseRate(spec string) (Rate, error) {
	if spec == "" {
		return Constant{Eta: DefaultRate}, nil
	}
	name, args := spec, ""
	if idx := strings.Index(spec, ":"); idx >= 0 {
		name, args = spec[:idx], spec[idx+1:]
	}
	switch name {
	case "const":
		eta, err := strconv.ParseFloat(args, 64)
		if err != nil || eta <= 0 {
			return nil, fmt.Errorf("learning rate %q: const needs a positive step, e.g. const:0.001", spec)
		}
		return Constant{Eta: eta}, nil
	case "decay":
		parts := strings.Split(args, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("learning rate %q: decay needs two arguments, e.g. decay:0.01,10", spec)
		}
		eta0, err0 := strconv.ParseFloat(parts[0], 64)
		tau, err1 := strconv.ParseFloat(parts[1], 64)
		if err0 != nil || err1 != nil || eta0 <= 0 || tau <= 0 {
			return nil, fmt.Errorf("learning rate %q: decay needs positive eta0 and tau", spec)
		}
		return Decay{Eta0: eta0, Tau: tau}, nil
	}
	return nil, fmt.Errorf("learning rate %q is not implemented; select one of const, decay", spec)
}
