package kern

import (
	"errors"
	"gonum.org/v1/gonum/mat"
	"sort"
)

var (
	ErrInvalidHyperparameter = errors.New("invalid hyperparameter")
	ErrDimensionMismatch     = errors.New("dimension mismatch")
	ErrNoPoints              = errors.New("no points")
)

// CovarianceFunction is what a Gaussian process host needs from a kernel.
// The metadata methods are consumed by slice samplers and optimizers.
type CovarianceFunction interface {
	// Covariance between two points.
	Evaluate(x, xp []float64) (float64, error)

	// Names of the hyperparameters.
	ListParams() []string

	// Whether the lower and upper bounds of each hyperparameter are finite.
	IsDomainFinite() map[string]Finiteness

	// Bounds of each hyperparameter, meaningful only where finite.
	ParamsDomain() map[string]Domain

	// Slice-sampling method for each hyperparameter.
	CreateMethod() map[string]SamplingMethod
}

type Finiteness struct {
	Lower bool `yaml:"lower"`
	Upper bool `yaml:"upper"`
}

type Domain struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

type SamplingMethod string

const (
	StepOut  SamplingMethod = "step_out"
	Doubling SamplingMethod = "double"
	Whole    SamplingMethod = "whole"
)

// Params maps hyperparameter names to their current values. Values are held
// by reference; kernels read the same vectors. The directory is read-only
// outside this package.
type Params struct {
	values map[string]mat.Vector
}

func (p *Params) set(name string, value mat.Vector) {
	if p.values == nil {
		p.values = make(map[string]mat.Vector)
	}
	p.values[name] = value
}

func (p Params) Get(name string) (mat.Vector, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Names returns the parameter names in sorted order.
func (p Params) Names() []string {
	names := make([]string, 0, len(p.values))
	for name := range p.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Base provides the default metadata for any parameter directory: infinite
// domains, zero bounds and step-out sampling. Kernels start from these and
// override what they know better.
type Base struct {
	params Params
}

func NewBase(params Params) Base {
	return Base{params: params}
}

func (b Base) ListParams() []string {
	return b.params.Names()
}

func (b Base) IsDomainFinite() map[string]Finiteness {
	out := make(map[string]Finiteness, len(b.params.values))
	for name := range b.params.values {
		out[name] = Finiteness{Lower: false, Upper: false}
	}
	return out
}

func (b Base) ParamsDomain() map[string]Domain {
	out := make(map[string]Domain, len(b.params.values))
	for name := range b.params.values {
		out[name] = Domain{Lower: 0.0, Upper: 0.0}
	}
	return out
}

func (b Base) CreateMethod() map[string]SamplingMethod {
	out := make(map[string]SamplingMethod, len(b.params.values))
	for name := range b.params.values {
		out[name] = StepOut
	}
	return out
}
