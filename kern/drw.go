package kern

import (
	"fmt"
	"github.com/ritabanc/qso-var/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"math"
)

const (
	ParamLogVariance    = "loga2"
	ParamLogLengthScale = "logl"
)

var (
	drw *DRW
	_   CovarianceFunction = drw // Check that DRW respects the CovarianceFunction interface.
)

// DRW is the damped-random-walk (Ornstein-Uhlenbeck) covariance function with
// one length scale per input dimension:
//
//	k(x, x') = a^2 exp(-sum_d |x_d - x'_d| / l_d)
type DRW struct {
	base   Base
	params Params

	logVariance float64
	logLScale   *mat.VecDense
	dim         int

	// Shortcuts.
	variance float64
	lscale   []float64
}

type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used during construction.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func NewDRW(cfg Config, opts ...Option) (*DRW, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.Named("drw")

	logVariance := 0.0
	switch {
	case cfg.LogVariance != nil:
		logVariance = *cfg.LogVariance
		if cfg.Variance != nil || cfg.Amplitude != nil {
			log.Debug("natural-scale variance ignored, loga2 takes precedence")
		}
	case cfg.Variance != nil:
		logVariance = math.Log(*cfg.Variance)
		if cfg.Amplitude != nil {
			log.Debug("amplitude ignored, variance takes precedence")
		}
	case cfg.Amplitude != nil:
		logVariance = 2 * math.Log(*cfg.Amplitude)
	}

	dim, fixed := 0, false
	if cfg.Dimension != nil {
		if *cfg.Dimension < 1 {
			return nil, fmt.Errorf("%w: dimension must be positive, got %d",
				ErrInvalidHyperparameter, *cfg.Dimension)
		}
		dim, fixed = *cfg.Dimension, true
	}

	var (
		logl     []float64
		inferred int
		err      error
	)
	switch {
	case cfg.LogLengthScale != nil:
		logl, inferred, err = cfg.LogLengthScale.resolve(dim, fixed)
		if err != nil {
			return nil, err
		}
		if cfg.LengthScale != nil {
			log.Debug("natural-scale length scale ignored, logl takes precedence")
		}
	case cfg.LengthScale != nil:
		var l []float64
		l, inferred, err = cfg.LengthScale.resolve(dim, fixed)
		if err != nil {
			return nil, err
		}
		for d, v := range l {
			if !(v > 0) {
				return nil, fmt.Errorf("%w: length scale %d must be positive, got %v",
					ErrInvalidHyperparameter, d, v)
			}
		}
		logl = utils.Log(l)
	default:
		logl, inferred = []float64{0.0}, 1
	}
	if inferred > 0 {
		if fixed && inferred != dim {
			log.Debug("length-scale input overrides dimension",
				zap.Int("dim", dim), zap.Int("lengthScales", inferred))
		}
		dim = inferred
	}
	if dim == 0 {
		dim = len(logl)
	}

	k := &DRW{
		logVariance: logVariance,
		logLScale:   mat.NewVecDense(len(logl), logl),
		dim:         dim,
		variance:    math.Exp(logVariance),
		lscale:      utils.Exp(logl),
	}
	k.params.set(ParamLogVariance, mat.NewVecDense(1, []float64{logVariance}))
	k.params.set(ParamLogLengthScale, k.logLScale)
	k.base = NewBase(k.params)
	log.Debug("kernel ready",
		zap.Int("dim", k.dim),
		zap.Float64("variance", k.variance),
		zap.Float64s("lengthScale", k.lscale))
	return k, nil
}

// Evaluate returns the covariance between x and xp. Both points must have
// the kernel's dimension.
func (k *DRW) Evaluate(x, xp []float64) (float64, error) {
	if len(x) != k.dim || len(xp) != k.dim {
		return 0, fmt.Errorf("%w: kernel has dimension %d, points have %d and %d",
			ErrDimensionMismatch, k.dim, len(x), len(xp))
	}
	return k.variance * math.Exp(-utils.ScaledL1(x, xp, k.lscale)), nil
}

func (k *DRW) ListParams() []string {
	return k.base.ListParams()
}

func (k *DRW) IsDomainFinite() map[string]Finiteness {
	out := k.base.IsDomainFinite()
	out[ParamLogLengthScale] = Finiteness{Lower: true, Upper: false}
	return out
}

func (k *DRW) ParamsDomain() map[string]Domain {
	out := k.base.ParamsDomain()
	out[ParamLogLengthScale] = Domain{Lower: -10.0, Upper: 0.0}
	return out
}

func (k *DRW) CreateMethod() map[string]SamplingMethod {
	return k.base.CreateMethod()
}

func (k *DRW) Dim() int {
	return k.dim
}

func (k *DRW) LogVariance() float64 {
	return k.logVariance
}

func (k *DRW) Variance() float64 {
	return k.variance
}

func (k *DRW) LogLengthScale() []float64 {
	return mat.Col(nil, 0, k.logLScale)
}

func (k *DRW) LengthScale() []float64 {
	out := make([]float64, len(k.lscale))
	copy(out, k.lscale)
	return out
}

// Params returns the parameter directory. Its vectors are the kernel's own
// and must not be modified.
func (k *DRW) Params() Params {
	return k.params
}
