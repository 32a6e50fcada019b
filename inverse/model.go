// Package inverse ties the prior, the forward solver and the synthetic
// observations together into a likelihood for candidate log-fields.
package inverse

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/lucasmaystre/goinverse/config"
	"github.com/lucasmaystre/goinverse/grid"
	"github.com/lucasmaystre/goinverse/kern"
	"github.com/lucasmaystre/goinverse/metrics"
	"github.com/lucasmaystre/goinverse/obs"
	"github.com/lucasmaystre/goinverse/prior"
	"github.com/lucasmaystre/goinverse/solver"
	"github.com/lucasmaystre/goinverse/utils"
)

// ErrDimensionMismatch is returned when a candidate field does not have
// one value per grid point.
var ErrDimensionMismatch = solver.ErrDimensionMismatch

// Evaluator is what samplers and optimizers need from a model.
type Evaluator interface {
	Likelihood(theta []float64) (float64, error)
	LogLikelihood(theta []float64) (float64, error)
}

var _ Evaluator = (*Model)(nil)

type settings struct {
	lscale        float64
	bc            solver.Boundary
	referenceSeed uint64
	noiseSeed     *uint64
	src           rand.Source
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

type Option func(*settings)

func WithLengthScale(l float64) Option {
	return func(s *settings) {
		s.lscale = l
	}
}

func WithBoundary(bc solver.Boundary) Option {
	return func(s *settings) {
		s.bc = bc
	}
}

func WithReferenceSeed(seed uint64) Option {
	return func(s *settings) {
		s.referenceSeed = seed
	}
}

// WithNoiseSeed makes the observation noise reproducible.
func WithNoiseSeed(seed uint64) Option {
	return func(s *settings) {
		s.noiseSeed = &seed
	}
}

// WithSource sets the ambient random source, used for the observation
// noise (unless WithNoiseSeed is given) and for SamplePrior.
func WithSource(src rand.Source) Option {
	return func(s *settings) {
		s.src = src
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// Model holds the grid, the reference field drawn from the prior, its
// forward solution and the noisy observations of that solution. All of it
// is fixed at construction; evaluations only read it.
type Model struct {
	grid     *grid.Grid
	bc       solver.Boundary
	noiseStd float64

	theta    []float64 // Reference log-field.
	field    []float64 // exp(theta).
	solution []float64
	obs      []float64

	mu      sync.Mutex // Guards sampler.
	sampler *prior.Sampler

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New builds the model: the reference log-field is drawn deterministically
// from the GP prior with smoothness nu on n grid points, solved, and
// observed with Gaussian noise of standard deviation noiseStd.
func New(n int, nu, noiseStd float64, opts ...Option) (*Model, error) {
	s := settings{
		lscale:        kern.DefaultLengthScale,
		bc:            solver.DefaultBoundary,
		referenceSeed: prior.ReferenceSeed,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.src == nil {
		s.src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	noiseSrc := s.src
	if s.noiseSeed != nil {
		noiseSrc = rand.NewPCG(*s.noiseSeed, *s.noiseSeed)
	}

	g, err := grid.New(n, nu, grid.WithLengthScale(s.lscale))
	if err != nil {
		return nil, err
	}
	gen, err := obs.NewGenerator(n, noiseStd, noiseSrc, obs.WithBoundary(s.bc))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", grid.ErrConfiguration, err)
	}
	sampler := prior.NewSampler(g, s.src,
		prior.WithReferenceSeed(s.referenceSeed),
		prior.WithLogger(s.logger))

	theta, err := sampler.Sample(true)
	if err != nil {
		return nil, fmt.Errorf("inverse: reference field: %w", err)
	}
	field := utils.Exp(theta)
	solution, err := solver.Solve(n, field, s.bc)
	if err != nil {
		return nil, fmt.Errorf("inverse: reference solution: %w", err)
	}
	observations, err := gen.Generate(field)
	if err != nil {
		return nil, fmt.Errorf("inverse: observations: %w", err)
	}

	s.logger.Info("inverse: model constructed",
		"n", n,
		"nu", nu,
		"noise_std", noiseStd,
		"length_scale", s.lscale,
		"kernel", fmt.Sprintf("%T", g.Kernel()),
		"reference_seed", s.referenceSeed)

	return &Model{
		grid:     g,
		bc:       s.bc,
		noiseStd: noiseStd,
		theta:    theta,
		field:    field,
		solution: solution,
		obs:      observations,
		sampler:  sampler,
		logger:   s.logger,
		metrics:  s.metrics,
	}, nil
}

// NewFromConfig validates cfg and builds the model it describes. Options
// are applied after the ones derived from cfg.
func NewFromConfig(cfg config.Config, opts ...Option) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := []Option{
		WithLengthScale(cfg.LengthScale),
		WithBoundary(cfg.Boundary),
		WithReferenceSeed(cfg.ReferenceSeed),
	}
	if cfg.NoiseSeed != nil {
		base = append(base, WithNoiseSeed(*cfg.NoiseSeed))
	}
	return New(cfg.N, float64(cfg.Nu), cfg.NoiseStd, append(base, opts...)...)
}

// SumSquaredResidual solves the forward problem for exp(theta) and returns
// the squared distance of the solution to the observations.
func (m *Model) SumSquaredResidual(theta []float64) (float64, error) {
	n := m.grid.N()
	if len(theta) != n {
		return 0, fmt.Errorf("%w: theta has length %d, want %d", ErrDimensionMismatch, len(theta), n)
	}
	u, err := solver.Solve(n, utils.Exp(theta), m.bc)
	if err != nil {
		return 0, err
	}
	return utils.SquaredDistance(m.obs, u), nil
}

// LogLikelihood returns -sum_i (obs_i - u_i)^2 / (2 noiseStd^2), where u is
// the forward solution for exp(theta).
func (m *Model) LogLikelihood(theta []float64) (float64, error) {
	start := time.Now()
	ll, err := m.logLikelihood(theta)
	m.observe(start, err)
	return ll, err
}

// Likelihood returns exp(LogLikelihood(theta)) / (2 pi noiseStd). The
// prefactor is not the normalising constant of an n-dimensional Gaussian;
// it is kept as is because callers depend on this exact scale.
func (m *Model) Likelihood(theta []float64) (float64, error) {
	start := time.Now()
	ll, err := m.logLikelihood(theta)
	m.observe(start, err)
	if err != nil {
		return 0, err
	}
	return math.Exp(ll) / (2 * math.Pi * m.noiseStd), nil
}

func (m *Model) logLikelihood(theta []float64) (float64, error) {
	ssr, err := m.SumSquaredResidual(theta)
	if err != nil {
		return 0, err
	}
	return -ssr / (2 * m.noiseStd * m.noiseStd), nil
}

func (m *Model) observe(start time.Time, err error) {
	if err != nil {
		m.logger.Debug("inverse: evaluation rejected", "error", err)
	}
	m.metrics.ObserveEvaluation(start, err, errors.Is(err, solver.ErrSingularSystem))
}

// SamplePrior draws a fresh log-field from the prior using the ambient
// random source.
func (m *Model) SamplePrior() ([]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sampler.Sample(false)
}

// Solve runs the forward solver on the model's grid and boundary values.
func (m *Model) Solve(f []float64) ([]float64, error) {
	return solver.Solve(m.grid.N(), f, m.bc)
}

func (m *Model) N() int {
	return m.grid.N()
}

func (m *Model) NoiseStd() float64 {
	return m.noiseStd
}

func (m *Model) Grid() *grid.Grid {
	return m.grid
}

func (m *Model) GridPoints() []float64 {
	return m.grid.Points()
}

// ReferenceTheta returns a copy of the reference log-field.
func (m *Model) ReferenceTheta() []float64 {
	return clone(m.theta)
}

// ReferenceField returns a copy of the reference coefficient field, the
// exponential of ReferenceTheta.
func (m *Model) ReferenceField() []float64 {
	return clone(m.field)
}

func (m *Model) ReferenceSolution() []float64 {
	return clone(m.solution)
}

func (m *Model) Observations() []float64 {
	return clone(m.obs)
}

func clone(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	return out
}
