package qsim

import (
	"fmt"
	"time"

	"github.com/theapemachine/errnie"
)

/*
Engine is the entry point for the circuit layer. It applies gates to
statevectors and density matrices using the defaults in its Config, and it
records what it did in Metrics. An Engine holds no state between calls other
than its configuration and counters, so one Engine can serve any number of
goroutines.
*/
type Engine struct {
	config   *Config
	metrics  *Metrics
	governor *ResourceGovernor
}

/*
NewEngine uses NewConfig when config is nil. Any other config must pass
Validate; it is never corrected on the caller's behalf.
*/
func NewEngine(config *Config) (*Engine, error) {
	if config == nil {
		config = NewConfig()
	}

	if err := config.Validate(); err != nil {
		errnie.Warn("NewEngine - rejected config: %v", err)
		return nil, err
	}

	errnie.Info(
		"NewEngine - maxConcurrency %d, tolerance %g, strategy %s",
		config.MaxConcurrency,
		config.Tolerance,
		config.Strategy,
	)

	return &Engine{
		config:   config,
		metrics:  NewMetrics(),
		governor: NewResourceGovernor(config.MaxMatrixBytes),
	}, nil
}

func (e *Engine) Config() *Config {
	return e.config
}

func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

func (e *Engine) Governor() *ResourceGovernor {
	return e.governor
}

// Extract flattens gate for an n-qubit register with the configured tolerance.
func (e *Engine) Extract(gate Gate, n int) (*Descriptor, []int, error) {
	desc, qubits, err := Extract(gate, n, e.config.Tolerance)
	if err != nil {
		e.metrics.recordRejected()
		return nil, nil, err
	}

	return desc, qubits, nil
}

/*
Transform applies desc on qubits to sv with the given strategy and returns a
new statevector. sv is left untouched whether or not the call succeeds.
*/
func (e *Engine) Transform(
	desc *Descriptor, qubits []int, sv Statevector, kind StrategyKind, maxConcurrency int,
) (Statevector, error) {
	pool, err := e.pool(maxConcurrency)
	if err != nil {
		return nil, err
	}

	n, err := sv.NumQubits()
	if err != nil {
		e.metrics.recordRejected()
		return nil, err
	}

	op, err := NewOperation(desc, qubits, n)
	if err != nil {
		e.metrics.recordRejected()
		return nil, err
	}

	resolved := Resolve(kind, desc)

	strategy, err := StrategyFor(resolved)
	if err != nil {
		e.metrics.recordRejected()
		return nil, err
	}

	start := time.Now()

	out, err := strategy.Apply(op, sv, pool)
	if err != nil {
		e.metrics.recordRejected()
		return nil, err
	}

	e.metrics.recordTransform(resolved.String())

	errnie.Debug(
		"Transform - %s on %v with %s over %d amplitudes in %v",
		desc, qubits, resolved, len(sv), time.Since(start),
	)

	return out, nil
}

// TransformDensity returns UρU† for desc on qubits. rho is left untouched.
func (e *Engine) TransformDensity(
	desc *Descriptor, qubits []int, rho DensityMatrix, maxConcurrency int,
) (DensityMatrix, error) {
	pool, err := e.pool(maxConcurrency)
	if err != nil {
		return nil, err
	}

	n, err := rho.NumQubits()
	if err != nil {
		e.metrics.recordRejected()
		return nil, err
	}

	op, err := NewOperation(desc, qubits, n)
	if err != nil {
		e.metrics.recordRejected()
		return nil, err
	}

	start := time.Now()

	out, err := TransformDensity(op, rho, pool)
	if err != nil {
		e.metrics.recordRejected()
		return nil, err
	}

	e.metrics.recordTransform("density")

	errnie.Debug(
		"TransformDensity - %s on %v over %dx%d in %v",
		desc, qubits, len(rho), len(rho), time.Since(start),
	)

	return out, nil
}

// Expand returns an expanded view of desc on qubits governed by the engine budget.
func (e *Engine) Expand(desc *Descriptor, qubits []int, n int) (*ExpandedMatrix, error) {
	op, err := NewOperation(desc, qubits, n)
	if err != nil {
		e.metrics.recordRejected()
		return nil, err
	}

	return newExpandedMatrix(op, e.governor, e.metrics), nil
}

// Apply extracts gate and transforms sv with the configured strategy and concurrency.
func (e *Engine) Apply(gate Gate, sv Statevector) (Statevector, error) {
	n, err := sv.NumQubits()
	if err != nil {
		e.metrics.recordRejected()
		return nil, err
	}

	desc, qubits, err := e.Extract(gate, n)
	if err != nil {
		return nil, err
	}

	return e.Transform(desc, qubits, sv, e.config.Strategy, e.config.MaxConcurrency)
}

// ApplyDensity extracts gate and transforms rho with the configured concurrency.
func (e *Engine) ApplyDensity(gate Gate, rho DensityMatrix) (DensityMatrix, error) {
	n, err := rho.NumQubits()
	if err != nil {
		e.metrics.recordRejected()
		return nil, err
	}

	desc, qubits, err := e.Extract(gate, n)
	if err != nil {
		return nil, err
	}

	return e.TransformDensity(desc, qubits, rho, e.config.MaxConcurrency)
}

/*
Evolve applies gates to sv in the order given and returns the final state.
It stops at the first failing gate; the error names its position and sv is
never modified.
*/
func (e *Engine) Evolve(sv Statevector, gates ...Gate) (Statevector, error) {
	state := sv

	for i, gate := range gates {
		next, err := e.Apply(gate, state)
		if err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}

		state = next
	}

	if len(gates) == 0 {
		return sv.Clone(), nil
	}

	return state, nil
}

func (e *Engine) pool(maxConcurrency int) (*Pool, error) {
	pool, err := NewPool(maxConcurrency, e.metrics)
	if err != nil {
		e.metrics.recordRejected()
		errnie.Warn("Engine rejected request: %v", err)

		return nil, err
	}

	return pool.WithGovernor(e.governor), nil
}
