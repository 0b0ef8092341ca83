package qsim

import (
	"fmt"

	"github.com/theapemachine/errnie"
	"golang.org/x/sync/errgroup"
)

/*
Pool runs a computation over an output index space [0, size) by splitting it
into min(maxConcurrency, size) equal contiguous jobs, one goroutine each.

Jobs only read shared inputs and write their own disjoint slice of the
output, so no locking is needed. Results do not depend on the chunking or on
which worker finishes first.
*/
type Pool struct {
	maxConcurrency int
	metrics        *Metrics
	governor       *ResourceGovernor
}

/*
NewPool fails with ErrInvalidConcurrency before anything is scheduled. Dense
expansions through the pool are admitted against the default memory budget
until WithGovernor replaces it.
*/
func NewPool(maxConcurrency int, metrics *Metrics) (*Pool, error) {
	if maxConcurrency <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidConcurrency, maxConcurrency)
	}

	if metrics == nil {
		metrics = NewMetrics()
	}

	return &Pool{
		maxConcurrency: maxConcurrency,
		metrics:        metrics,
		governor:       NewResourceGovernor(defaultMaxMatrixBytes),
	}, nil
}

// WithGovernor makes dense expansions scheduled through p subject to governor.
func (p *Pool) WithGovernor(governor *ResourceGovernor) *Pool {
	if governor != nil {
		p.governor = governor
	}

	return p
}

func (p *Pool) MaxConcurrency() int {
	return p.maxConcurrency
}

func (p *Pool) Metrics() *Metrics {
	return p.metrics
}

/*
Run blocks until every job over [0, size) has finished and returns the first
job error, if any. A single chunk runs on the calling goroutine.
*/
func (p *Pool) Run(size int, fn func(lo, hi int) error) error {
	jobs := partition(size, p.maxConcurrency, fn)

	if len(jobs) == 0 {
		return nil
	}

	if len(jobs) == 1 {
		return (&Worker{pool: p}).processJob(jobs[0])
	}

	errnie.Debug("Pool scheduling %d jobs over %d indices", len(jobs), size)

	var g errgroup.Group

	for i, job := range jobs {
		worker := &Worker{pool: p, id: i}

		g.Go(func() error {
			return worker.processJob(job)
		})
	}

	return g.Wait()
}
