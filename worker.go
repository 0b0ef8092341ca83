package qsim

import (
	"fmt"
	"time"

	"github.com/theapemachine/errnie"
)

// Worker executes jobs on behalf of a Pool.
type Worker struct {
	pool *Pool
	id   int
}

func (w *Worker) processJob(job Job) error {
	job.StartTime = time.Now()

	err := job.Fn(job.Lo, job.Hi)

	w.pool.metrics.recordJobExecution(job.StartTime, err == nil)

	if err != nil {
		return fmt.Errorf("worker %d job %d [%d, %d): %w", w.id, job.ID, job.Lo, job.Hi, err)
	}

	errnie.Debug(
		"Worker %d finished job %d [%d, %d) in %v",
		w.id, job.ID, job.Lo, job.Hi, time.Since(job.StartTime),
	)

	return nil
}
