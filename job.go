package qsim

import "time"

// Job is one contiguous chunk [Lo, Hi) of an output index space.
type Job struct {
	ID        int
	Lo        int
	Hi        int
	Fn        func(lo, hi int) error
	StartTime time.Time
}

// Size is the number of output indices the job covers.
func (j Job) Size() int {
	return j.Hi - j.Lo
}

/*
partition splits [0, size) into min(chunks, size) contiguous jobs whose sizes
differ by at most one. Earlier jobs take the larger share.
*/
func partition(size, chunks int, fn func(lo, hi int) error) []Job {
	if size <= 0 {
		return nil
	}

	chunks = min(chunks, size)
	jobs := make([]Job, chunks)
	base, extra := size/chunks, size%chunks
	lo := 0

	for i := range jobs {
		hi := lo + base
		if i < extra {
			hi++
		}

		jobs[i] = Job{ID: i, Lo: lo, Hi: hi, Fn: fn}
		lo = hi
	}

	return jobs
}
