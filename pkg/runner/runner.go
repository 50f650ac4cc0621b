package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// ProcessFunc handles a single file.
type ProcessFunc[T any] func(ctx context.Context, path string) (T, error)

// Runner processes files concurrently.
type Runner[T any] struct {
	// Process is called once per file, from several goroutines at once.
	Process ProcessFunc[T]

	// Jobs caps the number of workers. 0 or negative means GOMAXPROCS.
	Jobs int

	// StopOnError cancels outstanding work after the first failure. Run
	// then returns that failure together with the partial result.
	StopOnError bool
}

// New returns a runner that calls process for each file.
func New[T any](process func(ctx context.Context, path string) (T, error)) *Runner[T] {
	return &Runner[T]{Process: process}
}

type job struct {
	index int
	path  string
}

type slot[T any] struct {
	done    bool
	outcome Outcome[T]
}

// Run processes files on a worker pool. Outcomes are reported in the order
// of files regardless of completion order.
func (r *Runner[T]) Run(ctx context.Context, files []string) (*Result[T], error) {
	result := &Result[T]{
		Outcomes: make([]Outcome[T], 0, len(files)),
		Stats:    Stats{FilesDiscovered: len(files)},
	}
	if len(files) == 0 {
		return result, nil
	}

	jobs := r.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(files))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	workCh := make(chan job)
	slots := make([]slot[T], len(files))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		firstIdx = len(files)
	)

	for range jobs {
		wg.Go(func() {
			for j := range workCh {
				if runCtx.Err() != nil {
					continue
				}

				value, err := r.Process(runCtx, j.path)
				slots[j.index] = slot[T]{done: true, outcome: Outcome[T]{Path: j.path, Value: value, Err: err}}

				if err != nil && r.StopOnError {
					mu.Lock()
					if j.index < firstIdx {
						firstIdx, firstErr = j.index, err
					}
					mu.Unlock()
					cancel()
				}
			}
		})
	}

	go func() {
		defer close(workCh)
		for i, path := range files {
			select {
			case <-runCtx.Done():
				return
			case workCh <- job{index: i, path: path}:
			}
		}
	}()

	wg.Wait()

	for _, s := range slots {
		if !s.done {
			result.Stats.FilesSkipped++
			continue
		}
		result.accumulate(s.outcome)
	}

	if firstErr != nil {
		return result, fmt.Errorf("%s: %w", files[firstIdx], firstErr)
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}
