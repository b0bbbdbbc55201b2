package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"csmerge/internal/config"
	"csmerge/internal/observ"
)

// Job is one merge of a batch.
type Job struct {
	Name   string
	Config config.Config
}

// JobResult is the outcome of one Job; exactly one of Result and Err is set.
type JobResult struct {
	Job    Job
	Result *Result
	Err    error
	Timer  *observ.Timer
}

// MergeAll runs independent merges with at most jobs in flight
// (GOMAXPROCS when jobs <= 0). A failed job does not stop the others; the
// returned error joins all failures. Results keep the order of batch.
func MergeAll(ctx context.Context, batch []Job, jobs int, opts Options) ([]JobResult, error) {
	if err := checkOutputs(batch); err != nil {
		return nil, err
	}
	results := make([]JobResult, len(batch))
	if len(batch) == 0 {
		return results, nil
	}

	// Настраиваем параллелизм
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(batch)))

	for i, job := range batch {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				results[i] = JobResult{Job: job, Err: gctx.Err()}
				return nil
			default:
			}
			// Timer не потокобезопасен: у каждой задачи свой.
			local := opts
			local.Timer = observ.NewTimer()
			res, err := Merge(gctx, job.Config, local)
			if err != nil {
				err = fmt.Errorf("%s: %w", job.Name, err)
			}
			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = JobResult{Job: job, Result: res, Err: err, Timer: local.Timer}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return results, errors.Join(errs...)
}

// checkOutputs rejects batches where two jobs would write the same file.
func checkOutputs(batch []Job) error {
	seen := make(map[string]string, len(batch))
	for _, job := range batch {
		key := strings.ToLower(filepath.Clean(job.Config.OutputPath))
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s and %s write the same output %s",
				config.ErrUsage, prev, job.Name, job.Config.OutputPath)
		}
		seen[key] = job.Name
	}
	return nil
}
