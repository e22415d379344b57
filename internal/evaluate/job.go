package evaluate

import (
	"context"
	"sync"
	"time"
)

// cancelPollInterval is how often an outstanding rating call re-checks the
// job's cancel flag.
const cancelPollInterval = 200 * time.Millisecond

// Job is one background evaluation run. The cancel flag is checked before
// each definition and polled while a rating request is outstanding; Cancel
// also aborts the in-flight HTTP request through the context.
type Job struct {
	mu        sync.Mutex
	cancelled bool

	cancel  context.CancelFunc
	done    chan struct{}
	results []Result
	err     error
}

// Start launches an evaluation in the background and returns immediately.
func (e *Evaluator) Start(ctx context.Context, root, targetFile string) *Job {
	ctx, cancel := context.WithCancel(ctx)
	j := &Job{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(j.done)
		defer cancel()
		j.results, j.err = e.evaluate(ctx, root, targetFile, j.Cancelled)
	}()

	return j
}

// Cancel requests the job stop. Safe to call more than once.
func (j *Job) Cancel() {
	j.mu.Lock()
	j.cancelled = true
	j.mu.Unlock()
	j.cancel()
}

// Cancelled reports whether Cancel was called.
func (j *Job) Cancelled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cancelled
}

// Wait blocks until the job finishes and returns whatever completed before
// any cancellation took effect.
func (j *Job) Wait() ([]Result, error) {
	<-j.done
	return j.results, j.err
}

// Done exposes completion to select loops.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// complete issues one rating request while polling the cancel flag.
func (e *Evaluator) complete(ctx context.Context, prompt string, cancelled func() bool) (string, error) {
	type outcome struct {
		raw string
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		raw, err := e.Client.Complete(ctx, prompt)
		ch <- outcome{raw: raw, err: err}
	}()

	ticker := time.NewTicker(cancelPollInterval)
	defer ticker.Stop()
	for {
		select {
		case o := <-ch:
			return o.raw, o.err
		case <-ticker.C:
			if cancelled != nil && cancelled() {
				return "", context.Canceled
			}
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}
