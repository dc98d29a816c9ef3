package printclient

import "context"

// Job is one unit of work in a batch send: a label's rendered bytes plus a
// caller-supplied name for progress reporting.
type Job struct {
	Name string
	Data []byte
}

// JobResult reports the outcome of one Job within a batch.
type JobResult struct {
	Job   Job
	Err   error
	Index int
}

// ProgressFunc is called after each job completes (success or failure).
// done is the count completed so far, including this one; total is the
// batch size.
type ProgressFunc func(done, total int, result JobResult)

// SendBatch sends every job to client in order, retrying transient failures
// under policy, and reports progress via onProgress after each job. If ctx is
// cancelled mid-batch, every job not yet sent is reported with an
// ErrCancelled result instead of being sent.
func SendBatch(ctx context.Context, client *Client, jobs []Job, policy RetryPolicy, onProgress ProgressFunc) []JobResult {
	results := make([]JobResult, 0, len(jobs))
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			result := JobResult{Job: job, Index: i, Err: wrap(ErrCancelled, "send_batch", err)}
			results = append(results, result)
			if onProgress != nil {
				onProgress(len(results), len(jobs), result)
			}
			continue
		}

		err := SendWithRetry(ctx, client, job.Data, policy)
		result := JobResult{Job: job, Index: i, Err: err}
		results = append(results, result)
		if onProgress != nil {
			onProgress(len(results), len(jobs), result)
		}
	}
	return results
}
