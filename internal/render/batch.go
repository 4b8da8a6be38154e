package render

import (
	"context"
	"strings"

	"github.com/FocuswithJustin/Compendium/core/entry"
)

// Job is one document of a batch. Load runs on a worker, so decoding happens
// in parallel with other documents.
type Job struct {
	Name string
	Load func() ([]entry.Entry, error)
}

// BatchResult is the rendering of one Job. Output joins the document's
// entries with blank lines.
type BatchResult struct {
	Name   string
	Output string
	Err    error
}

type indexed struct {
	i   int
	res BatchResult
}

// RenderAll renders every job in format using up to workers goroutines.
// Results are in job order. A failing job does not stop the others; it
// reports its error in its own result.
func (s *Service) RenderAll(ctx context.Context, format string, jobs []Job, workers int) []BatchResult {
	out := make([]BatchResult, len(jobs))
	if len(jobs) == 0 {
		return out
	}
	pool := newWorkerPool[int, indexed](workers, len(jobs))
	pool.start(func(i int) indexed {
		return indexed{i: i, res: s.renderJob(ctx, format, jobs[i])}
	})
	for i := range jobs {
		pool.submit(i)
	}
	pool.close()
	for r := range pool.results {
		out[r.i] = r.res
	}
	return out
}

func (s *Service) renderJob(ctx context.Context, format string, job Job) BatchResult {
	res := BatchResult{Name: job.Name}
	entries, err := job.Load()
	if err != nil {
		res.Err = err
		return res
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		r, err := s.Entry(ctx, format, e)
		if err != nil {
			res.Err = err
			return res
		}
		parts = append(parts, r.Output)
	}
	res.Output = strings.Join(parts, "\n\n")
	return res
}
