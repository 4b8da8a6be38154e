package render

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/FocuswithJustin/Compendium/core/entry"
)

func loadText(texts ...string) func() ([]entry.Entry, error) {
	return func() ([]entry.Entry, error) {
		es := make([]entry.Entry, len(texts))
		for i, t := range texts {
			es[i] = entry.String(t)
		}
		return es, nil
	}
}

func TestRenderAll(t *testing.T) {
	s := New(Options{})
	defer s.Close()

	boom := errors.New("boom")
	jobs := []Job{
		{Name: "a", Load: loadText("{@b one}", "two")},
		{Name: "b", Load: func() ([]entry.Entry, error) { return nil, boom }},
		{Name: "c", Load: loadText("{@b open")},
	}
	for i := 0; i < 20; i++ {
		jobs = append(jobs, Job{Name: fmt.Sprintf("n%d", i), Load: loadText(fmt.Sprintf("{@i %d}", i))})
	}

	got := s.RenderAll(context.Background(), "markdown", jobs, 4)
	if len(got) != len(jobs) {
		t.Fatalf("len(RenderAll()) = %d, want %d", len(got), len(jobs))
	}
	if got[0].Name != "a" || got[0].Output != "**one**\n\ntwo" || got[0].Err != nil {
		t.Errorf("RenderAll()[0] = %+v", got[0])
	}
	if !errors.Is(got[1].Err, boom) {
		t.Errorf("RenderAll()[1].Err = %v, want %v", got[1].Err, boom)
	}
	if got[2].Err == nil {
		t.Error("RenderAll()[2] with unclosed tag succeeded")
	}
	for i := 0; i < 20; i++ {
		r := got[3+i]
		want := fmt.Sprintf("_%d_", i)
		if r.Name != fmt.Sprintf("n%d", i) || r.Output != want || r.Err != nil {
			t.Errorf("RenderAll()[%d] = %+v, want %q", 3+i, r, want)
		}
	}
}

func TestRenderAllEmpty(t *testing.T) {
	s := New(Options{})
	defer s.Close()
	if got := s.RenderAll(context.Background(), "text", nil, 0); len(got) != 0 {
		t.Errorf("RenderAll(nil) = %v", got)
	}
}

func TestNewWorkerPoolSize(t *testing.T) {
	tests := []struct {
		workers, jobs, want int
	}{
		{0, 100, maxWorkers},
		{-1, 3, 3},
		{4, 2, 2},
		{4, 10, 4},
	}
	for _, tt := range tests {
		p := newWorkerPool[int, int](tt.workers, tt.jobs)
		if p.numWorkers != tt.want {
			t.Errorf("newWorkerPool(%d, %d).numWorkers = %d, want %d", tt.workers, tt.jobs, p.numWorkers, tt.want)
		}
	}
}
