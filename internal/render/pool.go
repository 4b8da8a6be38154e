package render

import "sync"

// maxWorkers caps a pool whose size is left to the default.
const maxWorkers = 8

// workerPool runs one function over a queue of jobs on a fixed number of
// goroutines and collects the results.
type workerPool[Job any, Result any] struct {
	numWorkers int
	jobs       chan Job
	results    chan Result
	wg         sync.WaitGroup
}

// newWorkerPool sizes a pool for numJobs jobs. A non-positive numWorkers
// selects maxWorkers, and the pool never has more workers than jobs.
func newWorkerPool[Job any, Result any](numWorkers, numJobs int) *workerPool[Job, Result] {
	if numWorkers <= 0 {
		numWorkers = maxWorkers
	}
	if numJobs > 0 {
		numWorkers = min(numWorkers, numJobs)
	}
	return &workerPool[Job, Result]{
		numWorkers: numWorkers,
		jobs:       make(chan Job, numJobs),
		results:    make(chan Result, numJobs),
	}
}

func (p *workerPool[Job, Result]) start(fn func(Job) Result) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.results <- fn(job)
			}
		}()
	}
}

func (p *workerPool[Job, Result]) submit(job Job) {
	p.jobs <- job
}

// close stops accepting jobs. The results channel closes once every worker
// has finished.
func (p *workerPool[Job, Result]) close() {
	close(p.jobs)
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}
