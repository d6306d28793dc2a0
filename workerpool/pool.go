package workerpool

import "sync"

// Job is a unit of work that runs on the pool.
type Job func() error

// Pool runs jobs on a fixed number of workers. Jobs added after Stop
// is called are dropped.
type Pool struct {
	queue   chan Job
	stopped chan struct{}

	wg       sync.WaitGroup
	stopOnce sync.Once

	m   sync.Mutex
	err error
}

// New builds a pool with n workers.
func New(n int) *Pool {
	p := &Pool{
		queue:   make(chan Job),
		stopped: make(chan struct{}),
	}
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

// Add enqueues the jobs without blocking the caller.
func (p *Pool) Add(jobs []Job) {
	p.wg.Add(len(jobs))
	go p.feed(jobs)
}

// AddBlocking enqueues the jobs, blocking until each job has been
// handed to a worker.
func (p *Pool) AddBlocking(jobs []Job) {
	p.wg.Add(len(jobs))
	p.feed(jobs)
}

// Wait blocks until all added jobs have either run or been dropped by
// Stop, and returns the first error any job returned.
func (p *Pool) Wait() error {
	p.wg.Wait()
	p.m.Lock()
	defer p.m.Unlock()
	return p.err
}

// Stop drops jobs that have not yet been picked up by a worker and
// shuts the workers down. In-flight jobs run to completion.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopped)
	})
}

func (p *Pool) feed(jobs []Job) {
	for _, job := range jobs {
		select {
		case <-p.stopped:
			// job will never run
			p.wg.Done()
		case p.queue <- job:
		}
	}
}

func (p *Pool) worker() {
	for {
		select {
		case <-p.stopped:
			return
		case job := <-p.queue:
			if err := job(); err != nil {
				p.m.Lock()
				if p.err == nil {
					p.err = err
				}
				p.m.Unlock()
			}
			p.wg.Done()
		}
	}
}
