package renderer

import (
	"sync"
)

// RenderPhase identifies which stage of the render a task belongs to
type RenderPhase int

const (
	PhaseSample  RenderPhase = iota // Adaptive sampling of every pixel in a row
	PhaseDenoise                    // Filtering a row of finished pixels
)

// RowTask represents one row of work for the worker pool
type RowTask struct {
	Row   int
	Phase RenderPhase
}

// RowResult contains the result from processing a row
type RowResult struct {
	Row   int
	Stats RenderStats
}

// RowProcessor handles a single task. It is called concurrently from every worker.
type RowProcessor func(task RowTask) RowResult

// WorkerPool manages parallel row processing. Workers pull tasks from a
// shared queue, so faster rows free their worker for the next one.
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual row tasks
type Worker struct {
	ID          int
	process     RowProcessor
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize bounds the tasks that can be submitted before results are read.
func NewWorkerPool(numWorkers, queueSize int, process RowProcessor) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkerCount()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, queueSize),
		resultQueue: make(chan RowResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			process:     process,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// RunPhase submits one task per row and waits for all of them. Returning
// only after every row is done makes it the barrier between phases.
func (wp *WorkerPool) RunPhase(phase RenderPhase, rows int) []RowResult {
	go func() {
		for j := 0; j < rows; j++ {
			wp.SubmitTask(RowTask{Row: j, Phase: phase})
		}
	}()

	results := make([]RowResult, rows)
	for n := 0; n < rows; n++ {
		result, ok := wp.GetResult()
		if !ok {
			break
		}
		results[result.Row] = result
	}
	return results
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.resultQueue <- w.process(task)
	}
}
