// Package batch carves many images with a pool of workers. Each image is
// still carved by a single goroutine.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dixieflatline76/Carver/pkg/carver"
	"github.com/dixieflatline76/Carver/pkg/loader"
	"github.com/dixieflatline76/Carver/util/log"
)

// Job describes one image to carve.
type Job struct {
	ID     uuid.UUID
	Src    string
	OutDir string

	// Seams to remove. Ignored when Width and Height are set.
	Columns, Rows int
	// Target size. Zero means "use Columns and Rows".
	Width, Height int
}

// Result is the outcome of one Job.
type Result struct {
	Job      Job
	Output   string
	Width    int
	Height   int
	Duration time.Duration
	Err      error
}

// ProcessFunc carves a single job.
type ProcessFunc func(ctx context.Context, job Job) Result

// Pipeline feeds jobs to workers and collects their results.
type Pipeline struct {
	processor ProcessFunc
}

// NewPipeline creates a pipeline that carves with opts and saves with the
// given JPEG quality.
func NewPipeline(opts carver.Options, quality int) *Pipeline {
	return &Pipeline{processor: Processor(opts, quality)}
}

// NewPipelineWithProcessor creates a pipeline around a custom ProcessFunc.
func NewPipelineWithProcessor(fn ProcessFunc) *Pipeline {
	return &Pipeline{processor: fn}
}

type indexedJob struct {
	index int
	job   Job
}

type indexedResult struct {
	index  int
	result Result
}

// Run processes jobs with the given number of workers and returns results
// in job order. A failed job does not stop the others; cancelling ctx
// stops handing out new jobs and marks the rest with the context error.
func (p *Pipeline) Run(ctx context.Context, workers int, jobs []Job) []Result {
	if workers < 1 {
		workers = 1
	}
	log.Printf("Starting batch of %d image(s) with %d worker(s)", len(jobs), workers)

	jobChan := make(chan indexedJob)
	resultChan := make(chan indexedResult, len(jobs))

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		id := i
		g.Go(func() error {
			log.Debugf("Worker %d started", id)
			for ij := range jobChan {
				resultChan <- indexedResult{index: ij.index, result: p.processor(ctx, ij.job)}
			}
			log.Debugf("Worker %d stopping", id)
			return nil
		})
	}

	results := make([]Result, len(jobs))
	sent := make([]bool, len(jobs))
feed:
	for i, job := range jobs {
		select {
		case <-ctx.Done():
			break feed
		case jobChan <- indexedJob{index: i, job: job}:
			sent[i] = true
		}
	}
	close(jobChan)
	_ = g.Wait()
	close(resultChan)

	for ir := range resultChan {
		results[ir.index] = ir.result
	}
	failed := 0
	for i := range jobs {
		if !sent[i] {
			results[i] = Result{Job: jobs[i], Err: ctx.Err()}
		}
		if results[i].Err != nil {
			failed++
		}
	}
	log.Printf("Batch finished: %d ok, %d failed", len(jobs)-failed, failed)
	return results
}

// Processor returns the default ProcessFunc: load, carve, save as
// OutputName in the job's OutDir.
func Processor(opts carver.Options, quality int) ProcessFunc {
	return func(ctx context.Context, job Job) Result {
		start := time.Now()
		res := Result{Job: job}

		img, err := loader.Open(job.Src)
		if err != nil {
			res.Err = err
			return res
		}

		c := carver.New(img, opts)
		if job.Width > 0 && job.Height > 0 {
			_, err = c.Resize(ctx, job.Width, job.Height)
		} else {
			_, err = c.Carve(ctx, job.Columns, job.Rows)
		}
		if err != nil {
			res.Err = fmt.Errorf("carving %s: %w", job.Src, err)
			return res
		}

		res.Width, res.Height = c.Width(), c.Height()
		res.Output = filepath.Join(job.OutDir, loader.OutputName(job.Src, res.Width, res.Height))
		if err := loader.Save(c.Image(), res.Output, quality); err != nil {
			res.Err = err
			return res
		}

		res.Duration = time.Since(start)
		log.Debugf("Job %s: %s -> %s (%v)", job.ID, job.Src, res.Output, res.Duration.Round(time.Millisecond))
		return res
	}
}

// Scan walks dir and returns every image file below it.
func Scan(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && loader.IsImage(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return paths, nil
}

// NewJobs builds one job per source path, each with a fresh ID.
func NewJobs(paths []string, outDir string, columns, rows int) []Job {
	jobs := make([]Job, len(paths))
	for i, p := range paths {
		jobs[i] = Job{ID: uuid.New(), Src: p, OutDir: outDir, Columns: columns, Rows: rows}
	}
	return jobs
}
