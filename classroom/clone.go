package classroom

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	humanize "github.com/dustin/go-humanize"
	git "github.com/go-git/go-git/v5"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/h64/homework-cloner/errors"
	"github.com/h64/homework-cloner/workerpool"
)

const defaultCloneWorkers = 4

// CloneOptions ...
type CloneOptions struct {
	// TargetDir is created if absent; submissions are materialized as
	// one subdirectory per student underneath it.
	TargetDir string
	// BaseURL is the clone URL prefix, e.g. "https://github.com".
	// Repository full names are appended to it.
	BaseURL string
	// Auth is presented on every clone; leave nil for hosts that allow
	// anonymous clones.
	Auth *githttp.BasicAuth
	// Workers bounds the number of concurrent clones.
	Workers int
	// DryRun reports what would be cloned without touching the network
	// or the filesystem beyond TargetDir.
	DryRun bool
	// Progress receives interleaved clone progress; defaults to os.Stdout.
	Progress io.Writer
	// Notices receives skip and clone notices; defaults to os.Stdout.
	Notices io.Writer
}

// CloneResult records the outcome for one submission.
type CloneResult struct {
	Student string
	Path    string
	Skipped bool
	Bytes   uint64
	Took    time.Duration
	Err     error
}

func (o CloneOptions) cloneURL(fullName string) string {
	return fmt.Sprintf("%s/%s", o.BaseURL, fullName)
}

// CloneSubmissions materializes each submission under
// <TargetDir>/<StudentName>. Destinations that already exist are skipped,
// which also collapses multiple submissions by the same student. Clones
// run on a bounded pool and the call returns only after every clone has
// finished; per-submission failures are recorded in the results and
// never abort sibling clones.
func CloneSubmissions(subs []Submission, opts CloneOptions) []CloneResult {
	if opts.Workers <= 0 {
		opts.Workers = defaultCloneWorkers
	}
	if opts.Progress == nil {
		opts.Progress = os.Stdout
	}
	if opts.Notices == nil {
		opts.Notices = os.Stdout
	}

	if err := os.MkdirAll(opts.TargetDir, os.ModePerm); err != nil {
		return []CloneResult{{
			Err: errors.Wrapf(err, "unable to create target directory %s", opts.TargetDir),
		}}
	}

	var (
		m       sync.Mutex
		results []CloneResult
	)
	record := func(res CloneResult) {
		m.Lock()
		results = append(results, res)
		m.Unlock()
	}

	var jobs []workerpool.Job
	seen := make(map[string]bool)
	for _, s := range subs {
		sub := s
		dest := filepath.Join(opts.TargetDir, sub.Student)

		if seen[dest] {
			fmt.Fprintf(opts.Notices, "skipping duplicate submission from %s\n", sub.Student)
			record(CloneResult{Student: sub.Student, Path: dest, Skipped: true})
			continue
		}
		seen[dest] = true

		if _, err := os.Stat(dest); err == nil {
			fmt.Fprintf(opts.Notices, "skipping %s because %s already exists\n", sub.RepoFullName, dest)
			record(CloneResult{Student: sub.Student, Path: dest, Skipped: true})
			SkipRatio.Hit()
			continue
		}
		SkipRatio.Miss()

		if opts.DryRun {
			fmt.Fprintf(opts.Notices, "would clone %s into %s\n", opts.cloneURL(sub.RepoFullName), dest)
			record(CloneResult{Student: sub.Student, Path: dest})
			continue
		}

		jobs = append(jobs, func() error {
			record(cloneOne(sub, dest, opts))
			return nil
		})
	}

	pool := workerpool.New(opts.Workers)
	defer pool.Stop()
	pool.Add(jobs)
	pool.Wait()

	return results
}

func cloneOne(sub Submission, dest string, opts CloneOptions) CloneResult {
	start := time.Now()

	cloneOpts := &git.CloneOptions{
		URL:      opts.cloneURL(sub.RepoFullName),
		Progress: opts.Progress,
	}
	if opts.Auth != nil {
		cloneOpts.Auth = opts.Auth
	}

	if _, err := git.PlainClone(dest, false, cloneOpts); err != nil {
		CloneSuccessRate.Miss()
		// leave no partial working tree behind so the next run retries
		os.RemoveAll(dest)
		return CloneResult{
			Student: sub.Student,
			Path:    dest,
			Took:    time.Since(start),
			Err:     errors.Wrapf(err, "error cloning %s for %s", sub.RepoFullName, sub.Student),
		}
	}
	CloneSuccessRate.Hit()

	size := dirSize(dest)
	fmt.Fprintf(opts.Notices, "cloned %s into %s (%s)\n", sub.RepoFullName, dest, humanize.Bytes(size))
	return CloneResult{
		Student: sub.Student,
		Path:    dest,
		Bytes:   size,
		Took:    time.Since(start),
	}
}

// Summarize prints a one-line rollup of the clone results.
func Summarize(w io.Writer, results []CloneResult, took time.Duration) {
	var cloned, skipped, failed int
	var total uint64
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
		case res.Skipped:
			skipped++
		default:
			cloned++
			total += res.Bytes
		}
	}
	fmt.Fprintf(w, "Done, took %v: cloned %d (%s), skipped %d, failed %d\n",
		took.Round(time.Millisecond), cloned, humanize.Bytes(total), skipped, failed)
}

// FailedErrors collects the per-submission failures into a single error
// list, or nil if every clone succeeded or was skipped.
func FailedErrors(results []CloneResult) errors.Errors {
	var errs errors.Errors
	for _, res := range results {
		errs = errors.Append(errs, res.Err)
	}
	return errs
}

func dirSize(root string) uint64 {
	var total uint64
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		total += uint64(info.Size())
		return nil
	})
	return total
}
