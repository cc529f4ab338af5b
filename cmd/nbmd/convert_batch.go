package main

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	nbmd "github.com/alnah/go-nbmd"
)

// Worker count bounds. Conversions are short and I/O bound, so the
// automatic count follows GOMAXPROCS rather than halving it.
const (
	MinWorkers = 1
	MaxWorkers = 16
)

// FileConverter converts one file on disk.
type FileConverter interface {
	ConvertFile(ctx context.Context, input nbmd.FileInput) (*nbmd.FileResult, error)
}

// Compile-time interface implementation check.
var _ FileConverter = (*nbmd.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath   string
	Direction   nbmd.Direction
	Outputs     []string
	Stats       nbmd.Stats
	Diagnostics []nbmd.Diagnostic
	Err         error
	Duration    time.Duration
}

// resolveWorkerCount returns n, or GOMAXPROCS clamped to the bounds when
// n is 0. It never exceeds the number of files.
func resolveWorkerCount(n, files int) int {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	n = max(MinWorkers, min(n, MaxWorkers))
	if files > 0 && n > files {
		n = files
	}
	return n
}

// convertBatch converts files concurrently with a fixed number of workers.
// Results keep the order of files. A Converter is safe for concurrent
// use, so all workers share conv.
func convertBatch(ctx context.Context, conv FileConverter, files []nbmd.FileInput, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < resolveWorkerCount(workers, len(files)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].Path,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertOne(ctx, conv, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertOne converts a single file and returns the result.
func convertOne(ctx context.Context, conv FileConverter, input nbmd.FileInput) ConversionResult {
	result := ConversionResult{InputPath: input.Path}

	res, err := conv.ConvertFile(ctx, input)
	if err != nil {
		result.Err = err
		return result
	}

	result.Direction = res.Direction
	result.Outputs = res.Outputs
	result.Stats = res.Stats
	result.Diagnostics = res.Diagnostics
	result.Duration = res.Duration
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
// Quiet keeps only failures; verbose adds statistics and timing.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err, r.InputPath))
			continue
		}

		if quiet {
			continue
		}

		for _, out := range r.Outputs {
			fmt.Fprintf(env.Stdout, "Created %s\n", out)
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "  %s: %s (%v)\n", r.Direction, formatStats(r.Stats), r.Duration.Round(time.Millisecond))
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// formatStats renders cell counts and the size change of one conversion.
func formatStats(s nbmd.Stats) string {
	change := s.Reduction()
	word := "smaller"
	if change < 0 {
		change, word = -change, "larger"
	}
	return fmt.Sprintf("%d code cells, %d markdown cells, %s -> %s (%.1f%% %s)",
		s.CodeCells, s.MarkdownCells, formatSize(s.InputBytes), formatSize(s.OutputBytes), change, word)
}

// formatSize renders a byte count in B or KB.
func formatSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
