package main

import (
	"fmt"
	"io"
	"os"
	"time"

	rtty "github.com/tphakala/go-rtty"
)

// job describes one input file to encode.
type job struct {
	inputPath  string
	outputPath string
	config     *rtty.Config
	format     rtty.Format
	silence    time.Duration
	verbose    bool
	progress   io.Writer
}

// runStats summarizes a finished job.
type runStats struct {
	bytes    int64
	samples  int
	duration time.Duration
	written  int64
}

// outputPathFor returns out, or the input path with the format extension
// appended when out is empty.
func outputPathFor(input, out string, f rtty.Format) string {
	if out != "" {
		return out
	}
	return input + f.Extension()
}

// openInput opens the text to encode.
func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open input file: %w", rtty.ErrOpenResource, err)
	}
	return f, nil
}

// createOutput creates (or truncates) the audio file.
func createOutput(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create output file: %w", rtty.ErrOpenResource, err)
	}
	return f, nil
}

// generate encodes j.inputPath into j.outputPath. Both files are closed
// on every path, and the output is removed if anything fails after it
// was created.
func generate(j *job) (stats *runStats, err error) {
	input, err := openInput(j.inputPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	g, err := rtty.New(j.config)
	if err != nil {
		return nil, err
	}

	output, err := createOutput(j.outputPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := output.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
		if err != nil {
			_ = os.Remove(j.outputPath)
			stats = nil
		}
	}()

	progress := newProgressTracker(j.progress, j.verbose)
	g.OnProgress(progress.report)

	if err := synthesize(g, input, j.silence); err != nil {
		progress.finish()
		return nil, err
	}
	progress.finish()

	a := g.Audio()
	written, err := a.Encode(output, j.format)
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", j.format, err)
	}

	return &runStats{
		bytes:    g.Bytes(),
		samples:  a.Len(),
		duration: a.Duration(),
		written:  written,
	}, nil
}

// synthesize runs the full transmission: optional lead-in silence,
// preamble, the input bytes, postamble and optional lead-out silence.
func synthesize(g *rtty.Generator, r io.Reader, silence time.Duration) error {
	if silence > 0 {
		if err := g.Pause(silence); err != nil {
			return err
		}
	}
	if err := g.Preamble(); err != nil {
		return err
	}
	if _, err := g.ReadFrom(r); err != nil {
		return err
	}
	if err := g.Postamble(); err != nil {
		return err
	}
	if silence > 0 {
		return g.Pause(silence)
	}
	return nil
}

// progressTracker prints one dot per progressBytes encoded bytes.
type progressTracker struct {
	w       io.Writer
	verbose bool
	dots    int
}

func newProgressTracker(w io.Writer, verbose bool) *progressTracker {
	return &progressTracker{w: w, verbose: verbose}
}

// report is called with the running byte count after each byte.
func (p *progressTracker) report(n int64) {
	if !p.verbose || p.w == nil || n%progressBytes != 0 {
		return
	}
	fmt.Fprint(p.w, ".")
	p.dots++
}

// finish ends the dot line.
func (p *progressTracker) finish() {
	if p.dots > 0 {
		fmt.Fprintln(p.w)
		p.dots = 0
	}
}
