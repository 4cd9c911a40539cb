// Command genrtty turns a text file into an RTTY (FSK) audio file.
//
// Usage:
//
//	genrtty message.txt                       # 300 baud 8N1, writes message.txt.wav
//	genrtty -b 45.45 -w 5 -s 2 message.txt    # amateur radio Baudot timing
//	genrtty -7 -p even -s 2 -b 110 msg.txt    # 110 baud ASCII teleprinter
//	genrtty -format aiff -r 11025 msg.txt     # AIFF at 11025 Hz
//	genrtty -config run.yaml -v msg.txt       # settings from a YAML profile
//	genrtty -j 4 a.txt b.txt c.txt            # several files, four at a time
//
// Settings are layered: the preset (or the built-in default), then the
// profile named by -config, then any flag given on the command line.
// Every input gets its own output file; a failure in one input does not
// stop the others.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	rtty "github.com/tphakala/go-rtty"
	"github.com/tphakala/go-rtty/internal/profile"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

// options holds the parsed command line.
type options struct {
	parity    string
	stopBits  int
	baud      float64
	rate      int
	seven     bool
	eight     bool
	width     int
	mark      float64
	space     float64
	format    string
	out       string
	config    string
	preset    string
	silenceMS int
	jobs      int
	verbose   bool

	inputs []string
	set    map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	def := rtty.DefaultConfig()
	o := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("genrtty", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.parity, "p", def.Parity.String(), "Parity: none, odd, even, zero, one (or 0-4)")
	fs.IntVar(&o.stopBits, "s", def.StopBits, "Stop bits (0-255)")
	fs.Float64Var(&o.baud, "b", def.BaudRate, "Baud rate (fractional rates such as 45.45 allowed)")
	fs.IntVar(&o.rate, "r", def.SampleRate, "Sample rate in Hz (max 44100)")
	fs.BoolVar(&o.seven, "7", false, "7 data bits (same as -w 7)")
	fs.BoolVar(&o.eight, "8", false, "8 data bits (same as -w 8)")
	fs.IntVar(&o.width, "w", def.BitWidth, "Data bits per character (1-8)")
	fs.Float64Var(&o.mark, "o", def.MarkFreq, "Mark (1) frequency in Hz")
	fs.Float64Var(&o.space, "z", def.SpaceFreq, "Space (0) frequency in Hz")
	fs.StringVar(&o.format, "format", defaultFormat, "Output container: wav, aiff")
	fs.StringVar(&o.out, "out", "", "Output path (default: input path plus format extension)")
	fs.StringVar(&o.config, "config", "", "YAML profile with run settings")
	fs.StringVar(&o.preset, "preset", "", "Named preset: "+strings.Join(rtty.PresetNames(), ", "))
	fs.IntVar(&o.silenceMS, "silence", 0, "Silence in ms before and after the signal")
	fs.IntVar(&o.jobs, "j", runtime.NumCPU(), "Number of input files encoded concurrently")
	fs.BoolVar(&o.verbose, "v", false, "Verbose output (progress dots with a single input)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: genrtty [options] input.txt [more.txt ...]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if fs.NArg() < minRequiredArgs {
		fs.Usage()
		return nil, errors.New("missing input file")
	}
	o.inputs = fs.Args()

	if o.seven && o.eight {
		return nil, fmt.Errorf("%w: -7 and -8 are mutually exclusive", rtty.ErrInvalidConfig)
	}
	if o.set["w"] && (o.seven || o.eight) {
		return nil, fmt.Errorf("%w: -w cannot be combined with -7 or -8", rtty.ErrInvalidConfig)
	}
	if o.out != "" && len(o.inputs) > 1 {
		return nil, errors.New("-out needs exactly one input file")
	}
	o.jobs = max(o.jobs, 1)
	return o, nil
}

// settings resolves the layered configuration into a run config, output
// container and silence padding.
func (o *options) settings() (rtty.Config, rtty.Format, time.Duration, error) {
	prof := &profile.Profile{}
	if o.config != "" {
		var err error
		if prof, err = profile.Load(o.config); err != nil {
			return rtty.Config{}, 0, 0, err
		}
	}
	if o.set["preset"] {
		prof.Preset = o.preset
	}

	cfg, err := prof.Config()
	if err != nil {
		return rtty.Config{}, 0, 0, err
	}

	format, err := prof.OutputFormat(rtty.FormatWAV)
	if err != nil {
		return rtty.Config{}, 0, 0, err
	}
	silence := prof.Silence(0)

	if err := o.override(&cfg); err != nil {
		return rtty.Config{}, 0, 0, err
	}
	if o.set["format"] {
		if format, err = rtty.ParseFormat(o.format); err != nil {
			return rtty.Config{}, 0, 0, err
		}
	}
	if o.set["silence"] {
		if o.silenceMS < 0 {
			return rtty.Config{}, 0, 0, fmt.Errorf("%w: negative silence %d ms", rtty.ErrInvalidConfig, o.silenceMS)
		}
		silence = time.Duration(o.silenceMS) * time.Millisecond
	}

	return cfg, format, silence, nil
}

// override applies the flags given explicitly on the command line.
func (o *options) override(cfg *rtty.Config) error {
	if o.set["p"] {
		parity, err := rtty.ParseParity(o.parity)
		if err != nil {
			return err
		}
		cfg.Parity = parity
	}
	if o.set["s"] {
		cfg.StopBits = o.stopBits
	}
	if o.set["b"] {
		cfg.BaudRate = o.baud
	}
	if o.set["r"] {
		cfg.SampleRate = o.rate
	}
	if o.set["w"] {
		cfg.BitWidth = o.width
	}
	if o.seven {
		cfg.BitWidth = 7
	}
	if o.eight {
		cfg.BitWidth = 8
	}
	if o.set["o"] {
		cfg.MarkFreq = o.mark
	}
	if o.set["z"] {
		cfg.SpaceFreq = o.space
	}
	return nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, format, silence, err := opts.settings()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	printSettings(stdout, &cfg)
	for _, w := range cfg.Warnings() {
		fmt.Fprintf(stderr, "[!] %s\n", w)
	}

	jobs := make([]*job, len(opts.inputs))
	outputs := make(map[string]string, len(opts.inputs))
	for i, input := range opts.inputs {
		outputPath := outputPathFor(input, opts.out, format)
		key, err := filepath.Abs(outputPath)
		if err != nil {
			key = filepath.Clean(outputPath)
		}
		if prev, ok := outputs[key]; ok {
			return fmt.Errorf("%s and %s would both write %s", prev, input, outputPath)
		}
		outputs[key] = input

		jobs[i] = &job{
			inputPath:  input,
			outputPath: outputPath,
			config:     &cfg,
			format:     format,
			silence:    silence,
			verbose:    opts.verbose && len(opts.inputs) == 1,
			progress:   stderr,
		}
		fmt.Fprintf(stdout, "Input:  %s\n", input)
		fmt.Fprintf(stdout, "Output: %s (%s)\n", jobs[i].outputPath, format)
	}

	start := time.Now()
	stats := make([]*runStats, len(jobs))
	errs := make([]error, len(jobs))

	var g errgroup.Group
	g.SetLimit(opts.jobs)
	for i, j := range jobs {
		g.Go(func() error {
			stats[i], errs[i] = generate(j)
			return nil
		})
	}
	_ = g.Wait()
	elapsed := time.Since(start)

	var failed []error
	for i, j := range jobs {
		if errs[i] != nil {
			failed = append(failed, fmt.Errorf("%s: %w", j.inputPath, errs[i]))
			continue
		}
		fmt.Fprintf(stdout, "Encoded %d bytes -> %s\n", stats[i].bytes, filepath.Base(j.outputPath))
		fmt.Fprintf(stdout, "  %d samples, %.2fs of audio, %d bytes written\n",
			stats[i].samples, stats[i].duration.Seconds(), stats[i].written)
	}
	fmt.Fprintf(stdout, "Elapsed: %v\n", elapsed.Round(time.Millisecond))

	return errors.Join(failed...)
}

func printSettings(w io.Writer, cfg *rtty.Config) {
	fmt.Fprintf(w, "Mark %g Hz, space %g Hz\n", cfg.MarkFreq, cfg.SpaceFreq)
	fmt.Fprintf(w, "%g baud, %d data bits, parity %s, %d stop bits\n",
		cfg.BaudRate, cfg.BitWidth, cfg.Parity, cfg.StopBits)
	fmt.Fprintf(w, "%d Hz sample rate, %.1f µs/bit\n", cfg.SampleRate, cfg.BitDuration())
}
