// Command analyze-tones measures the tones in an RTTY WAV file.
//
// It finds the dominant tone of every bit period and labels it mark (1),
// space (0) or silent (_). Given the text that was encoded, it checks the
// measured bit stream against the frames that text should produce, which
// makes it easy to verify what genrtty wrote:
//
//	analyze-tones message.txt.wav
//	analyze-tones -expect message.txt message.txt.wav
//	analyze-tones -preset amateur45 -bits message.txt.wav
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-audio/wav"
	rtty "github.com/tphakala/go-rtty"
	"gonum.org/v1/gonum/floats"
)

const (
	microsecondsPerSecond = 1_000_000.0

	// windowMarginDivisor trims this fraction of a bit from each end of
	// the measurement window to stay clear of tone transitions.
	windowMarginDivisor = 8
	minWindow           = 8

	// silenceThreshold is the level, relative to full scale, below which
	// a window counts as silent.
	silenceThreshold = 0.01

	bitsPerLine = 64
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("analyze-tones", flag.ContinueOnError)
	preset := fs.String("preset", "default", "Preset with the expected framing: "+strings.Join(rtty.PresetNames(), ", "))
	baud := fs.Float64("b", 0, "Baud rate (overrides preset)")
	mark := fs.Float64("o", 0, "Mark frequency in Hz (overrides preset)")
	space := fs.Float64("z", 0, "Space frequency in Hz (overrides preset)")
	width := fs.Int("w", 0, "Data bits per character (overrides preset)")
	parity := fs.String("p", "", "Parity (overrides preset)")
	stopBits := fs.Int("s", -1, "Stop bits (overrides preset)")
	showBits := fs.Bool("bits", false, "Print the tone measured for every bit")
	expect := fs.String("expect", "", "File with the encoded text; verify the bit stream against it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(fs.Output(), "Usage: analyze-tones [options] input.wav\n")
		fs.PrintDefaults()
		return fmt.Errorf("insufficient arguments")
	}

	cfg, err := rtty.PresetByName(*preset)
	if err != nil {
		return err
	}
	if *baud > 0 {
		cfg.BaudRate = *baud
	}
	if *mark > 0 {
		cfg.MarkFreq = *mark
	}
	if *space > 0 {
		cfg.SpaceFreq = *space
	}
	if *width > 0 {
		cfg.BitWidth = *width
	}
	if *parity != "" {
		if cfg.Parity, err = rtty.ParseParity(*parity); err != nil {
			return err
		}
	}
	if *stopBits >= 0 {
		cfg.StopBits = *stopBits
	}

	path := fs.Arg(0)
	samples, rate, err := readWAV(path)
	if err != nil {
		return err
	}
	cfg.SampleRate = rate

	bits, err := measureBits(samples, rate, &cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: %d Hz, %d samples (%.2fs)\n",
		path, rate, len(samples), float64(len(samples))/float64(rate))
	fmt.Fprintf(stdout, "Expecting mark %g Hz, space %g Hz at %g baud\n", cfg.MarkFreq, cfg.SpaceFreq, cfg.BaudRate)
	fmt.Fprintf(stdout, "Bit periods: %d\n", len(bits))

	if *showBits {
		for i, b := range bits {
			fmt.Fprintf(stdout, "  bit %5d @%8d  %7.1f Hz  level %.3f  %c\n", i, b.offset, b.freq, b.level, b.sym)
		}
	} else {
		s := bitString(bits)
		for len(s) > 0 {
			n := min(bitsPerLine, len(s))
			fmt.Fprintf(stdout, "  %s\n", s[:n])
			s = s[n:]
		}
	}

	if *expect == "" {
		return nil
	}
	message, err := os.ReadFile(*expect)
	if err != nil {
		return fmt.Errorf("failed to read expected text: %w", err)
	}
	return verify(stdout, bitString(bits), expectedBits(message, &cfg))
}

// verify reports whether the measured symbols carry the expected frames.
func verify(w io.Writer, got, want string) error {
	got = strings.TrimLeft(got, string(symSilent))
	i := firstMismatch(got, want)
	if i < 0 {
		fmt.Fprintf(w, "OK: all %d bits match\n", len(want))
		return nil
	}
	if i >= len(got) {
		return fmt.Errorf("signal ends after %d of %d expected bits", len(got), len(want))
	}
	return fmt.Errorf("bit %d: measured %c, expected %c", i, got[i], want[i])
}

// readWAV decodes a PCM WAV file into mono samples normalized to [-1, 1).
// Multichannel files are reduced to their first channel.
func readWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() || d.BitDepth == 0 {
		return nil, 0, fmt.Errorf("invalid WAV file: %s", path)
	}

	pcm, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read audio data: %w", err)
	}

	channels := max(pcm.Format.NumChannels, 1)
	data := pcm.AsFloatBuffer().Data
	samples := make([]float64, len(data)/channels)
	for i := range samples {
		samples[i] = data[i*channels]
	}
	floats.Scale(1/float64(int(1)<<(int(d.BitDepth)-1)), samples)

	return samples, pcm.Format.SampleRate, nil
}
