package rtty

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Common RTTY sample rates.
const (
	// RateTelephony is the narrowband telephone sample rate.
	RateTelephony = 8000

	// RateQuarterCD is a quarter of the CD rate, ample for audio-band FSK.
	RateQuarterCD = 11025

	// RateHalfCD is half the CD rate and the generator default.
	RateHalfCD = 22050

	// RateCD is the CD quality sample rate and the supported maximum.
	RateCD = 44100
)

// PresetDefault returns DefaultConfig: 300 baud 8N1 with 1500/1200 Hz tones.
func PresetDefault() Config {
	return DefaultConfig()
}

// PresetAmateur45 returns the common amateur radio setup: 45.45 baud,
// 5-bit characters, 170 Hz shift on the 2125/2295 Hz AFSK tones and two
// stop bits. Mark sits below space here, which Warnings reports.
func PresetAmateur45() Config {
	c := DefaultConfig()
	c.BaudRate = 45.45
	c.MarkFreq = 2125
	c.SpaceFreq = 2295
	c.BitWidth = 5
	c.StopBits = 2
	return c
}

// PresetASCII110 returns the classic 110 baud ASCII teleprinter framing:
// 7 data bits, even parity, two stop bits.
func PresetASCII110() Config {
	c := DefaultConfig()
	c.BaudRate = 110
	c.BitWidth = 7
	c.Parity = ParityEven
	c.StopBits = 2
	return c
}

// PresetBell103 returns 300 baud 8N1 on the Bell 103 originate tones.
func PresetBell103() Config {
	c := DefaultConfig()
	c.MarkFreq = 1270
	c.SpaceFreq = 1070
	return c
}

var presets = map[string]func() Config{
	"default":   PresetDefault,
	"amateur45": PresetAmateur45,
	"ascii110":  PresetASCII110,
	"bell103":   PresetBell103,
}

// PresetNames returns the names accepted by PresetByName, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetByName returns the named preset configuration.
func PresetByName(name string) (Config, error) {
	fn, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown preset %q (valid: %s)",
			ErrInvalidConfig, name, strings.Join(PresetNames(), ", "))
	}
	return fn(), nil
}

// SynthesizeBytes is Synthesize over an in-memory message.
func SynthesizeBytes(message []byte, config *Config) (*Audio, error) {
	return Synthesize(bytes.NewReader(message), config)
}

// WriteFile synthesizes everything read from r and writes it to w in
// format f. It returns the synthesized audio.
func WriteFile(w io.Writer, r io.Reader, config *Config, f Format) (*Audio, error) {
	if _, err := f.kind(); err != nil {
		return nil, err
	}

	a, err := Synthesize(r, config)
	if err != nil {
		return nil, err
	}

	if _, err := a.Encode(w, f); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", f, err)
	}
	return a, nil
}
