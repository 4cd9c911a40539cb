// Package profile loads genrtty run profiles from YAML.
//
// A profile names an optional preset and overrides individual settings:
//
//	preset: amateur45
//	sample_rate: 11025
//	parity: even
//	format: aiff
//	silence_ms: 250
//
// Fields left out keep the preset (or default) value.
package profile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	rtty "github.com/tphakala/go-rtty"
	"gopkg.in/yaml.v3"
)

// Profile is the on-disk form of a run configuration. Pointer fields
// distinguish "not set" from an explicit zero.
type Profile struct {
	Preset     string   `yaml:"preset"`
	SampleRate *int     `yaml:"sample_rate"`
	BaudRate   *float64 `yaml:"baud_rate"`
	MarkFreq   *float64 `yaml:"mark_freq"`
	SpaceFreq  *float64 `yaml:"space_freq"`
	BitWidth   *int     `yaml:"bit_width"`
	Parity     string   `yaml:"parity"`
	StopBits   *int     `yaml:"stop_bits"`
	Volume     *float64 `yaml:"volume"`
	MaxSamples *int     `yaml:"max_samples"`
	Format     string   `yaml:"format"`
	SilenceMS  *int     `yaml:"silence_ms"`
}

// Load reads the YAML profile at path.
// It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("profile: open %q: %w", path, err)
	}
	defer f.Close()

	p, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("profile: parse %q: %w", path, err)
	}
	return p, nil
}

// LoadFromReader decodes a YAML profile from r and checks that its
// named values (preset, parity, format) are recognised. Unknown keys
// are rejected. An empty document yields an empty profile.
func LoadFromReader(r io.Reader) (*Profile, error) {
	p := &Profile{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("profile: decode yaml: %w", err)
	}
	if err := p.check(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Profile) check() error {
	var errs []error
	if p.Preset != "" {
		if _, err := rtty.PresetByName(p.Preset); err != nil {
			errs = append(errs, err)
		}
	}
	if p.Parity != "" {
		if _, err := rtty.ParseParity(p.Parity); err != nil {
			errs = append(errs, err)
		}
	}
	if p.Format != "" {
		if _, err := rtty.ParseFormat(p.Format); err != nil {
			errs = append(errs, err)
		}
	}
	if p.SilenceMS != nil && *p.SilenceMS < 0 {
		errs = append(errs, fmt.Errorf("profile: silence_ms %d must not be negative", *p.SilenceMS))
	}
	return errors.Join(errs...)
}

// Config returns the preset named by the profile (or the default
// configuration) with every set field applied on top.
func (p *Profile) Config() (rtty.Config, error) {
	cfg := rtty.DefaultConfig()
	if p.Preset != "" {
		var err error
		if cfg, err = rtty.PresetByName(p.Preset); err != nil {
			return rtty.Config{}, err
		}
	}
	if err := p.Apply(&cfg); err != nil {
		return rtty.Config{}, err
	}
	return cfg, nil
}

// Apply overwrites the fields of cfg that the profile sets. The preset
// is not applied; use [Profile.Config] for that.
func (p *Profile) Apply(cfg *rtty.Config) error {
	setInt(&cfg.SampleRate, p.SampleRate)
	setFloat(&cfg.BaudRate, p.BaudRate)
	setFloat(&cfg.MarkFreq, p.MarkFreq)
	setFloat(&cfg.SpaceFreq, p.SpaceFreq)
	setInt(&cfg.BitWidth, p.BitWidth)
	setInt(&cfg.StopBits, p.StopBits)
	setFloat(&cfg.Volume, p.Volume)
	setInt(&cfg.MaxSamples, p.MaxSamples)

	if p.Parity != "" {
		parity, err := rtty.ParseParity(p.Parity)
		if err != nil {
			return err
		}
		cfg.Parity = parity
	}
	return nil
}

// OutputFormat returns the configured container, or def when unset.
func (p *Profile) OutputFormat(def rtty.Format) (rtty.Format, error) {
	if p.Format == "" {
		return def, nil
	}
	return rtty.ParseFormat(p.Format)
}

// Silence returns the configured lead-in and lead-out pause, or def when unset.
func (p *Profile) Silence(def time.Duration) time.Duration {
	if p.SilenceMS == nil {
		return def
	}
	return time.Duration(*p.SilenceMS) * time.Millisecond
}

func setInt(dst, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst, src *float64) {
	if src != nil {
		*dst = *src
	}
}
