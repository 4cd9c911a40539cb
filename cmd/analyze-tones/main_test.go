package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	rtty "github.com/tphakala/go-rtty"
)

func writeRTTY(t *testing.T, message string, cfg *rtty.Config) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rtty.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	_, err = rtty.WriteFile(f, strings.NewReader(message), cfg, rtty.FormatWAV)
	require.NoError(t, err)
	return path
}

func TestMeasureBits_LetterA(t *testing.T) {
	cfg := rtty.DefaultConfig()
	path := writeRTTY(t, "A", &cfg)

	samples, rate, err := readWAV(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.SampleRate, rate)

	bits, err := measureBits(samples, rate, &cfg)
	require.NoError(t, err)
	require.Len(t, bits, 1290)

	s := bitString(bits)
	assert.Equal(t, strings.Repeat("1", 1040), s[:1040], "preamble is all mark")
	assert.Equal(t, "0100000101", s[1040:1050], "start, 0x41 LSB first, stop")
	assert.Equal(t, strings.Repeat("1", 240), s[1050:], "postamble is all mark")

	nearMark := func(f float64) bool {
		return math.Abs(f-cfg.MarkFreq) < math.Abs(f-cfg.SpaceFreq)
	}
	for _, i := range []int{0, 500, 1041, 1289} {
		assert.True(t, nearMark(bits[i].freq), "bit %d peak %.1f Hz", i, bits[i].freq)
	}
	assert.False(t, nearMark(bits[1040].freq), "start bit peak %.1f Hz", bits[1040].freq)
}

func TestMeasureBits_MatchesExpectedFrames(t *testing.T) {
	tests := []struct {
		name    string
		cfg     rtty.Config
		message string
	}{
		{"300 baud 8N1", rtty.PresetDefault(), "Hello, RTTY!\n"},
		{"110 baud 7E2", rtty.PresetASCII110(), "CQ DE N0CALL"},
		{"bell 103", rtty.PresetBell103(), "\x00\xff\x55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			path := writeRTTY(t, tt.message, &cfg)

			samples, rate, err := readWAV(path)
			require.NoError(t, err)
			bits, err := measureBits(samples, rate, &cfg)
			require.NoError(t, err)

			want := expectedBits([]byte(tt.message), &cfg)
			assert.Equal(t, -1, firstMismatch(bitString(bits), want))
		})
	}
}

func TestMeasureBits_FiveBitCodes(t *testing.T) {
	cfg := rtty.PresetAmateur45()
	message := []byte{0x1f, 0x00, 0x15, 0x0a}

	g, err := rtty.New(&cfg)
	require.NoError(t, err)
	require.NoError(t, g.Preamble())
	_, err = g.Write(message)
	require.NoError(t, err)
	require.NoError(t, g.Postamble())

	bits, err := measureBits(g.Audio().Float64(), cfg.SampleRate, &cfg)
	require.NoError(t, err)

	want := expectedBits(message, &cfg)
	assert.Equal(t, len(want), len(bits))
	assert.Equal(t, -1, firstMismatch(bitString(bits), want))
}

func TestMeasureBits_LeadingSilence(t *testing.T) {
	cfg := rtty.DefaultConfig()
	g, err := rtty.New(&cfg)
	require.NoError(t, err)
	require.NoError(t, g.Pause(37*time.Millisecond)) // not a whole number of bits
	require.NoError(t, g.Preamble())
	_, err = g.Write([]byte("ok"))
	require.NoError(t, err)
	require.NoError(t, g.Postamble())
	require.NoError(t, g.Pause(time.Second))

	bits, err := measureBits(g.Audio().Float64(), cfg.SampleRate, &cfg)
	require.NoError(t, err)

	s := bitString(bits)
	want := expectedBits([]byte("ok"), &cfg)
	assert.Equal(t, -1, firstMismatch(s, want))
	assert.True(t, strings.HasSuffix(s, "___"), "trailing pause measures as silence")
}

func TestExpectedBits(t *testing.T) {
	cfg := rtty.PresetASCII110() // 7 data bits, even parity, 2 stop bits

	s := expectedBits([]byte{0x41}, &cfg)
	require.Len(t, s, 1040+11+240)
	// 0x41 has two set bits, so even parity is 1.
	assert.Equal(t, "0"+"1000001"+"1"+"11", s[1040:1051])
}

func TestFirstMismatch(t *testing.T) {
	assert.Equal(t, -1, firstMismatch("0101", "0101"))
	assert.Equal(t, -1, firstMismatch("0101___", "0101"))
	assert.Equal(t, 2, firstMismatch("0111", "0101"))
	assert.Equal(t, 3, firstMismatch("010", "0101"))
}

func TestRun(t *testing.T) {
	cfg := rtty.DefaultConfig()
	path := writeRTTY(t, "A", &cfg)

	var out bytes.Buffer
	require.NoError(t, run([]string{path}, &out))
	assert.Contains(t, out.String(), "22050 Hz")
	assert.Contains(t, out.String(), "Bit periods: 1290")

	out.Reset()
	require.NoError(t, run([]string{"-bits", path}, &out))
	assert.Contains(t, out.String(), "bit  1040")
}

func TestRun_Expect(t *testing.T) {
	cfg := rtty.DefaultConfig()
	path := writeRTTY(t, "RYRY", &cfg)

	good := filepath.Join(t.TempDir(), "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("RYRY"), 0o644))
	bad := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("RYRZ"), 0o644))

	var out bytes.Buffer
	require.NoError(t, run([]string{"-expect", good, path}, &out))
	assert.Contains(t, out.String(), "OK: all 1320 bits match")

	err := run([]string{"-expect", bad, path}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "measured")

	err = run([]string{"-expect", good, "-b", "150", path}, &out)
	require.Error(t, err, "wrong baud rate does not verify")
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	require.Error(t, run(nil, &out))
	require.Error(t, run([]string{"-preset", "nope", "x.wav"}, &out))
	require.Error(t, run([]string{"-p", "sideways", "x.wav"}, &out))

	_, _, err := readWAV("/nonexistent/file.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")

	bad := filepath.Join(t.TempDir(), "bad.wav")
	require.NoError(t, os.WriteFile(bad, []byte("not a wav file"), 0o644))
	_, _, err = readWAV(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}
