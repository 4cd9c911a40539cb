package oscillator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-rtty/internal/pipeline"
)

const (
	testRate      = 22050
	testAmplitude = 6553.0 // 20% of 32768, truncated
)

func newTestOscillator(t *testing.T, maxSamples int) (*Oscillator, *pipeline.SampleBuffer) {
	t.Helper()
	buf := pipeline.NewSampleBuffer(0, maxSamples)
	return New(testRate, testAmplitude, buf), buf
}

func TestPlayTone_RoundsHalfUpAndCarriesDrift(t *testing.T) {
	osc, buf := newTestOscillator(t, 1<<20)
	us := osc.MicrosecondsPerSample()

	// 2.6 samples -> 3, remainder -0.4 sample carried forward.
	require.NoError(t, osc.PlayTone(1000, 2.6*us))
	assert.Equal(t, 3, buf.Len())
	assert.InDelta(t, -0.4*us, osc.Drift(), 1e-9)

	// 2.6 - 0.4 = 2.2 samples -> 2, remainder +0.2.
	require.NoError(t, osc.PlayTone(1000, 2.6*us))
	assert.Equal(t, 5, buf.Len())
	assert.InDelta(t, 0.2*us, osc.Drift(), 1e-9)
}

func TestPlayTone_TimingConvergence(t *testing.T) {
	rates := []int{8000, 11025, 22050, 44100}
	durations := []float64{1e6 / 45.45, 1e6 / 110, 1e6 / 300, 1e6 / 1200, 137.0}

	for _, rate := range rates {
		buf := pipeline.NewSampleBuffer(0, 1<<26)
		osc := New(rate, testAmplitude, buf)
		us := osc.MicrosecondsPerSample()

		var requested float64
		for i := range 20000 {
			d := durations[i%len(durations)]
			requested += d
			require.NoError(t, osc.PlayTone(1500, d))
		}

		emitted := float64(buf.Len()) * us
		assert.LessOrEqual(t, math.Abs(requested-emitted), us,
			"rate %d: requested %.3fµs, emitted %.3fµs", rate, requested, emitted)
		assert.Equal(t, buf.Len(), osc.Emitted())
	}
}

func TestPlayTone_RTTYBitAt22050(t *testing.T) {
	osc, buf := newTestOscillator(t, 1<<20)
	bit := 1e6 / 300.0

	for range 10 {
		n, _ := osc.SampleCount(bit)
		assert.Contains(t, []int{73, 74}, n, "one 300 baud bit is 73.5 samples at 22050 Hz")
		require.NoError(t, osc.PlayTone(1500, bit))
	}

	assert.InDelta(t, 735, buf.Len(), 1)
}

func TestPlayTone_PhaseContinuousAcrossFrequencyChange(t *testing.T) {
	osc, buf := newTestOscillator(t, 1<<20)
	bit := 1e6 / 300.0
	freqs := []float64{1500, 1200, 1200, 1500, 1200, 1500}

	for _, f := range freqs {
		require.NoError(t, osc.PlayTone(f, bit))
	}

	// Largest possible step between neighbouring samples of a sine at the
	// highest frequency, plus one unit for truncation.
	maxStep := testAmplitude*2*math.Pi*1500/testRate + 1

	samples := buf.Samples()
	for i := 1; i < len(samples); i++ {
		step := math.Abs(float64(samples[i]) - float64(samples[i-1]))
		require.LessOrEqual(t, step, maxStep, "discontinuity at sample %d", i)
	}
}

func TestPlayTone_MatchesContinuousReference(t *testing.T) {
	osc, buf := newTestOscillator(t, 1<<20)
	us := osc.MicrosecondsPerSample()

	require.NoError(t, osc.PlayTone(1500, 50*us))
	require.NoError(t, osc.PlayTone(1200, 50*us))

	var phase float64
	samples := buf.Samples()
	require.Len(t, samples, 100)
	for i, s := range samples {
		f := 1500.0
		if i >= 50 {
			f = 1200.0
		}
		want := math.Trunc(testAmplitude * math.Sin(phase))
		assert.InDelta(t, want, float64(s), 1, "sample %d", i)
		phase += 2 * math.Pi * f / testRate
	}
}

func TestPlayTone_ZeroFrequencyIsSilence(t *testing.T) {
	osc, buf := newTestOscillator(t, 1<<20)
	us := osc.MicrosecondsPerSample()

	require.NoError(t, osc.PlayTone(1500, 7*us))
	phase := osc.Phase()

	require.NoError(t, osc.PlayTone(0, 2500*us))
	assert.Equal(t, 2507, buf.Len())
	assert.Equal(t, phase, osc.Phase(), "silence must not advance phase")

	for i := 7; i < buf.Len(); i++ {
		require.Equal(t, int16(0), buf.At(i))
	}
}

func TestPlayTone_AmplitudeHeadroom(t *testing.T) {
	osc, buf := newTestOscillator(t, 1<<20)

	require.NoError(t, osc.PlayTone(1000, 1e6)) // one second

	var peak int16
	for _, s := range buf.Samples() {
		peak = max(peak, s, -s)
	}
	assert.LessOrEqual(t, float64(peak), testAmplitude)
	assert.GreaterOrEqual(t, float64(peak), testAmplitude-2)
}

func TestPlayTone_PhaseStaysReduced(t *testing.T) {
	osc, _ := newTestOscillator(t, 1<<22)

	for range 500 {
		require.NoError(t, osc.PlayTone(1777, 3333.3))
		require.GreaterOrEqual(t, osc.Phase(), 0.0)
		require.Less(t, osc.Phase(), 2*math.Pi)
	}
}

func TestPlayTone_CapacityExceeded(t *testing.T) {
	osc, buf := newTestOscillator(t, 100)
	us := osc.MicrosecondsPerSample()

	require.NoError(t, osc.PlayTone(1500, 60*us))
	err := osc.PlayTone(1500, 60*us)
	require.ErrorIs(t, err, pipeline.ErrCapacityExceeded)
	assert.Equal(t, 60, buf.Len())

	err = osc.PlayTone(0, 60*us)
	require.ErrorIs(t, err, pipeline.ErrCapacityExceeded)
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1.9, 1},
		{-1.9, -1},
		{6553.7, 6553},
		{40000, 32767},
		{-40000, -32768},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quantize(tt.in), "quantize(%v)", tt.in)
	}
}
