package testutil

import (
	"math"
	"testing"
)

func TestEnergyImpulse(t *testing.T) {
	if got := Energy(Impulse(64, 10)); got != 1 {
		t.Fatalf("Energy = %v, want 1", got)
	}
}

func TestRMSDC(t *testing.T) {
	if got := RMS(DC(0.5, 32)); math.Abs(got-0.5) > 1e-7 {
		t.Fatalf("RMS = %v, want 0.5", got)
	}
}

func TestRMSEmpty(t *testing.T) {
	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS = %v, want 0", got)
	}
}

func TestDominantFrequencySine(t *testing.T) {
	const (
		sampleRate = 48000.0
		freqHz     = 2400.0 // 0.05 cycles/sample
	)

	x := DeterministicSine(freqHz, sampleRate, 0.8, 4096)

	got := DominantFrequency(t, x)
	want := freqHz / sampleRate

	if math.Abs(got-want) > 1e-3 {
		t.Fatalf("DominantFrequency = %v, want %v", got, want)
	}
}

func TestDominantFrequencyPicksStrongest(t *testing.T) {
	const sampleRate = 48000.0

	weak := DeterministicSine(1000, sampleRate, 0.1, 4096)
	strong := DeterministicSine(6000, sampleRate, 0.9, 4096)

	x := make([]float32, len(weak))
	for i := range x {
		x[i] = weak[i] + strong[i]
	}

	got := DominantFrequency(t, x)
	want := 6000.0 / sampleRate

	if math.Abs(got-want) > 1e-3 {
		t.Fatalf("DominantFrequency = %v, want %v", got, want)
	}
}
