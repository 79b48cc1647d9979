package delay

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// fillRamp fills a delay line with the ramp [0, 1, 2, ...] up to its
// maximum delay, so Read(k) == MaxDelay()-k afterwards.
func fillRamp(l *Line) {
	for i := 0; i <= l.MaxDelay(); i++ {
		l.Write(float32(i))
	}
}

// --- construction and validation ---

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for maxDelay=0")
	}

	if _, err := New(-1); err == nil {
		t.Fatal("expected error for maxDelay=-1")
	}
}

func TestNewDefaults(t *testing.T) {
	l, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	if l.MaxDelay() != 16 {
		t.Fatalf("MaxDelay: got %d want 16", l.MaxDelay())
	}

	if l.mode != Linear {
		t.Fatalf("default mode: got %v want Linear", l.mode)
	}
}

func TestNewWithMode(t *testing.T) {
	l, err := New(16, WithMode(Hermite))
	if err != nil {
		t.Fatal(err)
	}

	if l.mode != Hermite {
		t.Fatalf("mode: got %v want Hermite", l.mode)
	}
}

// --- integer Read/Write ---

func TestReadWrite(t *testing.T) {
	l, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		l.Write(float32(i))
	}
	// delay=0 => most recently written (7)
	if got := l.Read(0); got != 7 {
		t.Fatalf("got %v want 7", got)
	}
	// delay=3 => 3 samples back from the write head
	if got := l.Read(3); got != 4 {
		t.Fatalf("got %v want 4", got)
	}
}

func TestReadWraparound(t *testing.T) {
	l, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		l.Write(float32(i))
	}

	if got := l.Read(0); got != 9 {
		t.Fatalf("Read(0): got %v want 9", got)
	}

	if got := l.Read(4); got != 5 {
		t.Fatalf("Read(4): got %v want 5", got)
	}
}

func TestReadClamped(t *testing.T) {
	l, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(l)

	if got, want := l.Read(-3), l.Read(0); got != want {
		t.Fatalf("negative delay: got %v want %v", got, want)
	}

	if got, want := l.Read(100), l.Read(4); got != want {
		t.Fatalf("oversized delay: got %v want %v", got, want)
	}
}

func TestReset(t *testing.T) {
	l, err := New(4)
	if err != nil {
		t.Fatal(err)
	}

	l.Write(1)
	l.Write(2)
	l.Reset()

	for d := 0; d <= 4; d++ {
		if got := l.Read(d); got != 0 {
			t.Fatalf("after reset Read(%d): got %v want 0", d, got)
		}
	}
}

// --- fractional reads ---

func TestReadFractionalLinearRampExact(t *testing.T) {
	l, err := New(31)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(l)
	// With a linear ramp, linear interpolation is exact.
	got := float64(l.ReadFractional(5.5))

	want := float64(l.MaxDelay()) - 5.5 // 25.5
	if !approxEqual(got, want, 1e-6) {
		t.Fatalf("Linear: got %v want %v", got, want)
	}
}

func TestReadFractionalHermiteRampExact(t *testing.T) {
	l, err := New(31, WithMode(Hermite))
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(l)
	got := float64(l.ReadFractional(5.5))

	want := float64(l.MaxDelay()) - 5.5
	if !approxEqual(got, want, 1e-6) {
		t.Fatalf("Hermite: got %v want %v", got, want)
	}
}

func TestReadFractionalIntegerMatchesRead(t *testing.T) {
	l, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(l)

	for d := 0; d <= 14; d++ {
		got := l.ReadFractional(float64(d))
		if want := l.Read(d); got != want {
			t.Fatalf("ReadFractional(%d): got %v want %v", d, got, want)
		}
	}
}

func TestReadFractionalNegativeClamped(t *testing.T) {
	l, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	fillRamp(l)

	got := l.ReadFractional(-1.0)
	if want := l.Read(0); got != want {
		t.Fatalf("negative delay: got %v want %v", got, want)
	}
}

func TestReadFractionalDCPreservation(t *testing.T) {
	for _, mode := range []Mode{Linear, Hermite} {
		l, err := New(32, WithMode(mode))
		if err != nil {
			t.Fatal(err)
		}

		for i := 0; i <= l.MaxDelay(); i++ {
			l.Write(42.0)
		}

		got := float64(l.ReadFractional(5.3))
		if !approxEqual(got, 42.0, 1e-5) {
			t.Fatalf("mode %v DC: got %v want 42", mode, got)
		}
	}
}

func TestReadFractionalSineQuality(t *testing.T) {
	// Write a low-frequency sine into a large buffer and verify that
	// fractional reads are close to the analytic value.
	freq := 0.02
	size := 256

	modes := []struct {
		name string
		mode Mode
		tol  float64
	}{
		{"Linear", Linear, 0.01},
		{"Hermite", Hermite, 1e-3},
	}

	for _, tc := range modes {
		l, err := New(size, WithMode(tc.mode))
		if err != nil {
			t.Fatal(err)
		}

		for i := 0; i <= size; i++ {
			l.Write(float32(math.Sin(2 * math.Pi * freq * float64(i))))
		}

		delay := 20.37
		// Read(k) returns the sample written at index size-k, so a
		// fractional delay d corresponds to sample index size-d.
		want := math.Sin(2 * math.Pi * freq * (float64(size) - delay))
		got := float64(l.ReadFractional(delay))

		if diff := math.Abs(got - want); diff > tc.tol {
			t.Fatalf("%s sine: got %v want %v (err=%e, tol=%e)",
				tc.name, got, want, diff, tc.tol)
		}
	}
}

// --- sample and buffer processing ---

func TestProcessSampleZeroDelayIsIdentity(t *testing.T) {
	l, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		x := float32(i) * 0.25
		if got := l.ProcessSample(x, 0); got != x {
			t.Fatalf("sample %d: got %v want %v", i, got, x)
		}
	}
}

func TestProcessBufferImpulse(t *testing.T) {
	l, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	src := make([]float32, 10)
	src[0] = 1

	dst := make([]float32, len(src))
	if err := l.ProcessBuffer(dst, src, 4); err != nil {
		t.Fatal(err)
	}

	for i, v := range dst {
		want := float32(0)
		if i == 4 {
			want = 1
		}

		if v != want {
			t.Fatalf("sample %d: got %v want %v", i, v, want)
		}
	}
}

func TestProcessBufferInPlace(t *testing.T) {
	l, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	buf := []float32{1, 2, 3, 4, 5}
	if err := l.ProcessBuffer(buf, buf, 0); err != nil {
		t.Fatal(err)
	}

	for i, want := range []float32{1, 2, 3, 4, 5} {
		if buf[i] != want {
			t.Fatalf("sample %d: got %v want %v", i, buf[i], want)
		}
	}
}

func TestProcessBufferLengthMismatch(t *testing.T) {
	l, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	src := []float32{1, 2, 3, 4}
	dst := make([]float32, 5)

	err = l.ProcessBuffer(dst, src, 1)
	if err == nil {
		t.Fatal("expected error for mismatched lengths")
	}

	// Nothing may be written and no input consumed on failure.
	for i, v := range dst {
		if v != 0 {
			t.Fatalf("dst[%d] written on failed call: %v", i, v)
		}
	}

	if got := l.Read(0); got != 0 {
		t.Fatalf("line state advanced on failed call: %v", got)
	}
}

// --- benchmarks ---

func BenchmarkReadFractionalLinear(b *testing.B) {
	l, _ := New(1024)
	fillRamp(l)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		l.ReadFractional(100.37)
	}
}

func BenchmarkReadFractionalHermite(b *testing.B) {
	l, _ := New(1024, WithMode(Hermite))
	fillRamp(l)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		l.ReadFractional(100.37)
	}
}

func BenchmarkProcessBuffer(b *testing.B) {
	l, _ := New(1024)
	src := make([]float32, 512)
	dst := make([]float32, 512)

	for i := range src {
		src[i] = float32(math.Sin(0.01 * float64(i)))
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = l.ProcessBuffer(dst, src, 100.37)
	}
}
