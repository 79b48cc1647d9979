package buffer

import (
	"strings"
	"testing"
)

func TestNewZeroFilled(t *testing.T) {
	p, err := New(2, 8)
	if err != nil {
		t.Fatal(err)
	}
	if p.NumChannels() != 2 {
		t.Fatalf("NumChannels() = %d, want 2", p.NumChannels())
	}
	if p.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", p.Len())
	}
	for ch, c := range p.Channels() {
		if len(c) != 8 {
			t.Fatalf("channel %d length = %d, want 8", ch, len(c))
		}
		for i, v := range c {
			if v != 0 {
				t.Fatalf("channel %d sample %d = %v, want 0", ch, i, v)
			}
		}
	}
}

func TestNewZeroLength(t *testing.T) {
	p, err := New(3, 0)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", p.Len())
	}
}

func TestNewRejectsBadShape(t *testing.T) {
	if _, err := New(0, 8); err == nil {
		t.Fatal("expected error for zero channels")
	}
	if _, err := New(2, -1); err == nil {
		t.Fatal("expected error for negative length")
	}
}

func TestChannelsDoNotAlias(t *testing.T) {
	p, err := New(2, 4)
	if err != nil {
		t.Fatal(err)
	}
	p.Channel(0)[3] = 1
	if p.Channel(1)[0] != 0 {
		t.Fatal("write to channel 0 leaked into channel 1")
	}
}

func TestFromChannelsSharesMemory(t *testing.T) {
	chans := [][]float32{{1, 2}, {3, 4}}
	p, err := FromChannels(chans)
	if err != nil {
		t.Fatal(err)
	}
	p.Channel(0)[0] = 99
	if chans[0][0] != 99 {
		t.Fatal("FromChannels should share underlying memory")
	}
}

func TestFromChannelsRejectsMismatch(t *testing.T) {
	_, err := FromChannels([][]float32{make([]float32, 100), make([]float32, 99)})
	if err == nil {
		t.Fatal("expected mismatch error")
	}
	if !strings.Contains(err.Error(), "100") || !strings.Contains(err.Error(), "99") {
		t.Fatalf("error should name both lengths: %v", err)
	}
}

func TestZero(t *testing.T) {
	p, err := New(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	p.Channel(0)[1] = 7
	p.Channel(1)[2] = -3
	p.Zero()
	for ch, c := range p.Channels() {
		for i, v := range c {
			if v != 0 {
				t.Fatalf("channel %d sample %d = %v after Zero", ch, i, v)
			}
		}
	}
}

func TestCopyIsDeep(t *testing.T) {
	p, err := New(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	p.Channel(0)[0] = 1

	q := p.Copy()
	q.Channel(0)[0] = 2
	if p.Channel(0)[0] != 1 {
		t.Fatal("Copy should not share memory")
	}
}
