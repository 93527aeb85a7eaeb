package heightrope

import (
	"math"
	"math/rand"
	"testing"
	"testing/quick"
)

func h(f float64) Height { return FromFloat64(f) }

func TestHeightConversion(t *testing.T) {
	tests := []struct {
		in   float64
		raw  uint64
		back float64
	}{
		{0, 0, 0},
		{1, 256, 1},
		{1.5, 384, 1.5},
		{0.001, 0, 0},
		{0.003, 1, 1.0 / 256},
		{-3, 0, 0},
	}
	for _, tt := range tests {
		got := FromFloat64(tt.in)
		if got.RawFrac() != tt.raw {
			t.Errorf("FromFloat64(%v).RawFrac() = %d, want %d", tt.in, got.RawFrac(), tt.raw)
		}
		if got.Float64() != tt.back {
			t.Errorf("FromFloat64(%v).Float64() = %v, want %v", tt.in, got.Float64(), tt.back)
		}
	}
	for _, f := range []float64{math.Inf(1), math.MaxFloat64, 1 << 56, 1 << 60} {
		if got := FromFloat64(f); got != Max {
			t.Errorf("FromFloat64(%g) = %d, want Max", f, got)
		}
	}
	if got := FromFloat64(math.NaN()); got != Zero {
		t.Errorf("FromFloat64(NaN) = %d, want Zero", got)
	}
	if got, want := FromFloat64(1<<55), FromRawFrac(1<<63); got != want {
		t.Errorf("FromFloat64(2^55) = %d, want %d", got, want)
	}
	if FromRawFrac(512) != h(2) {
		t.Errorf("FromRawFrac(512) = %d, want %d", FromRawFrac(512), h(2))
	}
}

func TestHeightMonoid(t *testing.T) {
	assoc := func(a, b, c uint32) bool {
		x, y, z := Height(a), Height(b), Height(c)
		return x.Add(y).Add(z) == x.Add(y.Add(z))
	}
	if err := quick.Check(assoc, nil); err != nil {
		t.Errorf("associativity: %v", err)
	}
	identity := func(a uint32) bool {
		x := Height(a)
		return x.Add(Zero) == x && Zero.Add(x) == x
	}
	if err := quick.Check(identity, nil); err != nil {
		t.Errorf("identity: %v", err)
	}
}

func TestPushGet(t *testing.T) {
	var s Sequence[string]
	s.Push(h(1), "a")
	s.Push(h(2.5), "b")
	s.Push(Zero, "c")

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if s.Height() != h(3.5) {
		t.Errorf("Height() = %v, want 3.5", s.Height().Float64())
	}
	hh, v, ok := s.Get(1)
	if !ok || hh != h(2.5) || v != "b" {
		t.Errorf("Get(1) = (%v, %q, %v)", hh.Float64(), v, ok)
	}
	if _, _, ok := s.Get(3); ok {
		t.Error("Get(3) should fail")
	}
}

func TestMutators(t *testing.T) {
	var s Sequence[int]
	for i := 0; i < 100; i++ {
		s.Push(h(1), i)
	}
	snap := s.Snapshot()

	s.Insert(0, h(2), -1)
	s.Set(50, h(3), 500)
	s.Remove(100)

	if s.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", s.Len())
	}
	if _, v, _ := s.Get(0); v != -1 {
		t.Errorf("Get(0) = %d, want -1", v)
	}
	if hh, v, _ := s.Get(50); v != 500 || hh != h(3) {
		t.Errorf("Get(50) = (%v, %d)", hh.Float64(), v)
	}
	if want := h(2 + 3 + 98); s.Height() != want {
		t.Errorf("Height() = %v, want %v", s.Height().Float64(), want.Float64())
	}

	if snap.Len() != 100 || snap.Height() != h(100) {
		t.Errorf("snapshot changed: Len %d Height %v", snap.Len(), snap.Height().Float64())
	}
	if _, v, _ := snap.Get(0); v != 0 {
		t.Errorf("snapshot Get(0) = %d, want 0", v)
	}
	if err := s.Validate(); err != nil {
		t.Error(err)
	}
}

func TestMutatorPanics(t *testing.T) {
	cases := map[string]func(s *Sequence[int]){
		"insert past end": func(s *Sequence[int]) { s.Insert(4, Zero, 0) },
		"set at len":      func(s *Sequence[int]) { s.Set(3, Zero, 0) },
		"remove at len":   func(s *Sequence[int]) { s.Remove(3) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			var s Sequence[int]
			for i := 0; i < 3; i++ {
				s.Push(h(1), i)
			}
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			fn(&s)
		})
	}
}

func TestHeightIndexRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var b Builder[int]
	for i := 0; i < 1000; i++ {
		b.PushEntry(FromRawFrac(uint64(1+rng.Intn(1000))), i)
	}
	s := b.Build()

	for i := 0; i <= s.Len(); i++ {
		if got := s.IndexOfHeight(s.HeightOfIndex(i)); got != i {
			t.Fatalf("IndexOfHeight(HeightOfIndex(%d)) = %d", i, got)
		}
	}
}

func TestIndexOfHeightInside(t *testing.T) {
	var s Sequence[string]
	s.Push(h(1), "a")
	s.Push(h(2), "b")
	s.Push(h(1), "c")

	tests := []struct {
		height float64
		want   int
	}{
		{0, 0},
		{0.5, 0},
		{1, 1},
		{2.99, 1},
		{3, 2},
		{3.5, 2},
		{4, 3},
		{10, 3},
	}
	for _, tt := range tests {
		if got := s.IndexOfHeight(h(tt.height)); got != tt.want {
			t.Errorf("IndexOfHeight(%v) = %d, want %d", tt.height, got, tt.want)
		}
	}
}

func TestIndexOfHeightZeroHeight(t *testing.T) {
	var s Sequence[string]
	s.Push(h(1), "a")
	s.Push(Zero, "empty1")
	s.Push(Zero, "empty2")
	s.Push(h(1), "b")
	s.Push(Zero, "tail")

	if got := s.IndexOfHeight(h(1)); got != 1 {
		t.Errorf("IndexOfHeight(1) = %d, want first zero-height element 1", got)
	}
	if got := s.IndexOfHeight(h(2)); got != 4 {
		t.Errorf("IndexOfHeight(total) = %d, want trailing zero-height element 4", got)
	}
	if got := s.IndexOfHeight(Zero); got != 0 {
		t.Errorf("IndexOfHeight(0) = %d, want 0", got)
	}
}

func TestIndexOfHeightZeroHeightAcrossLeaves(t *testing.T) {
	// 40 elements of height 1 put the zero-height run beyond the first leaf.
	var b Builder[int]
	for i := 0; i < 40; i++ {
		b.PushEntry(h(1), i)
	}
	for i := 0; i < 5; i++ {
		b.PushEntry(Zero, 100+i)
	}
	for i := 0; i < 100; i++ {
		b.PushEntry(h(1), 200+i)
	}
	s := b.Build()

	if got := s.IndexOfHeight(h(40)); got != 40 {
		t.Errorf("IndexOfHeight(40) = %d, want 40", got)
	}
	if got := s.IndexOfHeight(h(41)); got != 46 {
		t.Errorf("IndexOfHeight(41) = %d, want 46", got)
	}
	if got := s.IndexOfHeight(s.Height()); got != s.Len() {
		t.Errorf("IndexOfHeight(total) = %d, want Len %d", got, s.Len())
	}
}

func TestBaseMetric(t *testing.T) {
	var s Sequence[int]
	for i := 0; i < 70; i++ {
		s.Push(h(2), i)
	}
	if got := s.Count(BaseMetric{}, 33); got != 33 {
		t.Errorf("Count(base, 33) = %d", got)
	}
	if i, rem := s.IndexOf(BaseMetric{}, 33); i != 33 || rem != 0 {
		t.Errorf("IndexOf(base, 33) = (%d, %d)", i, rem)
	}
	if got := s.Count(HeightMetric{}, 33); got != int(h(66)) {
		t.Errorf("Count(height, 33) = %d, want %d", got, h(66))
	}
}

func TestBuilderPushSlice(t *testing.T) {
	var s Sequence[int]
	for i := 0; i < 200; i++ {
		s.Push(h(1), i)
	}

	var b Builder[int]
	b.PushEntry(h(5), -1)
	b.PushSlice(s, 150, 200)
	b.PushEntry(h(5), -2)
	got := b.Build()

	if got.Len() != 52 {
		t.Fatalf("Len() = %d, want 52", got.Len())
	}
	if got.Height() != h(60) {
		t.Errorf("Height() = %v, want 60", got.Height().Float64())
	}
	want := []int{-1}
	for i := 150; i < 200; i++ {
		want = append(want, i)
	}
	want = append(want, -2)
	i := 0
	for idx, e := range got.All() {
		if idx != i || e.Value != want[i] {
			t.Fatalf("All() yielded (%d, %d), want (%d, %d)", idx, e.Value, i, want[i])
		}
		i++
	}
	if i != len(want) {
		t.Errorf("All() yielded %d entries, want %d", i, len(want))
	}
}

func TestConcatSlice(t *testing.T) {
	var a, b Sequence[int]
	for i := 0; i < 50; i++ {
		a.Push(h(1), i)
		b.Push(h(2), 50+i)
	}
	c := a.Concat(b)
	if c.Len() != 100 || c.Height() != h(150) {
		t.Errorf("Concat: Len %d Height %v", c.Len(), c.Height().Float64())
	}
	mid := c.Slice(40, 60)
	if mid.Len() != 20 || mid.Height() != h(10+20) {
		t.Errorf("Slice: Len %d Height %v", mid.Len(), mid.Height().Float64())
	}
	if _, v, _ := mid.Get(0); v != 40 {
		t.Errorf("Slice Get(0) = %d, want 40", v)
	}
}

func TestChunksCoverRange(t *testing.T) {
	var s Sequence[int]
	for i := 0; i < 300; i++ {
		s.Push(h(1), i)
	}
	it := s.Chunks(10, 290)
	next := 10
	for it.Next() {
		for _, e := range it.Items() {
			if e.Value != next {
				t.Fatalf("chunk value %d, want %d", e.Value, next)
			}
			next++
		}
	}
	if next != 290 {
		t.Errorf("iteration ended at %d, want 290", next)
	}
}

func TestRandomOpsKeepLeafInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	var s Sequence[int]
	var model []Height

	for step := 0; step < 2000; step++ {
		hh := FromRawFrac(uint64(rng.Intn(4) * 128))
		switch op := rng.Intn(4); {
		case op == 0 || len(model) == 0:
			i := rng.Intn(len(model) + 1)
			s.Insert(i, hh, step)
			model = append(model[:i], append([]Height{hh}, model[i:]...)...)
		case op == 1:
			i := rng.Intn(len(model))
			s.Remove(i)
			model = append(model[:i], model[i+1:]...)
		case op == 2:
			i := rng.Intn(len(model))
			s.Set(i, hh, step)
			model[i] = hh
		default:
			s.Push(hh, step)
			model = append(model, hh)
		}
		if err := s.Validate(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
	}

	var sum Height
	for i, mh := range model {
		if got := s.HeightOfIndex(i); got != sum {
			t.Fatalf("HeightOfIndex(%d) = %d, want %d", i, got, sum)
		}
		sum += mh
	}
	if s.Height() != sum {
		t.Errorf("Height() = %d, want %d", s.Height(), sum)
	}
}

func BenchmarkIndexOfHeight(b *testing.B) {
	var bld Builder[int]
	for i := 0; i < 100000; i++ {
		bld.PushEntry(h(1), i)
	}
	s := bld.Build()
	total := int(s.Height())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.IndexOfHeight(Height(i % total))
	}
}
