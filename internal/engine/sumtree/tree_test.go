package sumtree

import (
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"
)

type total struct {
	Sum int
}

func (t total) Add(o total) total { return total{Sum: t.Sum + o.Sum} }

type num int

func (n num) Summary() total { return total{Sum: int(n)} }

type numTree = Tree[num, total]

var sumMetric = MetricFunc[total](func(s total) int { return s.Sum })

// weightMetric is sumMetric that stops at zero-weight items.
type weightMetric struct{}

func (weightMetric) Measure(s total, _ int) int { return s.Sum }
func (weightMetric) LocatesEmpty() bool         { return true }

func seq(n int) []num {
	out := make([]num, n)
	for i := range out {
		out[i] = num(i)
	}
	return out
}

func mustValidate(t *testing.T, tr numTree) {
	t.Helper()
	if err := tr.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestEmpty(t *testing.T) {
	var tr numTree
	if tr.Len() != 0 || !tr.IsEmpty() {
		t.Errorf("zero tree Len() = %d, want 0", tr.Len())
	}
	if tr.Summary().Sum != 0 {
		t.Errorf("zero tree Summary() = %v", tr.Summary())
	}
	if _, ok := tr.Get(0); ok {
		t.Error("Get(0) on empty tree should fail")
	}
	if got := tr.Count(sumMetric, 0); got != 0 {
		t.Errorf("Count(0) = %d, want 0", got)
	}
	if idx, rem := tr.IndexOf(sumMetric, 3); idx != 0 || rem != 3 {
		t.Errorf("IndexOf(3) = (%d, %d), want (0, 3)", idx, rem)
	}
	mustValidate(t, tr)
}

func TestFromItems(t *testing.T) {
	for _, n := range []int{0, 1, 15, 16, 32, 33, 64, 100, 257, 1000, 5000} {
		items := seq(n)
		tr := FromItems[num, total](items)
		if tr.Len() != n {
			t.Errorf("n=%d: Len() = %d", n, tr.Len())
		}
		if diff := cmp.Diff(items, tr.Items(), cmpEmpty()); diff != "" {
			t.Errorf("n=%d: Items() mismatch (-want +got):\n%s", n, diff)
		}
		if want := n * (n - 1) / 2; tr.Summary().Sum != want {
			t.Errorf("n=%d: Summary().Sum = %d, want %d", n, tr.Summary().Sum, want)
		}
		mustValidate(t, tr)
	}
}

func TestFromItemsCopies(t *testing.T) {
	items := seq(10)
	tr := FromItems[num, total](items)
	items[0] = 99
	if got, _ := tr.Get(0); got != 0 {
		t.Errorf("tree aliased caller slice: Get(0) = %d", got)
	}
}

func TestGet(t *testing.T) {
	tr := FromItems[num, total](seq(1000))
	for _, i := range []int{0, 1, 31, 32, 500, 999} {
		got, ok := tr.Get(i)
		if !ok || int(got) != i {
			t.Errorf("Get(%d) = (%d, %v)", i, got, ok)
		}
	}
	if _, ok := tr.Get(1000); ok {
		t.Error("Get(Len) should fail")
	}
	if _, ok := tr.Get(-1); ok {
		t.Error("Get(-1) should fail")
	}
}

func TestConcat(t *testing.T) {
	sizes := []int{0, 1, 5, 16, 31, 33, 100, 300, 2000}
	for _, a := range sizes {
		for _, b := range sizes {
			left := FromItems[num, total](seq(a))
			right := FromItems[num, total](seq(b))
			got := left.Concat(right)

			want := append(seq(a), seq(b)...)
			if diff := cmp.Diff(want, got.Items(), cmpEmpty()); diff != "" {
				t.Fatalf("Concat(%d, %d) mismatch (-want +got):\n%s", a, b, diff)
			}
			mustValidate(t, got)
		}
	}
}

func TestConcatPersistent(t *testing.T) {
	left := FromItems[num, total](seq(100))
	right := FromItems[num, total](seq(7))
	_ = left.Concat(right)
	_ = right.Concat(left)
	if left.Len() != 100 || right.Len() != 7 {
		t.Errorf("operands changed: %d, %d", left.Len(), right.Len())
	}
	if diff := cmp.Diff(seq(100), left.Items()); diff != "" {
		t.Errorf("left changed (-want +got):\n%s", diff)
	}
}

func TestSlice(t *testing.T) {
	tr := FromItems[num, total](seq(1000))
	tests := []struct {
		start, end int
	}{
		{0, 0},
		{0, 1000},
		{0, 1},
		{999, 1000},
		{10, 20},
		{31, 33},
		{100, 900},
		{500, 500},
	}
	for _, tt := range tests {
		got := tr.Slice(tt.start, tt.end)
		if diff := cmp.Diff(seq(1000)[tt.start:tt.end], got.Items(), cmpEmpty()); diff != "" {
			t.Errorf("Slice(%d, %d) mismatch (-want +got):\n%s", tt.start, tt.end, diff)
		}
		mustValidate(t, got)
	}
}

func TestSlicePanics(t *testing.T) {
	tr := FromItems[num, total](seq(10))
	for _, r := range [][2]int{{-1, 2}, {3, 2}, {0, 11}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Slice(%d, %d) did not panic", r[0], r[1])
				}
			}()
			tr.Slice(r[0], r[1])
		}()
	}
}

func TestReplace(t *testing.T) {
	tr := FromItems[num, total](seq(100))
	got := tr.Replace(10, 90, []num{7, 7, 7})

	want := append(append(seq(10), 7, 7, 7), seq(100)[90:]...)
	if diff := cmp.Diff(want, got.Items()); diff != "" {
		t.Errorf("Replace mismatch (-want +got):\n%s", diff)
	}
	mustValidate(t, got)
	if tr.Len() != 100 {
		t.Errorf("original changed: Len() = %d", tr.Len())
	}
}

func TestCountAndIndexOf(t *testing.T) {
	ones := make([]num, 500)
	for i := range ones {
		ones[i] = 1
	}
	tr := FromItems[num, total](ones)

	for _, i := range []int{0, 1, 32, 250, 499, 500} {
		if got := tr.Count(sumMetric, i); got != i {
			t.Errorf("Count(%d) = %d", i, got)
		}
		if got := tr.Count(CountMetric[total]{}, i); got != i {
			t.Errorf("Count(count, %d) = %d", i, got)
		}
		idx, rem := tr.IndexOf(sumMetric, i)
		if idx != i || rem != 0 {
			t.Errorf("IndexOf(%d) = (%d, %d)", i, idx, rem)
		}
	}
}

func TestIndexOfRemainder(t *testing.T) {
	// Items of weight 10: value 25 falls 5 into item 2.
	items := make([]num, 100)
	for i := range items {
		items[i] = 10
	}
	tr := FromItems[num, total](items)

	idx, rem := tr.IndexOf(sumMetric, 25)
	if idx != 2 || rem != 5 {
		t.Errorf("IndexOf(25) = (%d, %d), want (2, 5)", idx, rem)
	}
	idx, rem = tr.IndexOf(sumMetric, 1000)
	if idx != 100 || rem != 0 {
		t.Errorf("IndexOf(total) = (%d, %d), want (100, 0)", idx, rem)
	}
	idx, rem = tr.IndexOf(sumMetric, 1003)
	if idx != 100 || rem != 3 {
		t.Errorf("IndexOf(past end) = (%d, %d), want (100, 3)", idx, rem)
	}
}

func TestIndexOfEmptyItems(t *testing.T) {
	// Zero-weight items at 40..49 sit at position 400 in a tree spanning
	// several leaves.
	items := make([]num, 200)
	for i := range items {
		if i < 40 || i >= 50 {
			items[i] = 10
		}
	}
	tr := FromItems[num, total](items)

	if idx, _ := tr.IndexOf(weightMetric{}, 400); idx != 40 {
		t.Errorf("locating IndexOf(400) = %d, want 40", idx)
	}
	if idx, _ := tr.IndexOf(sumMetric, 400); idx != 50 {
		t.Errorf("skipping IndexOf(400) = %d, want 50", idx)
	}
	if idx, _ := tr.IndexOf(weightMetric{}, 0); idx != 0 {
		t.Errorf("locating IndexOf(0) = %d, want 0", idx)
	}
	if idx, rem := tr.IndexOf(weightMetric{}, 1900); idx != 200 || rem != 0 {
		t.Errorf("locating IndexOf(total) = (%d, %d), want (200, 0)", idx, rem)
	}
}

func TestChunks(t *testing.T) {
	tr := FromItems[num, total](seq(1000))
	it := tr.Chunks(100, 700)

	var got []num
	next := 100
	for it.Next() {
		if it.Start() != next {
			t.Fatalf("chunk Start() = %d, want %d", it.Start(), next)
		}
		if len(it.Items()) == 0 || len(it.Items()) > MaxLeaf {
			t.Fatalf("chunk of %d items", len(it.Items()))
		}
		got = append(got, it.Items()...)
		next += len(it.Items())
	}
	if diff := cmp.Diff(seq(1000)[100:700], got); diff != "" {
		t.Errorf("Chunks mismatch (-want +got):\n%s", diff)
	}

	it.Reset()
	if !it.Next() || it.Start() != 100 {
		t.Errorf("after Reset, Start() = %d, want 100", it.Start())
	}
}

func TestBuilderMixed(t *testing.T) {
	a := FromItems[num, total](seq(300))
	b := NewBuilder[num, total]()
	b.PushItems([]num{1, 2, 3})
	b.Push(a)
	b.PushSlice(a, 17, 250)
	b.PushItems(seq(5))
	got := b.Build()

	var want []num
	want = append(want, 1, 2, 3)
	want = append(want, seq(300)...)
	want = append(want, seq(300)[17:250]...)
	want = append(want, seq(5)...)
	if diff := cmp.Diff(want, got.Items()); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
	mustValidate(t, got)

	if empty := b.Build(); !empty.IsEmpty() {
		t.Errorf("Build after reset Len() = %d", empty.Len())
	}
}

func TestRandomEditsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := FromItems[num, total](seq(50))
	model := seq(50)

	for step := 0; step < 500; step++ {
		start := rng.Intn(len(model) + 1)
		end := start + rng.Intn(len(model)-start+1)
		ins := make([]num, rng.Intn(80))
		for i := range ins {
			ins[i] = num(rng.Intn(100))
		}

		tr = tr.Replace(start, end, ins)
		next := make([]num, 0, len(model)-(end-start)+len(ins))
		next = append(next, model[:start]...)
		next = append(next, ins...)
		next = append(next, model[end:]...)
		model = next

		if err := tr.Validate(); err != nil {
			t.Fatalf("step %d: Validate() = %v", step, err)
		}
		if tr.Len() != len(model) {
			t.Fatalf("step %d: Len() = %d, want %d", step, tr.Len(), len(model))
		}
	}
	if diff := cmp.Diff(model, tr.Items(), cmpEmpty()); diff != "" {
		t.Errorf("final items mismatch (-want +got):\n%s", diff)
	}
}

func TestCountMatchesPrefixSum(t *testing.T) {
	f := func(raw []uint8, at uint16) bool {
		items := make([]num, len(raw))
		for i, v := range raw {
			items[i] = num(v)
		}
		tr := FromItems[num, total](items)
		index := int(at) % (len(items) + 1)
		want := 0
		for _, v := range items[:index] {
			want += int(v)
		}
		return tr.Count(sumMetric, index) == want
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

// cmpEmpty treats nil and empty slices as equal.
func cmpEmpty() cmp.Option {
	return cmp.Comparer(func(a, b []num) bool {
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	})
}
