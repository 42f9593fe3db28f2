package lazylist

import (
	"fmt"
	"slices"
	"strings"
	"testing"
)

func square(x int) int { return x * x }

func TestAt(t *testing.T) {
	l := New([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, square)

	if l.Len() != 10 {
		t.Errorf("Len = %d, want 10", l.Len())
	}
	if got := l.At(3); got != 9 {
		t.Errorf("At(3) = %d, want 9", got)
	}
}

func TestAtOutOfRange(t *testing.T) {
	l := New([]int{1}, square)

	defer func() {
		if recover() == nil {
			t.Error("At should panic out of range")
		}
	}()
	l.At(1)
}

func TestValues(t *testing.T) {
	l := New([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, square)

	got := slices.Collect(l.Values())
	want := []int{0, 1, 4, 9, 16, 25, 36, 49, 64, 81}
	if !slices.Equal(got, want) {
		t.Errorf("Values = %v, want %v", got, want)
	}
}

func TestAllEarlyStop(t *testing.T) {
	l := New([]string{"a", "b", "c"}, strings.ToUpper)

	var seen []string
	for i, v := range l.All() {
		seen = append(seen, fmt.Sprintf("%d=%s", i, v))
		if i == 1 {
			break
		}
	}
	if strings.Join(seen, ",") != "0=A,1=B" {
		t.Errorf("seen = %v", seen)
	}
}

func TestNoCaching(t *testing.T) {
	calls := 0
	l := New([]int{2}, func(x int) int {
		calls++
		return x * 10
	})

	l.At(0)
	l.At(0)
	for range l.Values() {
	}
	if calls != 3 {
		t.Errorf("mapping ran %d times, want 3", calls)
	}
}

func TestSourceWritesVisible(t *testing.T) {
	src := []int{1, 2}
	l := New(src, square)

	src[0] = 5
	if got := l.At(0); got != 25 {
		t.Errorf("At(0) = %d, want 25", got)
	}
}

func TestEmpty(t *testing.T) {
	l := New[int, int](nil, square)

	if l.Len() != 0 {
		t.Errorf("Len = %d", l.Len())
	}
	for range l.All() {
		t.Error("empty list should yield nothing")
	}
}
