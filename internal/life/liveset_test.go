package life

import (
	"reflect"
	"testing"
)

func TestLiveSetToggle(t *testing.T) {
	s := NewLiveSet()
	if !s.Toggle("u2") {
		t.Error("expected u2 to become alive")
	}
	if !s.Contains("u2") || s.Len() != 1 {
		t.Errorf("unexpected set %v", s)
	}
	if s.Toggle("u2") {
		t.Error("expected u2 to die")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty set, got %v", s)
	}
}

func TestLiveSetEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b LiveSet
		want bool
	}{
		{"both empty", NewLiveSet(), NewLiveSet(), true},
		{"same cells", NewLiveSet("u2", "u3"), NewLiveSet("u3", "u2"), true},
		{"different size", NewLiveSet("u2"), NewLiveSet("u2", "u3"), false},
		{"different cells", NewLiveSet("u2", "u8"), NewLiveSet("u2", "u3"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLiveSetCloneIsIndependent(t *testing.T) {
	s := NewLiveSet("u2")
	c := s.Clone()
	c.Add("u3")
	if s.Contains("u3") {
		t.Error("clone shares storage with original")
	}
}

func TestSorted(t *testing.T) {
	got := NewLiveSet("u9", "u2", "u3").Sorted()
	want := []string{"u2", "u3", "u9"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sorted() = %v, want %v", got, want)
	}
}

func TestDiff(t *testing.T) {
	born, died := Diff(NewLiveSet("u2", "u3", "u8"), NewLiveSet("u3", "u8", "u9", "ub"))
	if born != 2 || died != 1 {
		t.Errorf("Diff() = (%d, %d), want (2, 1)", born, died)
	}
}
