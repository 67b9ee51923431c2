package util

import (
	"reflect"
	"testing"
)

func TestSortedStringKeys(t *testing.T) {
	got := SortedStringKeys(map[string]bool{"weibull": true, "beta": true, "normal": false})
	want := []string{"beta", "normal", "weibull"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	empty := SortedStringKeys(map[string]int{})
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestCloneStrings(t *testing.T) {
	in := []string{"int", "real"}
	out := CloneStrings(in)
	out[0] = "vector"
	if in[0] != "int" {
		t.Errorf("clone shares backing array with input")
	}

	if got := CloneStrings(nil); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice for nil input, got %#v", got)
	}
}

func TestContainsString(t *testing.T) {
	tests := []struct {
		values []string
		want   string
		found  bool
	}{
		{[]string{"int", "real"}, "real", true},
		{[]string{"int", "real"}, "vector", false},
		{nil, "int", false},
	}
	for _, tt := range tests {
		if got := ContainsString(tt.values, tt.want); got != tt.found {
			t.Errorf("ContainsString(%v, %q) = %v, want %v", tt.values, tt.want, got, tt.found)
		}
	}
}
