package jsonutils

import "testing"

func TestToJSON(t *testing.T) {
	got := ToJSON(map[string]int{"id": 1})
	want := "{\n  \"id\": 1\n}"
	if got != want {
		t.Errorf("ToJSON = %q, want %q", got, want)
	}
	if ToJSON(func() {}) != "" {
		t.Error("expected empty string for unmarshalable value")
	}
}
