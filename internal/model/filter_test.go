package model

import "testing"

func TestSortByY_Stable(t *testing.T) {
	obs := []TextObservation{
		{Y: 30, Text: "c"},
		{Y: 10, Text: "a1"},
		{Y: 20, Text: "b"},
		{Y: 10, Text: "a2"},
	}
	sorted := SortByY(obs)
	want := []string{"a1", "a2", "b", "c"}
	for i, w := range want {
		if sorted[i].Text != w {
			t.Errorf("sorted[%d] = %q, want %q", i, sorted[i].Text, w)
		}
	}
	if obs[0].Text != "c" {
		t.Error("SortByY must not reorder its input")
	}
}

func TestFilterBand(t *testing.T) {
	obs := []TextObservation{
		{Y: 50, Text: "title bar"},
		{Y: 400, Text: "message"},
		{Y: 1900, Text: "input box"},
	}
	tests := []struct {
		name        string
		height      int
		top, bottom float64
		want        int
	}{
		{"full band passes through", 2000, 0, 1, 3},
		{"unknown height passes through", 0, 0.1, 0.9, 3},
		{"middle band", 2000, 0.1, 0.9, 1},
		{"top only", 2000, 0.1, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterBand(obs, tt.height, tt.top, tt.bottom)
			if len(got) != tt.want {
				t.Errorf("FilterBand() kept %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestHasIdentifier(t *testing.T) {
	obs := []TextObservation{{Identifier: "9u"}, {Identifier: "si5"}}
	if !HasIdentifier(obs, "9u") {
		t.Error("expected 9u to be found")
	}
	if HasIdentifier(obs, "9w") {
		t.Error("9w should not be found")
	}
	if HasIdentifier(obs, "") {
		t.Error("empty identifier never matches")
	}
}

func TestFindByIdentifier(t *testing.T) {
	obs := []TextObservation{{Identifier: "si5", Text: "Alice"}, {Identifier: "si5", Text: "Bob"}}
	got, ok := FindByIdentifier(obs, "si5")
	if !ok || got.Text != "Alice" {
		t.Errorf("FindByIdentifier() = %q, %v; want Alice, true", got.Text, ok)
	}
	if _, ok := FindByIdentifier(obs, "x"); ok {
		t.Error("expected miss")
	}
}
