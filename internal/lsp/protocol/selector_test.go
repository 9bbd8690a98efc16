package protocol

import "testing"

func TestDocumentFilterMatches(t *testing.T) {
	for _, tc := range []struct {
		filter           DocumentFilter
		scheme, language string
		want             bool
	}{
		{DocumentFilter{Scheme: "file", Language: "sml"}, "file", "sml", true},
		{DocumentFilter{Scheme: "file", Language: "sml"}, "untitled", "sml", false},
		{DocumentFilter{Scheme: "file", Language: "sml"}, "file", "go", false},
		{DocumentFilter{Scheme: "file"}, "file", "anything", true},
		{DocumentFilter{Language: "sml"}, "vsls", "sml", true},
		{DocumentFilter{}, "file", "sml", true},
	} {
		got := tc.filter.Matches(tc.scheme, tc.language)
		if got != tc.want {
			t.Errorf("filter %+v matches (%q, %q) is %v; expected %v",
				tc.filter, tc.scheme, tc.language, got, tc.want)
		}
	}
}

func TestDocumentSelectorMatches(t *testing.T) {
	sel := DocumentSelector{
		{Scheme: "file", Language: "sml"},
	}
	if !sel.Matches("file", "sml") {
		t.Errorf("selector %+v does not match local sml document", sel)
	}
	if sel.Matches("file", "python") {
		t.Errorf("selector %+v matches python document", sel)
	}
	var empty DocumentSelector
	if empty.Matches("file", "sml") {
		t.Errorf("empty selector matches")
	}
}
