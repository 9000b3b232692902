package keywords

import "testing"

func TestFilterKeywordsPolicy(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		positive   bool
		rejected   []string
		kept       []string
	}{
		{
			name:       "strips punctuation",
			candidates: []string{"battery-life!!"},
			kept:       []string{"batterylife"},
		},
		{
			name:       "rejects empty after cleaning",
			candidates: []string{"!!??"},
			rejected:   []string{"!!??"},
		},
		{
			name:       "rejects domain stopword at either edge",
			candidates: []string{"lenovo keyboard", "keyboard lenovo", "great keyboard"},
			kept:       []string{"great keyboard"},
			rejected:   []string{"lenovo keyboard", "keyboard lenovo"},
		},
		{
			name:       "positive bucket rejects negative concepts",
			candidates: []string{"screen glare", "screen brightness"},
			positive:   true,
			kept:       []string{"screen brightness"},
			rejected:   []string{"screen glare"},
		},
		{
			name:       "positive bucket requires technical concept",
			candidates: []string{"nice vibes", "nice keyboard"},
			positive:   true,
			kept:       []string{"nice keyboard"},
			rejected:   []string{"nice vibes"},
		},
		{
			name:       "positive bucket rejects negative-reading phrases",
			candidates: []string{"worst battery", "great battery"},
			positive:   true,
			kept:       []string{"great battery"},
			rejected:   []string{"worst battery"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterKeywords(tt.candidates, tt.positive)

			kept := make(map[string]bool, len(got))
			for _, kw := range got {
				kept[kw] = true
			}
			for _, want := range tt.kept {
				if !kept[want] {
					t.Errorf("expected %q to survive, got %v", want, got)
				}
			}
			for _, reject := range tt.rejected {
				if kept[reject] {
					t.Errorf("expected %q to be rejected, got %v", reject, got)
				}
			}
		})
	}
}

func TestFilterKeywordsDedupesAndCaps(t *testing.T) {
	candidates := []string{
		"great battery", "Great Battery", "fast cpu", "gorgeous screen",
		"solid keyboard", "quiet thermal", "sharp display", "snappy ssd",
	}

	got := filterKeywords(candidates, false)

	if len(got) > MaxKeywords {
		t.Errorf("got %d keywords, cap is %d", len(got), MaxKeywords)
	}

	seen := make(map[string]bool)
	for _, kw := range got {
		if seen[kw] {
			t.Errorf("duplicate keyword %q", kw)
		}
		seen[kw] = true
	}
}

func TestFilterKeywordsPreservesRankOrder(t *testing.T) {
	got := filterKeywords([]string{"gorgeous screen", "solid keyboard"}, false)
	if len(got) != 2 || got[0] != "gorgeous screen" || got[1] != "solid keyboard" {
		t.Errorf("extraction rank not preserved: %v", got)
	}
}
