package repository

import (
	"regexp"
	"testing"
)

func TestSearchRegexQuotesMetacharacters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		term    string
		match   string
		noMatch string
	}{
		{name: "plain term", term: "acme", match: "ACME Primary", noMatch: "Northside"},
		{name: "dot is literal", term: "j.smith", match: "j.smith@example.com", noMatch: "jasmith@example.com"},
		{name: "parens are literal", term: "lab (annex)", match: "Science lab (annex)", noMatch: "Science lab annex"},
		{name: "plus is literal", term: "ops+leads", match: "ops+leads@example.com", noMatch: "opsleads@example.com"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pattern := searchRegex(tt.term)
			if pattern.Options != "i" {
				t.Fatalf("options = %q, want i", pattern.Options)
			}
			re, err := regexp.Compile("(?i)" + pattern.Pattern)
			if err != nil {
				t.Fatalf("pattern %q does not compile: %v", pattern.Pattern, err)
			}
			if !re.MatchString(tt.match) {
				t.Errorf("pattern %q should match %q", pattern.Pattern, tt.match)
			}
			if re.MatchString(tt.noMatch) {
				t.Errorf("pattern %q should not match %q", pattern.Pattern, tt.noMatch)
			}
		})
	}
}
