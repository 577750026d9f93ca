package names

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: "   \t ", want: ""},
		{name: "plain", raw: "Mbabane Swallows", want: "mbabane swallows"},
		{name: "fc suffix", raw: "Mbabane Swallows FC", want: "mbabane swallows"},
		{name: "dotted suffix", raw: "MBABANE SWALLOWS F.C.", want: "mbabane swallows"},
		{name: "spaced dotted suffix", raw: "Mbabane Swallows F. C.", want: "mbabane swallows"},
		{name: "football club suffix", raw: "Manzini Wanderers Football Club", want: "manzini wanderers"},
		{name: "prefix", raw: "FC Bulembu", want: "bulembu"},
		{name: "association suffix", raw: "Young Buffaloes Association", want: "young buffaloes"},
		{name: "stacked affixes", raw: "FC Royal Leopards F.C.", want: "royal leopards"},
		{name: "diacritics", raw: "Mbábane Swállows", want: "mbabane swallows"},
		{name: "collapse whitespace", raw: "  Green    Mamba  ", want: "green mamba"},
		{name: "hyphen becomes space", raw: "Moneni-Pirates", want: "moneni pirates"},
		{name: "apostrophe dropped", raw: "Tinyosi's XI", want: "tinyosis xi"},
		{name: "affix alone is kept", raw: "F.C.", want: "fc"},
		{name: "digits kept", raw: "Highlanders 1952", want: "highlanders 1952"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tc.raw); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Mbabane Swallows FC",
		"FC FC",
		"Association FC",
		"football club",
		"  Ézulwini   United--F.C. ",
		"Royal Leopards F C",
		"",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestNormalize_CaseAndPunctuationInvariant(t *testing.T) {
	t.Parallel()

	if Normalize("Mbabane Swallows FC") != Normalize("mbabane swallows f.c.") {
		t.Fatalf("expected spelling variants to share a key")
	}
	if !Equal("MBABANE SWALLOWS F.C.", "Mbabane Swallows") {
		t.Fatalf("expected Equal to report variants as equal")
	}
	if Equal("", "  ") {
		t.Fatalf("empty keys must never be equal")
	}
}
