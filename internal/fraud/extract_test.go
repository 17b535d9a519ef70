package fraud

import "testing"

func TestExtractIdentifier(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "username is", raw: "My username is Sam", want: "sam"},
		{name: "username colon", raw: "username: neha.r", want: "neha.r"},
		{name: "username dash", raw: "username - raj.kumar", want: "raj.kumar"},
		{name: "username equals", raw: "username=sam", want: "sam"},
		{name: "bare username prefix", raw: "username sam", want: "sam"},
		{name: "i am", raw: "Hello, I am Megha.S.", want: "megha.s"},
		{name: "i'm", raw: "i'm raj-k", want: "raj-k"},
		{name: "it is", raw: "It is Megha.S.", want: "megha.s"},
		{name: "bare token", raw: "sam", want: "sam"},
		{name: "last token fallback", raw: "you can call me sneha_rao.", want: "sneha_rao"},
		{name: "trailing punctuation stripped", raw: "my username is sam!", want: "sam"},
		{name: "first shaped token fallback", raw: "neha.r (that is me)", want: "neha.r"},
		{name: "empty input", raw: "", want: ""},
		{name: "whitespace only", raw: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractIdentifier(tt.raw); got != tt.want {
				t.Fatalf("ExtractIdentifier(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestExtractIdentifierPatternOrder(t *testing.T) {
	// "username is" must capture before the generic last-token fallback
	if got := ExtractIdentifier("my username is sam not neha"); got != "sam" {
		t.Fatalf("expected pattern capture to win over fallback, got %q", got)
	}
}
