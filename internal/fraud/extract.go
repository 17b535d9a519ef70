package fraud

import (
	"regexp"
	"strings"
)

// Rule order matters: phrasing-specific patterns run before the generic
// "username <token>" form, and the last-token fallback only applies when no
// pattern captures.
var identifierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`username\s*(?:is|:|\-|=)\s*([A-Za-z0-9._-]+)`),
	regexp.MustCompile(`my username is\s*([A-Za-z0-9._-]+)`),
	regexp.MustCompile(`it's username\s*([A-Za-z0-9._-]+)`),
	regexp.MustCompile(`username\s+([A-Za-z0-9._-]+)`),
	regexp.MustCompile(`i am\s+([A-Za-z0-9._-]+)`),
	regexp.MustCompile(`i'm\s+([A-Za-z0-9._-]+)`),
	regexp.MustCompile(`it is\s+([A-Za-z0-9._-]+)`),
}

var (
	whitespaceSplit = regexp.MustCompile(`\s+`)
	identifierShape = regexp.MustCompile(`^[a-z0-9._-]+$`)
	identifierLoose = regexp.MustCompile(`^[a-z0-9._-]{2,}$`)
)

const trailingPunct = ".,;!?'\""

// ExtractIdentifier pulls a likely username token out of a free-form
// transcription. Handled shapes:
//
//	"My username is Sam"  -> "sam"
//	"username: neha.r"    -> "neha.r"
//	"It is Megha.S."      -> "megha.s"
//	"sam"                 -> "sam"
//
// Returns the empty string when nothing plausible is found.
func ExtractIdentifier(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	lowered := strings.ToLower(text)
	for _, pattern := range identifierPatterns {
		if match := pattern.FindStringSubmatch(lowered); match != nil {
			return strings.ToLower(strings.Trim(strings.TrimSpace(match[1]), trailingPunct))
		}
	}

	// fallback: the last token, common in speech ("...my username? sam.")
	tokens := whitespaceSplit.Split(text, -1)
	if len(tokens) == 0 {
		return ""
	}

	last := strings.ToLower(strings.Trim(strings.TrimSpace(tokens[len(tokens)-1]), trailingPunct))
	if identifierShape.MatchString(last) {
		return last
	}

	// otherwise the first token that looks identifier-shaped
	for _, token := range tokens {
		candidate := strings.ToLower(strings.Trim(token, trailingPunct))
		if identifierLoose.MatchString(candidate) {
			return candidate
		}
	}

	return ""
}
