package portfolio

import "strings"

// SplitList splits s on sep, trims every piece and drops the empty ones.
// Order is preserved and the result is never nil.
func SplitList(s, sep string) []string {
	out := make([]string, 0)
	for _, piece := range strings.Split(s, sep) {
		if piece = strings.TrimSpace(piece); piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

func SplitCommaList(s string) []string {
	return SplitList(s, ",")
}

// SplitLineList splits on newlines; CRLF input is handled by the trim.
func SplitLineList(s string) []string {
	return SplitList(s, "\n")
}

// OptionalString maps blank input to nil.
func OptionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
