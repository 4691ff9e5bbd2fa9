package main

// options.go tokenizes an options file into a single argv-like slice of
// tokens, keeping quoted strings intact. This mirrors the teacher's own
// hand-rolled text tokenizers (modspec.go's MakeArgs/Strip) rather than
// reaching for a flags/parsing library.

import (
	"os"
	"strings"

	"github.com/mlange-42/kohonen-go"
)

// tokenizeOptionsFile reads path and splits its contents into
// whitespace-separated tokens, treating a double-quoted run (which may
// contain spaces) as a single token with the quotes removed.
func tokenizeOptionsFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, kohonen.Wrapper(&kohonen.IoError{Err: err}, "tokenizeOptionsFile")
	}

	return tokenize(string(raw)), nil
}

func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	inQuotes := false
	hasCur := false

	flush := func() {
		if hasCur {
			tokens = append(tokens, cur.String())
			cur.Reset()
			hasCur = false
		}
	}

	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			hasCur = true
		case !inQuotes && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
		default:
			cur.WriteRune(r)
			hasCur = true
		}
	}
	flush()

	return tokens
}
