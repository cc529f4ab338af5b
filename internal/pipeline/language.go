package pipeline

import (
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/alnah/go-nbmd/internal/notebook"
)

// ResolveLanguage turns a notebook language name into a fence tag.
// Names chroma knows ("Python", "python3", "py") map to the lexer's
// canonical alias. Unknown names are lowercased. Empty falls back to
// fallback, then to notebook.DefaultLanguage.
func ResolveLanguage(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(fallback)
	}
	if name == "" {
		return notebook.DefaultLanguage
	}

	lexer := lexers.Get(name)
	if lexer == nil {
		return strings.ToLower(name)
	}
	return canonicalAlias(lexer.Config(), strings.ToLower(name))
}

// canonicalAlias prefers the alias spelled like the lexer name, then the
// requested name, then the first alias.
func canonicalAlias(cfg *chroma.Config, requested string) string {
	lowerName := strings.ToLower(cfg.Name)
	if slices.Contains(cfg.Aliases, lowerName) {
		return lowerName
	}
	if slices.Contains(cfg.Aliases, requested) {
		return requested
	}
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return lowerName
}
