package ui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"schemacore/pkg/ui/base"
)

var keywords = []string{
	"create", "alter", "drop", "table", "view", "type", "like", "reference",
	"references", "operator", "device", "class", "attributes", "representation",
	"default", "special", "constraint", "column", "key", "tags", "static",
	"nil", "var", "const", "begin", "end", "update", "delete", "require",
	"cascade", "clear", "set", "row", "list", "generic", "where", "and", "or",
	"not", "SetLibrary",
}

type tokenKind int

const (
	tokenPlain tokenKind = iota
	tokenKeyword
	tokenType
	tokenString
	tokenNumber
	tokenComment
)

// ScriptHighlighter colors emitted scripts. It works line by line so line
// breaks survive, and word by word within a line.
type ScriptHighlighter struct {
	keywords map[string]bool
	styles   map[tokenKind]lipgloss.Style
}

func NewScriptHighlighter(palette base.ColorPalette) *ScriptHighlighter {
	h := &ScriptHighlighter{
		keywords: make(map[string]bool, len(keywords)),
		styles: map[tokenKind]lipgloss.Style{
			tokenKeyword: lipgloss.NewStyle().Foreground(palette.Keyword).Bold(true),
			tokenType:    lipgloss.NewStyle().Foreground(palette.Type),
			tokenString:  lipgloss.NewStyle().Foreground(palette.String),
			tokenNumber:  lipgloss.NewStyle().Foreground(palette.Number),
			tokenComment: lipgloss.NewStyle().Foreground(palette.Comment).Italic(true),
		},
	}
	for _, kw := range keywords {
		h.keywords[strings.ToLower(kw)] = true
	}
	return h
}

func (h *ScriptHighlighter) classify(word string) tokenKind {
	clean := strings.TrimRight(word, ",;{}()")
	clean = strings.TrimLeft(clean, "{(")
	switch {
	case clean == "":
		return tokenPlain
	case strings.HasPrefix(word, "//"):
		return tokenComment
	case strings.HasPrefix(clean, `"`) || strings.HasPrefix(clean, "'"):
		return tokenString
	case h.keywords[strings.ToLower(clean)]:
		return tokenKeyword
	case isNumeric(clean):
		return tokenNumber
	case strings.HasPrefix(clean, ".System."):
		return tokenType
	default:
		return tokenPlain
	}
}

// Highlight renders script with styled tokens. Runs of spaces collapse to
// one space; line structure is kept.
func (h *ScriptHighlighter) Highlight(script string) string {
	lines := strings.Split(script, "\n")
	for i, line := range lines {
		lines[i] = h.highlightLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *ScriptHighlighter) highlightLine(line string) string {
	words := strings.Fields(line)
	highlighted := make([]string, 0, len(words))
	for i, word := range words {
		kind := h.classify(word)
		if kind == tokenComment {
			rest := strings.Join(words[i:], " ")
			highlighted = append(highlighted, h.styles[tokenComment].Render(rest))
			break
		}
		if style, ok := h.styles[kind]; ok {
			highlighted = append(highlighted, style.Render(word))
			continue
		}
		highlighted = append(highlighted, word)
	}
	return strings.Join(highlighted, " ")
}

// isNumeric checks if a string represents a number
func isNumeric(s string) bool {
	if s == "" || s == "-" || s == "." {
		return false
	}
	for _, c := range s {
		if !unicode.IsDigit(c) && c != '.' && c != '-' {
			return false
		}
	}
	return true
}
