// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/concierge-tui/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeBlock renders a fenced code block with syntax highlighting and
// line numbers. Used when markdown rendering is disabled but replies
// still contain code fences.
type CodeBlock struct {
	Language string
	Code     string
	MaxWidth int
}

// NewCodeBlock creates a new code block.
func NewCodeBlock(language, code string) CodeBlock {
	return CodeBlock{
		Language: language,
		Code:     code,
		MaxWidth: 80,
	}
}

// Render renders the code block with styling.
func (c CodeBlock) Render() string {
	code := strings.TrimSpace(c.Code)

	language := c.Language
	if language == "" {
		language = detectLanguage(code)
	}

	lines := strings.Split(highlightCode(code, language), "\n")

	lineNumStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(4).
		Align(lipgloss.Right).
		MarginRight(1)

	rendered := make([]string, 0, len(lines))
	for i, line := range lines {
		// chroma already emitted ANSI colors for the line itself.
		rendered = append(rendered, lineNumStyle.Render(strconv.Itoa(i+1))+line)
	}

	var header string
	if c.Language != "" {
		header = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Background(styles.Overlay).
			Padding(0, 1).
			Bold(true).
			Render(c.Language) + "\n"
	}

	maxWidth := c.MaxWidth - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 1).
		MaxWidth(maxWidth).
		Render(header + strings.Join(rendered, "\n"))
}

// ParseCodeBlocks extracts fenced code blocks from text and replaces
// them with rendered versions, leaving the surrounding prose intact.
func ParseCodeBlocks(text string, maxWidth int) string {
	lines := strings.Split(text, "\n")
	var result []string
	var codeLines []string
	var language string
	var inCodeBlock bool

	flush := func() {
		cb := NewCodeBlock(language, strings.Join(codeLines, "\n"))
		cb.MaxWidth = maxWidth
		result = append(result, cb.Render())
		codeLines = nil
		language = ""
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "```"):
			if inCodeBlock {
				flush()
				inCodeBlock = false
			} else {
				language = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				inCodeBlock = true
			}
		case inCodeBlock:
			codeLines = append(codeLines, line)
		default:
			result = append(result, line)
		}
	}

	// Unclosed fence: render what we have.
	if inCodeBlock && len(codeLines) > 0 {
		flush()
	}

	return strings.Join(result, "\n")
}

// RenderInlineCode renders `code` spans with a subtle background.
func RenderInlineCode(code string) string {
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.Teal).
		Padding(0, 1).
		Render(code)
}

// =============================================================================
// SYNTAX HIGHLIGHTING
// =============================================================================

// highlightCode applies chroma syntax highlighting for terminal output.
// Returns the code unchanged when highlighting fails.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return buf.String()
}

// detectLanguage guesses the language of the given code.
func detectLanguage(code string) string {
	if lexer := lexers.Analyse(code); lexer != nil {
		return lexer.Config().Name
	}
	return ""
}
