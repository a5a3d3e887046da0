package cmd

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

type jsonStyles struct {
	Key         lipgloss.Style
	String      lipgloss.Style
	Number      lipgloss.Style
	Bool        lipgloss.Style
	Null        lipgloss.Style
	Punctuation lipgloss.Style
}

func defaultJSONStyles() jsonStyles {
	return jsonStyles{
		Key:         lipgloss.NewStyle().Foreground(lipgloss.Color("#B6598A")),
		String:      lipgloss.NewStyle().Foreground(lipgloss.Color("#7EC699")),
		Number:      lipgloss.NewStyle().Foreground(lipgloss.Color("#F08D49")),
		Bool:        lipgloss.NewStyle().Foreground(lipgloss.Color("#CC99CD")),
		Null:        lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")),
		Punctuation: lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")),
	}
}

var jsonLexer = func() chroma.Lexer {
	lexer := lexers.Get("json")
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}()

// highlightJSON styles each JSON token. The text is returned unchanged when
// it cannot be tokenised.
func highlightJSON(text string, st jsonStyles) string {
	if jsonLexer == nil {
		return text
	}
	iterator, err := jsonLexer.Tokenise(nil, text)
	if err != nil {
		return text
	}

	var b strings.Builder
	for _, token := range iterator.Tokens() {
		if token.Type == chroma.EOFType {
			break
		}
		style, ok := st.forToken(token)
		if !ok {
			b.WriteString(token.Value)
			continue
		}
		// Newlines stay outside the escape sequences.
		for i, part := range strings.Split(token.Value, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if part != "" {
				b.WriteString(style.Render(part))
			}
		}
	}
	return b.String()
}

func (st jsonStyles) forToken(token chroma.Token) (lipgloss.Style, bool) {
	switch {
	case token.Type == chroma.NameTag:
		return st.Key, true
	case token.Type.InSubCategory(chroma.LiteralString):
		return st.String, true
	case token.Type.InSubCategory(chroma.LiteralNumber):
		return st.Number, true
	case token.Type.InCategory(chroma.Keyword):
		if token.Value == "null" {
			return st.Null, true
		}
		return st.Bool, true
	case token.Type == chroma.Punctuation:
		return st.Punctuation, true
	default:
		return lipgloss.Style{}, false
	}
}
