package platform

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()

	// Block-level tags become line breaks before tags are stripped
	breakReplacer = strings.NewReplacer(
		"<br>", "\n", "<br/>", "\n", "<br />", "\n",
		"<BR>", "\n", "<BR/>", "\n", "<BR />", "\n",
		"</p>", "\n", "</P>", "\n",
		"</div>", "\n", "</li>", "\n",
	)
)

// PlainText strips markup from an API-provided description. Paragraph
// breaks survive as single newlines; runs of spaces are collapsed.
func PlainText(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}

	text := strictPolicy.Sanitize(breakReplacer.Replace(description))
	text = html.UnescapeString(text)

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if cleaned := strings.Join(strings.Fields(line), " "); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return strings.Join(out, "\n")
}
