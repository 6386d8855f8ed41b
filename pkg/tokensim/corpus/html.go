package corpus

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
)

// ExtractText returns the visible text of an HTML document. Script, style
// and template contents are skipped; text nodes are joined by single spaces.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("%w: parse html: %w", internalerr.ErrInvalidInput, err)
	}

	var parts []string
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "template", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extract(child)
		}
	}
	extract(doc)

	return strings.Join(parts, " "), nil
}
