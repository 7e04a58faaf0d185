package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// containerStrategy locates the main content container of an article page.
// Strategies are tried in priority order until one yields a container with
// any text in it.
type containerStrategy interface {
	name() string
	locate(doc *goquery.Document) *goquery.Selection
}

// byClass matches a fixed ordered list of known content classes for the
// target site family.
type byClass struct {
	classes []string
}

func (s byClass) name() string { return "by-class" }

func (s byClass) locate(doc *goquery.Document) *goquery.Selection {
	for _, class := range s.classes {
		sel := doc.Find("div." + class).First()
		if sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// byTag falls back to a semantic container tag.
type byTag struct {
	tag string
}

func (s byTag) name() string { return "by-tag" }

func (s byTag) locate(doc *goquery.Document) *goquery.Selection {
	sel := doc.Find(s.tag).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel
}

// byBody is the last resort: the whole document body with boilerplate
// subtrees decomposed.
type byBody struct {
	boilerplate []string
}

func (s byBody) name() string { return "by-body-fallback" }

func (s byBody) locate(doc *goquery.Document) *goquery.Selection {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil
	}
	body.Find(strings.Join(s.boilerplate, ", ")).Remove()
	return body
}

func defaultStrategies() []containerStrategy {
	return []containerStrategy{
		byClass{classes: []string{"entry-content", "article__text", "article-content"}},
		byTag{tag: "article"},
		byBody{boilerplate: []string{
			"nav", "header", "footer", "aside",
			"script", "style", "iframe", "noscript", "form",
		}},
	}
}

// hasText reports whether the selection contains any visible text.
func hasText(sel *goquery.Selection) bool {
	return sel != nil && strings.TrimSpace(sel.Text()) != ""
}
