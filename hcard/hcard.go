// Package hcard extracts vCards embedded in HTML documents using the hCard
// microformat (class="vcard" with property class names such as fn, email,
// and tel).
package hcard

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/plicate/vobject/model"
)

// simple hCard classes that map one class name to one property.
var simpleProperties = map[string]string{
	"fn":       "FN",
	"nickname": "NICKNAME",
	"title":    "TITLE",
	"role":     "ROLE",
	"note":     "NOTE",
	"org":      "ORG",
	"bday":     "BDAY",
	"tz":       "TZ",
	"uid":      "UID",
	"category": "CATEGORIES",
}

// address sub-part classes and the position of each in the ADR structured
// value: post office box, extended, street, locality, region, postal code,
// country.
var adrParts = []string{
	"post-office-box",
	"extended-address",
	"street-address",
	"locality",
	"region",
	"postal-code",
	"country-name",
}

// name sub-part classes and the position of each in the N structured
// value: family, given, additional, prefix, suffix.
var nameParts = []string{
	"family-name",
	"given-name",
	"additional-name",
	"honorific-prefix",
	"honorific-suffix",
}

// Extract parses HTML from r and returns one VCARD component per hCard
// element found, in document order. hCard carries vCard 3.0 semantics, so
// each card gets a VERSION:3.0 property.
func Extract(r io.Reader) ([]*model.Component, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var cards []*model.Component
	walkCards(doc, &cards)
	return cards, nil
}

// walkCards collects every element carrying the vcard class, in document
// order. A vcard nested inside another (an agent's card) belongs to the
// outer card's subtree and is not collected separately.
func walkCards(n *html.Node, cards *[]*model.Component) {
	if n.Type == html.ElementNode && hasClass(n, "vcard") {
		card := model.NewComponent("VCARD")
		card.AddProperty(&model.Property{Name: "VERSION", Value: "3.0"})
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractProperties(c, card)
		}
		*cards = append(*cards, card)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkCards(c, cards)
	}
}

// extractProperties walks an element subtree inside a vcard element and
// appends recognized properties to card.
func extractProperties(n *html.Node, card *model.Component) {
	if n.Type != html.ElementNode {
		return
	}
	// A nested vcard belongs to walkCards, not to this card.
	if hasClass(n, "vcard") {
		return
	}

	recurse := true
	switch {
	case hasClass(n, "email"):
		card.AddProperty(property("EMAIL", typeHints(n), emailValue(n)))
		recurse = false
	case hasClass(n, "tel"):
		card.AddProperty(property("TEL", typeHints(n), propertyValue(n)))
		recurse = false
	case hasClass(n, "url"):
		card.AddProperty(property("URL", nil, hrefValue(n)))
		recurse = false
	case hasClass(n, "photo"):
		if src := photoValue(n); src != "" {
			card.AddProperty(&model.Property{
				Name:   "PHOTO",
				Params: model.Params{{Name: "VALUE", Value: "uri"}},
				Value:  src,
			})
		}
		recurse = false
	case hasClass(n, "adr"):
		card.AddProperty(property("ADR", typeHints(n), structuredValue(n, adrParts)))
		recurse = false
	case hasClass(n, "n"):
		card.AddProperty(property("N", nil, structuredValue(n, nameParts)))
		recurse = false
	default:
		for class, name := range simpleProperties {
			if hasClass(n, class) {
				card.AddProperty(property(name, nil, propertyValue(n)))
				recurse = false
				break
			}
		}
	}

	if !recurse {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractProperties(c, card)
	}
}

// property builds a property with optional TYPE parameters.
func property(name string, types []string, value string) *model.Property {
	p := &model.Property{Name: name, Value: value}
	for _, t := range types {
		p.Params = append(p.Params, model.Param{Name: "TYPE", Value: t})
	}
	return p
}

// propertyValue returns the microformat value of an element: the text of
// its "value" child if present, the title attribute of an abbr element, or
// its whole text content.
func propertyValue(n *html.Node) string {
	if v := findClass(n, "value"); v != nil && v != n {
		return textContent(v)
	}
	if n.Data == "abbr" {
		if title := getAttr(n, "title"); title != "" {
			return title
		}
	}
	return textContent(n)
}

// emailValue prefers a mailto: link target over the element text.
func emailValue(n *html.Node) string {
	if a := findAnchor(n); a != nil {
		href := getAttr(a, "href")
		if strings.HasPrefix(strings.ToLower(href), "mailto:") {
			// Strip any query part (subject etc.) from the address.
			addr := href[len("mailto:"):]
			if i := strings.IndexByte(addr, '?'); i >= 0 {
				addr = addr[:i]
			}
			return addr
		}
	}
	return propertyValue(n)
}

// hrefValue prefers a link target over the element text.
func hrefValue(n *html.Node) string {
	if n.Data == "a" {
		if href := getAttr(n, "href"); href != "" {
			return href
		}
	}
	if a := findAnchor(n); a != nil {
		if href := getAttr(a, "href"); href != "" {
			return href
		}
	}
	return propertyValue(n)
}

// photoValue returns the image source of a photo element.
func photoValue(n *html.Node) string {
	if n.Data == "img" {
		return getAttr(n, "src")
	}
	if img := findElement(n, "img"); img != nil {
		return getAttr(img, "src")
	}
	return ""
}

// structuredValue assembles a semicolon-separated structured value from
// sub-part classes, in their vCard field order.
func structuredValue(n *html.Node, parts []string) string {
	values := make([]string, len(parts))
	for i, class := range parts {
		if el := findClass(n, class); el != nil {
			values[i] = textContent(el)
		}
	}
	// Trim trailing empty fields.
	end := len(values)
	for end > 0 && values[end-1] == "" {
		end--
	}
	return strings.Join(values[:end], ";")
}

// typeHints returns the text of "type" sub-elements (e.g. the home in
// <span class="type">home</span>).
func typeHints(n *html.Node) []string {
	var types []string
	collectClass(n, "type", &types)
	return types
}

func collectClass(n *html.Node, class string, out *[]string) {
	if n.Type == html.ElementNode && hasClass(n, class) {
		*out = append(*out, textContent(n))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectClass(c, class, out)
	}
}

// hasClass reports whether the element carries the given class.
func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// findClass finds the first element in the subtree with the given class.
func findClass(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tagName); found != nil {
			return found
		}
	}
	return nil
}

// findAnchor finds the node itself or its first descendant a element.
func findAnchor(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "a" {
		return n
	}
	return findElement(n, "a")
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// textContent extracts the trimmed text of a node and its descendants,
// collapsing interior whitespace runs to single spaces.
func textContent(n *html.Node) string {
	var sb strings.Builder
	collectText(n, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
