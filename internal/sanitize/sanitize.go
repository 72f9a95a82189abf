// Package sanitize enforces the tag and attribute allow-list published post
// bodies must conform to.
package sanitize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var allowedTags = set("h1", "h2", "h3", "h4", "p", "ul", "ol", "li", "strong", "em", "a", "img",
	"blockquote", "div", "table", "thead", "tbody", "tr", "th", "td", "details", "summary", "span", "hr", "br")

// the parser lowercases attribute names, so className arrives as classname
var allowedAttrs = set("href", "src", "alt", "target", "rel", "class", "classname", "style")

// elements removed together with their content
var droppedTags = set("script", "style", "iframe", "object", "embed", "noscript", "template")

// Violation is a tag or attribute outside the allow-list.
type Violation struct {
	Tag  string
	Attr string
}

func (v Violation) String() string {
	if v.Attr == "" {
		return "<" + v.Tag + ">"
	}
	return "<" + v.Tag + " " + v.Attr + ">"
}

// Violations lists every disallowed tag and attribute in an HTML fragment,
// sorted and deduplicated.
func Violations(fragment string) ([]Violation, error) {
	doc, err := parse(fragment)
	if err != nil {
		return nil, err
	}
	seen := map[Violation]bool{}
	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		if !allowedTags[tag] {
			seen[Violation{Tag: tag}] = true
			return
		}
		for _, a := range s.Nodes[0].Attr {
			if !allowedAttrs[strings.ToLower(a.Key)] || (isURLAttr(a.Key) && !safeURL(a.Val)) {
				seen[Violation{Tag: tag, Attr: a.Key}] = true
			}
		}
	})

	out := make([]Violation, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

// Clean rewrites a fragment to conform: dangerous elements are removed,
// other unknown elements are unwrapped to their content, and disallowed
// attributes or unsafe URLs are stripped.
func Clean(fragment string) (string, error) {
	doc, err := parse(fragment)
	if err != nil {
		return "", err
	}
	doc.Find("body *").Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		switch {
		case droppedTags[tag]:
			s.Remove()
			return
		case !allowedTags[tag]:
			s.ReplaceWithSelection(s.Contents())
			return
		}
		var drop []string
		for _, a := range s.Nodes[0].Attr {
			if !allowedAttrs[strings.ToLower(a.Key)] || (isURLAttr(a.Key) && !safeURL(a.Val)) {
				drop = append(drop, a.Key)
			}
		}
		for _, k := range drop {
			s.RemoveAttr(k)
		}
	})
	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("render sanitized html: %w", err)
	}
	return out, nil
}

func parse(fragment string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

func isURLAttr(key string) bool {
	key = strings.ToLower(key)
	return key == "href" || key == "src"
}

func safeURL(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	if i := strings.IndexByte(v, ':'); i >= 0 && !strings.ContainsAny(v[:i], "/?#") {
		scheme := v[:i]
		return scheme == "http" || scheme == "https" || scheme == "mailto" || scheme == "tel"
	}
	return true
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
