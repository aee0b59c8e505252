package preview

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AnchorAttr is the attribute a renderer puts on the root element of every
// block so that its markup can be replaced in place.
const AnchorAttr = "data-block-id"

// ErrAnchorNotFound is returned by Splice when no element carries the block
// id.
var ErrAnchorNotFound = errors.New("block anchor not found")

// Splice replaces the element of pageHTML whose AnchorAttr equals blockID
// with blockHTML. pageHTML may be a full document or a body fragment; the
// output keeps the same shape.
func Splice(pageHTML, blockID, blockHTML string) (string, error) {
	nodes, err := parse(pageHTML)
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}

	var anchor *html.Node
	for _, n := range nodes {
		if anchor = findAnchor(n, blockID); anchor != nil {
			break
		}
	}
	if anchor == nil {
		return "", fmt.Errorf("%w: %q", ErrAnchorNotFound, blockID)
	}

	context := anchor.Parent
	if context == nil || context.Type != html.ElementNode {
		context = bodyContext()
	}
	repl, err := html.ParseFragment(strings.NewReader(blockHTML), context)
	if err != nil {
		return "", fmt.Errorf("parsing block %q: %w", blockID, err)
	}

	if anchor.Parent == nil {
		// The anchor is a top-level fragment node.
		out := make([]*html.Node, 0, len(nodes)+len(repl))
		for _, n := range nodes {
			if n == anchor {
				out = append(out, repl...)
				continue
			}
			out = append(out, n)
		}
		return render(out)
	}

	parent := anchor.Parent
	for _, r := range repl {
		parent.InsertBefore(r, anchor)
	}
	parent.RemoveChild(anchor)
	return render(nodes)
}

func isDocument(s string) bool {
	head := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

func parse(s string) ([]*html.Node, error) {
	if isDocument(s) {
		doc, err := html.Parse(strings.NewReader(s))
		if err != nil {
			return nil, err
		}
		return []*html.Node{doc}, nil
	}
	return html.ParseFragment(strings.NewReader(s), bodyContext())
}

func render(nodes []*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func findAnchor(n *html.Node, blockID string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == AnchorAttr && a.Val == blockID {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findAnchor(c, blockID); found != nil {
			return found
		}
	}
	return nil
}
