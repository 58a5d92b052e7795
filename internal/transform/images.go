// Package transform normalizes generated HTML for the Confluence storage
// format.
package transform

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ImagesToStorage rewrites every <img> element in an HTML fragment into the
// Confluence storage-format embed: an <ac:image> wrapping a <ri:url>,
// centered and full width. Everything else passes through unchanged.
//
// The fragment is parsed as HTML, so malformed input degrades via the
// parser's normal recovery rather than failing the sync.
func ImagesToStorage(fragment string) (string, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", fmt.Errorf("parse html fragment: %w", err)
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	for _, img := range collectImages(body) {
		embed := &html.Node{
			Type: html.RawNode,
			Data: storageImage(attr(img, "src"), attr(img, "alt")),
		}
		img.Parent.InsertBefore(embed, img)
		img.Parent.RemoveChild(img)
	}

	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("render html fragment: %w", err)
		}
	}
	return buf.String(), nil
}

// collectImages gathers img nodes up front so replacement does not disturb
// the traversal.
func collectImages(root *html.Node) []*html.Node {
	var imgs []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img {
			imgs = append(imgs, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return imgs
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// storageImage builds the ac:image markup for one source URL and alt text.
// Embedded double quotes are escaped; a missing src still yields a
// well-formed (if degenerate) embed.
func storageImage(src, alt string) string {
	src = strings.ReplaceAll(src, `"`, "&quot;")
	alt = strings.ReplaceAll(alt, `"`, "&quot;")
	return fmt.Sprintf(
		`<ac:image ac:align="center" ac:layout="full-width" ac:alt="%s"><ri:url ri:value="%s" /></ac:image>`,
		alt, src,
	)
}
