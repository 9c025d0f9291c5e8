/*
Copyright © 2023 - 2026 The Blender Launcher Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package scraper

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Anchor is a single <a> element lifted from a directory listing page.
type Anchor struct {
	Href string
	// Text is the inner text of the anchor.
	Text string
	// Tail is the first non blank text run following the anchor. On
	// autoindex pages this is where the date column lives.
	Tail string
}

// ParseAnchors walks an HTML document and collects every anchor that
// carries an href, in document order. Parse errors terminate the walk
// but whatever was collected before them is still returned.
func ParseAnchors(body []byte) []Anchor {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	anchors := []Anchor{}

	// Indexes into anchors. open is the anchor whose inner text is
	// being read, tail the one still waiting for its trailing text.
	open := -1
	tail := -1

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return anchors
		case html.StartTagToken:
			token := tokenizer.Token()
			if token.DataAtom != atom.A {
				continue
			}
			href := ""
			for _, attr := range token.Attr {
				if attr.Key == "href" {
					href = attr.Val
					break
				}
			}
			if href == "" {
				continue
			}
			anchors = append(anchors, Anchor{Href: href})
			open = len(anchors) - 1
		case html.EndTagToken:
			if tokenizer.Token().DataAtom == atom.A && open >= 0 {
				tail = open
				open = -1
			}
		case html.TextToken:
			text := string(tokenizer.Text())
			if open >= 0 {
				anchors[open].Text += text
			} else if tail >= 0 && len(bytes.TrimSpace([]byte(text))) > 0 {
				anchors[tail].Tail = text
				tail = -1
			}
		}
	}
}
