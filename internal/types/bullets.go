//nolint:revive // types is a standard Go package name pattern
package types

import "encoding/json"

// Bullets is the canonical representation of generated bullet content: an
// ordered list of plain strings. The rich-text document tree that the editor
// consumes is a projection produced by Doc; it is never the source of truth.
//
// Persisted data from older sessions may hold either shape, so UnmarshalJSON
// accepts both a plain string array and a doc tree, reconciling at the
// boundary.
type Bullets []string

// DocNode is one node of the rich-text projection: a "doc" root containing
// "paragraph" nodes, each containing a single "text" node.
type DocNode struct {
	Type    string    `json:"type"`
	Content []DocNode `json:"content,omitempty"`
	Text    string    `json:"text,omitempty"`
}

// Doc projects the bullet list into the rich-text document shape.
func (b Bullets) Doc() DocNode {
	doc := DocNode{Type: "doc", Content: make([]DocNode, 0, len(b))}
	for _, text := range b {
		doc.Content = append(doc.Content, DocNode{
			Type:    "paragraph",
			Content: []DocNode{{Type: "text", Text: text}},
		})
	}
	return doc
}

// PlainBullets flattens a document tree back into the canonical list. Nested
// text nodes within a paragraph are concatenated.
func (n DocNode) PlainBullets() Bullets {
	if n.Type == "text" {
		return Bullets{n.Text}
	}
	var out Bullets
	for _, child := range n.Content {
		if child.Type == "paragraph" {
			var text string
			for _, t := range child.Content {
				text += t.Text
			}
			out = append(out, text)
			continue
		}
		out = append(out, child.PlainBullets()...)
	}
	return out
}

// UnmarshalJSON accepts either a plain string array or a rich-text doc tree.
func (b *Bullets) UnmarshalJSON(data []byte) error {
	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		*b = plain
		return nil
	}
	var doc DocNode
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*b = doc.PlainBullets()
	if *b == nil {
		*b = Bullets{}
	}
	return nil
}
