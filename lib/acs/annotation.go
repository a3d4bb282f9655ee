// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

import (
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// NodeKind distinguishes the three shapes of annotation content.
type NodeKind int

const (
	// TextNode is character data.
	TextNode NodeKind = iota

	// TaggedNode is a named element with attributes and text content
	// only, such as <keyword name="operator">J. Smith</keyword>.
	TaggedNode

	// ElementNode is an arbitrary element subtree carried verbatim.
	ElementNode
)

// Attribute is one attribute of a tagged annotation node. Key may
// carry a namespace prefix ("xsi:type").
type Attribute struct {
	Key   string
	Value string
}

// AnnotationNode is one piece of annotation content. Which fields are
// meaningful depends on Kind: Text for TextNode; Tag, Attributes and
// Text for TaggedNode; Element for ElementNode.
type AnnotationNode struct {
	Kind       NodeKind
	Text       string
	Tag        string
	Attributes []Attribute
	Element    *etree.Element
}

// Annotation is one additional_info block: an ordered sequence of
// text, tagged and element nodes.
type Annotation struct {
	nodes []AnnotationNode
}

// Nodes returns a copy of the annotation's content.
func (a *Annotation) Nodes() []AnnotationNode {
	nodes := make([]AnnotationNode, len(a.nodes))
	for i, node := range a.nodes {
		nodes[i] = node.clone()
	}
	return nodes
}

// Clear removes all content.
func (a *Annotation) Clear() {
	a.nodes = nil
}

// SetText replaces all content with text.
func (a *Annotation) SetText(text string) {
	a.Clear()
	a.AppendText(text)
}

// AppendText appends character data. Empty text is ignored.
func (a *Annotation) AppendText(text string) {
	if text == "" {
		return
	}
	a.nodes = append(a.nodes, AnnotationNode{Kind: TextNode, Text: text})
}

// AppendTagged appends a named element carrying attributes and text.
// Attributes are written in key order.
func (a *Annotation) AppendTagged(tag string, attributes map[string]string, text string) {
	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	node := AnnotationNode{Kind: TaggedNode, Tag: tag, Text: text}
	for _, key := range keys {
		node.Attributes = append(node.Attributes, Attribute{Key: key, Value: attributes[key]})
	}
	a.nodes = append(a.nodes, node)
}

// AppendElement appends a copy of element as opaque content. Later
// changes to element do not affect the annotation.
func (a *Annotation) AppendElement(element *etree.Element) {
	if element == nil {
		return
	}
	a.nodes = append(a.nodes, AnnotationNode{Kind: ElementNode, Element: element.Copy()})
}

const (
	keywordTag       = "keyword"
	keywordAttribute = "name"
)

// SetKeyword replaces any keyword called name with one holding value.
func (a *Annotation) SetKeyword(name, value string) {
	a.RemoveKeyword(name)
	a.AppendTagged(keywordTag, map[string]string{keywordAttribute: name}, value)
}

// RemoveKeyword removes every keyword called name and reports whether
// any was present.
func (a *Annotation) RemoveKeyword(name string) bool {
	kept := a.nodes[:0]
	removed := false
	for _, node := range a.nodes {
		if node.isKeyword(name) {
			removed = true
			continue
		}
		kept = append(kept, node)
	}
	a.nodes = kept
	return removed
}

// Keyword returns the value of the first keyword called name.
func (a *Annotation) Keyword(name string) (string, bool) {
	for _, node := range a.nodes {
		if node.isKeyword(name) {
			return node.Text, true
		}
	}
	return "", false
}

// Keywords returns every keyword as name/value pairs in document order.
func (a *Annotation) Keywords() []Attribute {
	var keywords []Attribute
	for _, node := range a.nodes {
		if node.Kind != TaggedNode || node.Tag != keywordTag {
			continue
		}
		if name, ok := node.attribute(keywordAttribute); ok {
			keywords = append(keywords, Attribute{Key: name, Value: node.Text})
		}
	}
	return keywords
}

// Text returns the concatenated character data of the text nodes.
func (a *Annotation) Text() string {
	var builder strings.Builder
	for _, node := range a.nodes {
		if node.Kind == TextNode {
			builder.WriteString(node.Text)
		}
	}
	return builder.String()
}

// String returns the annotation content serialized as XML, without the
// enclosing additional_info element.
func (a *Annotation) String() string {
	document := etree.NewDocument()
	for _, node := range a.nodes {
		document.AddChild(node.token())
	}
	text, err := document.WriteToString()
	if err != nil {
		return ""
	}
	return text
}

func (n AnnotationNode) isKeyword(name string) bool {
	if n.Kind != TaggedNode || n.Tag != keywordTag {
		return false
	}
	value, ok := n.attribute(keywordAttribute)
	return ok && value == name
}

func (n AnnotationNode) attribute(key string) (string, bool) {
	for _, attribute := range n.Attributes {
		if attribute.Key == key {
			return attribute.Value, true
		}
	}
	return "", false
}

func (n AnnotationNode) clone() AnnotationNode {
	cloned := n
	if n.Attributes != nil {
		cloned.Attributes = append([]Attribute(nil), n.Attributes...)
	}
	if n.Element != nil {
		cloned.Element = n.Element.Copy()
	}
	return cloned
}

// token builds a fresh XML token for the node.
func (n AnnotationNode) token() etree.Token {
	switch n.Kind {
	case TaggedNode:
		element := etree.NewElement(n.Tag)
		for _, attribute := range n.Attributes {
			element.CreateAttr(attribute.Key, attribute.Value)
		}
		if n.Text != "" {
			element.SetText(n.Text)
		}
		return element
	case ElementNode:
		return n.Element.Copy()
	default:
		return etree.NewText(n.Text)
	}
}

// Annotations is an ordered collection of annotations. Both tables of
// contents and resources carry one.
type Annotations struct {
	items []*Annotation
}

// Add appends a new annotation holding text (which may be empty) and
// returns it for further editing.
func (s *Annotations) Add(text string) *Annotation {
	annotation := &Annotation{}
	annotation.AppendText(text)
	s.items = append(s.items, annotation)
	return annotation
}

// Append attaches an existing annotation.
func (s *Annotations) Append(annotation *Annotation) {
	if annotation != nil {
		s.items = append(s.items, annotation)
	}
}

// Remove detaches annotation and reports whether it was present.
func (s *Annotations) Remove(annotation *Annotation) bool {
	for i, item := range s.items {
		if item == annotation {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of annotations.
func (s *Annotations) Len() int { return len(s.items) }

// At returns the annotation at index i.
func (s *Annotations) At(i int) *Annotation { return s.items[i] }

// All returns the annotations in order. The slice is a copy; the
// annotations are shared.
func (s *Annotations) All() []*Annotation {
	return append([]*Annotation(nil), s.items...)
}

// Strings returns each annotation serialized with [Annotation.String].
func (s *Annotations) Strings() []string {
	if len(s.items) == 0 {
		return nil
	}
	texts := make([]string, len(s.items))
	for i, item := range s.items {
		texts[i] = item.String()
	}
	return texts
}
