// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

import (
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Namespace is the XML namespace of ACS 1.0 manifests.
const Namespace = "http://www.isac-net.org/std/ACS/1.0/toc/"

// Manifest entries are named ManifestPrefix + version + ManifestSuffix.
const (
	ManifestPrefix = "TOC"
	ManifestSuffix = ".xml"
)

// Manifest vocabulary. Elements and attributes are written with the
// "toc" prefix; on read, the prefix or the namespace identifies them.
const (
	tocPrefix            = "toc"
	rootTag              = "TOC"
	fileTag              = "file"
	associatedTag        = "associated"
	additionalInfoTag    = "additional_info"
	uriAttribute         = "URI"
	mimeTypeAttribute    = "mimeType"
	descriptionAttribute = "description"
	withAttribute        = "with"
	relationshipAttr     = "relationship"
)

//go:embed new_toc_template.xml
var blankManifest string

// ManifestName returns the package entry name of the manifest for
// version.
func ManifestName(version int) string {
	return ManifestPrefix + strconv.Itoa(version) + ManifestSuffix
}

// IsManifestName reports whether an entry name has the manifest
// prefix and suffix. It says nothing about whether the version part
// is valid.
func IsManifestName(name string) bool {
	return len(name) >= len(ManifestPrefix)+len(ManifestSuffix) &&
		strings.HasPrefix(name, ManifestPrefix) &&
		strings.HasSuffix(name, ManifestSuffix)
}

// ParseManifestVersion extracts the version from a manifest entry
// name. The version must be a positive decimal integer made only of
// digits. Errors wrap [ErrInvalidIndex].
func ParseManifestVersion(name string) (int, error) {
	if !IsManifestName(name) {
		return 0, fmt.Errorf("%w: %q is not a manifest name", ErrInvalidIndex, name)
	}
	digits := name[len(ManifestPrefix) : len(name)-len(ManifestSuffix)]
	if digits == "" {
		return 0, fmt.Errorf("%w: manifest %q has no version", ErrInvalidIndex, name)
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: manifest %q has non-numeric version %q", ErrInvalidIndex, name, digits)
		}
	}
	version, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: manifest %q: %v", ErrInvalidIndex, name, err)
	}
	if version < 1 {
		return 0, fmt.Errorf("%w: manifest %q has version %d, want a positive version", ErrInvalidIndex, name, version)
	}
	return version, nil
}

// isTOCElement reports whether element is the manifest element with
// the given local name.
func isTOCElement(element *etree.Element, local string) bool {
	if element.Tag != local {
		return false
	}
	return element.Space == tocPrefix || element.NamespaceURI() == Namespace
}

// tocAttribute returns the value of a manifest attribute by local
// name, accepting any prefix other than a namespace declaration.
func tocAttribute(element *etree.Element, local string) (string, bool) {
	for _, attribute := range element.Attr {
		if attribute.Key == local && attribute.Space != "xmlns" {
			return attribute.Value, true
		}
	}
	return "", false
}

// decodeManifest parses manifest XML into a table of contents at
// version. Errors wrap [ErrInvalidIndex].
func decodeManifest(r io.Reader, version int) (*TableOfContents, error) {
	document := etree.NewDocument()
	if _, err := document.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: parsing manifest XML: %v", ErrInvalidIndex, err)
	}
	root := document.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: manifest has no root element", ErrInvalidIndex)
	}
	if !isTOCElement(root, rootTag) {
		return nil, fmt.Errorf("%w: manifest root is <%s>, want <%s:%s>", ErrInvalidIndex, root.FullTag(), tocPrefix, rootTag)
	}

	toc := newTableOfContents(version)
	toc.rootAttributes = append([]etree.Attr(nil), root.Attr...)

	for _, child := range root.ChildElements() {
		switch {
		case isTOCElement(child, fileTag):
			resource, err := decodeResource(child)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidIndex, err)
			}
			if err := toc.attach(resource); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidIndex, err)
			}
		case isTOCElement(child, additionalInfoTag):
			toc.annotations.Append(decodeAnnotation(child))
		}
	}
	return toc, nil
}

func decodeResource(element *etree.Element) (*Resource, error) {
	uri, ok := tocAttribute(element, uriAttribute)
	if !ok || uri == "" {
		return nil, fmt.Errorf("file entry without a URI")
	}
	if err := ValidateURI(uri); err != nil {
		return nil, err
	}

	resource := &Resource{uri: uri}
	if mimeType, ok := tocAttribute(element, mimeTypeAttribute); ok {
		resource.SetMimeType(mimeType)
	}
	if description, ok := tocAttribute(element, descriptionAttribute); ok {
		resource.SetDescription(description)
	}

	for _, child := range element.ChildElements() {
		switch {
		case isTOCElement(child, associatedTag):
			association, err := decodeAssociation(resource, child)
			if err != nil {
				return nil, fmt.Errorf("file %s: %w", uri, err)
			}
			resource.associations = append(resource.associations, association)
		case isTOCElement(child, additionalInfoTag):
			resource.annotations.Append(decodeAnnotation(child))
		}
	}
	return resource, nil
}

// decodeAssociation accepts the stored relationship verbatim; it only
// has to be non-blank.
func decodeAssociation(from *Resource, element *etree.Element) (*Association, error) {
	relationship, _ := tocAttribute(element, relationshipAttr)
	if strings.TrimSpace(relationship) == "" {
		return nil, fmt.Errorf("%w: relationship may not be blank", ErrInvalidAssociation)
	}
	target, _ := tocAttribute(element, withAttribute)
	if target == "" {
		return nil, fmt.Errorf("%w: association %q has no target", ErrInvalidAssociation, relationship)
	}
	return &Association{from: from, relationship: relationship, target: target}, nil
}

func decodeAnnotation(element *etree.Element) *Annotation {
	annotation := &Annotation{}
	for _, token := range element.Child {
		switch token := token.(type) {
		case *etree.CharData:
			if token.Data != "" {
				annotation.nodes = append(annotation.nodes, AnnotationNode{Kind: TextNode, Text: token.Data})
			}
		case *etree.Element:
			if len(token.ChildElements()) > 0 {
				annotation.nodes = append(annotation.nodes, AnnotationNode{Kind: ElementNode, Element: token.Copy()})
				continue
			}
			node := AnnotationNode{Kind: TaggedNode, Tag: token.FullTag(), Text: token.Text()}
			for _, attribute := range token.Attr {
				node.Attributes = append(node.Attributes, Attribute{Key: attribute.FullKey(), Value: attribute.Value})
			}
			annotation.nodes = append(annotation.nodes, node)
		}
	}
	return annotation
}

// encodeManifest builds the XML document for toc. Whitespace is added
// between structural elements only; annotation content is written
// exactly as held.
func encodeManifest(toc *TableOfContents) *etree.Document {
	document := etree.NewDocument()
	document.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="no"`)
	document.AddChild(etree.NewText("\n"))

	root := document.CreateElement(tocPrefix + ":" + rootTag)
	for _, attribute := range toc.rootAttributes {
		root.CreateAttr(attribute.FullKey(), attribute.Value)
	}
	if root.SelectAttr("xmlns:"+tocPrefix) == nil {
		root.CreateAttr("xmlns:"+tocPrefix, Namespace)
	}

	for _, annotation := range toc.annotations.items {
		indent(root, 1)
		root.AddChild(encodeAnnotation(annotation))
	}
	for _, resource := range toc.resources {
		indent(root, 1)
		root.AddChild(encodeResource(resource))
	}
	if len(root.Child) > 0 {
		indent(root, 0)
	}
	document.AddChild(etree.NewText("\n"))
	return document
}

func encodeResource(resource *Resource) *etree.Element {
	element := etree.NewElement(tocPrefix + ":" + fileTag)
	element.CreateAttr(tocPrefix+":"+uriAttribute, resource.uri)
	if resource.mimeType != "" {
		element.CreateAttr(tocPrefix+":"+mimeTypeAttribute, resource.mimeType)
	}
	if resource.description != "" {
		element.CreateAttr(tocPrefix+":"+descriptionAttribute, resource.description)
	}

	for _, association := range resource.associations {
		indent(element, 2)
		child := element.CreateElement(tocPrefix + ":" + associatedTag)
		child.CreateAttr(tocPrefix+":"+relationshipAttr, association.relationship)
		child.CreateAttr(tocPrefix+":"+withAttribute, association.target)
	}
	for _, annotation := range resource.annotations.items {
		indent(element, 2)
		element.AddChild(encodeAnnotation(annotation))
	}
	if len(element.Child) > 0 {
		indent(element, 1)
	}
	return element
}

func encodeAnnotation(annotation *Annotation) *etree.Element {
	element := etree.NewElement(tocPrefix + ":" + additionalInfoTag)
	for _, node := range annotation.nodes {
		element.AddChild(node.token())
	}
	return element
}

func indent(element *etree.Element, depth int) {
	element.AddChild(etree.NewText("\n" + strings.Repeat("  ", depth)))
}
