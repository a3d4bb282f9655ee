// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

// Snapshot is a plain-data view of a container, for reports and for
// comparing two containers. It carries no content, only structure.
type Snapshot struct {
	Path           string            `json:"path,omitempty"`
	CurrentVersion int               `json:"current_version"`
	Versions       []VersionSnapshot `json:"versions"`
	Inventory      []InventoryEntry  `json:"inventory,omitempty"`
}

// VersionSnapshot is the view of one table of contents.
type VersionSnapshot struct {
	Version     int                `json:"version"`
	FileName    string             `json:"file_name"`
	Annotations []string           `json:"annotations,omitempty"`
	Resources   []ResourceSnapshot `json:"resources"`
}

// ResourceSnapshot is the view of one resource.
type ResourceSnapshot struct {
	URI          string                `json:"uri"`
	MimeType     string                `json:"mime_type,omitempty"`
	Description  string                `json:"description,omitempty"`
	External     bool                  `json:"external,omitempty"`
	Associations []AssociationSnapshot `json:"associations,omitempty"`
	Annotations  []string              `json:"annotations,omitempty"`
}

// AssociationSnapshot is the view of one association.
type AssociationSnapshot struct {
	Relationship string `json:"relationship"`
	Target       string `json:"target"`
}

// Snapshot captures every version of the container.
func (c *Container) Snapshot() Snapshot {
	snapshot := Snapshot{
		Path:           c.path,
		CurrentVersion: c.highest,
		Versions:       []VersionSnapshot{},
		Inventory:      c.Inventory(),
	}
	for _, version := range c.Versions() {
		snapshot.Versions = append(snapshot.Versions, c.tocs[version].Snapshot())
	}
	return snapshot
}

// Snapshot captures this table of contents.
func (t *TableOfContents) Snapshot() VersionSnapshot {
	snapshot := VersionSnapshot{
		Version:     t.version,
		FileName:    t.FileName(),
		Annotations: t.annotations.Strings(),
		Resources:   []ResourceSnapshot{},
	}
	for _, resource := range t.resources {
		snapshot.Resources = append(snapshot.Resources, resource.Snapshot())
	}
	return snapshot
}

// Snapshot captures this resource.
func (r *Resource) Snapshot() ResourceSnapshot {
	snapshot := ResourceSnapshot{
		URI:         r.uri,
		MimeType:    r.mimeType,
		Description: r.description,
		External:    r.IsExternalReference(),
		Annotations: r.annotations.Strings(),
	}
	for _, association := range r.associations {
		snapshot.Associations = append(snapshot.Associations, AssociationSnapshot{
			Relationship: association.relationship,
			Target:       association.target,
		})
	}
	return snapshot
}
