// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

import (
	"fmt"
	"strings"
)

// Association is a directed, labelled edge from one resource to
// another. The target is held by URI and looked up in the source's
// table of contents on demand, so an association survives the removal
// or renaming of its target; it just stops resolving.
type Association struct {
	from         *Resource
	relationship string
	target       string
}

func newAssociation(from, to *Resource, relationship string) (*Association, error) {
	if strings.TrimSpace(relationship) == "" {
		return nil, fmt.Errorf("%w: relationship may not be blank", ErrInvalidAssociation)
	}
	if to == nil {
		return nil, fmt.Errorf("%w: no target resource", ErrInvalidAssociation)
	}
	if err := ValidateURI(to.uri); err != nil {
		return nil, fmt.Errorf("association target: %w", err)
	}
	return &Association{
		from:         from,
		relationship: normalizeRelationship(relationship),
		target:       to.uri,
	}, nil
}

// Relationship returns the stored relationship label.
func (a *Association) Relationship() string { return a.relationship }

// TargetURI returns the URI of the associated resource.
func (a *Association) TargetURI() string { return a.target }

// From returns the resource the association belongs to, or nil once
// it has been removed.
func (a *Association) From() *Resource { return a.from }

// SetRelationship replaces the label. A blank label fails with
// [ErrInvalidAssociation] and leaves the current one in place;
// otherwise the label is trimmed and lower-cased.
func (a *Association) SetRelationship(label string) error {
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf("%w: relationship may not be blank", ErrInvalidAssociation)
	}
	a.relationship = normalizeRelationship(label)
	return nil
}

// SetTargetURI points the association at another URI. The URI must use
// an allowed scheme; on [ErrInvalidURIScheme] the target is unchanged.
// No resource needs to exist under uri yet.
func (a *Association) SetTargetURI(uri string) error {
	if err := ValidateURI(uri); err != nil {
		return fmt.Errorf("association target: %w", err)
	}
	a.target = uri
	return nil
}

// Target resolves the associated resource in the source resource's
// table of contents. It returns nil without error when no resource
// has the target URI. It fails with [ErrInvalidAssociation] when the
// source resource is not part of a table of contents.
func (a *Association) Target() (*Resource, error) {
	if a.from == nil || a.from.toc == nil {
		return nil, fmt.Errorf("%w: resolving %q: association is not attached to a table of contents",
			ErrInvalidAssociation, a.target)
	}
	return a.from.toc.ResourceByURI(a.target), nil
}

// Is reports whether the relationship label denotes kind.
func (a *Association) Is(kind Relationship) bool {
	return kind.Matches(a.relationship)
}

func (a *Association) IsGatingDescription() bool       { return a.Is(GatingDescription) }
func (a *Association) IsCompensationDescription() bool { return a.Is(CompensationDescription) }
func (a *Association) IsCompensatedVersion() bool      { return a.Is(CompensatedVersion) }
func (a *Association) IsClassificationResults() bool   { return a.Is(ClassificationResults) }
func (a *Association) IsProjectWorkspace() bool        { return a.Is(ProjectWorkspace) }
func (a *Association) IsInstrumentationSettingsDescription() bool {
	return a.Is(InstrumentationSettingsDescription)
}
func (a *Association) IsSampleSpecimenDescription() bool { return a.Is(SampleSpecimenDescription) }
func (a *Association) IsAnalysisDescription() bool       { return a.Is(AnalysisDescription) }
func (a *Association) IsResultsDescription() bool        { return a.Is(ResultsDescription) }
func (a *Association) IsRelatedPublication() bool        { return a.Is(RelatedPublication) }
func (a *Association) IsDigitalSignature() bool          { return a.Is(DigitalSignature) }
