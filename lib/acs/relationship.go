// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package acs

import "strings"

// Relationship is a canonical association label. Labels outside this
// vocabulary are legal on associations; they simply classify as none
// of the known kinds.
type Relationship string

const (
	GatingDescription                  Relationship = "gating description"
	CompensationDescription            Relationship = "compensation description"
	CompensatedVersion                 Relationship = "compensated version"
	ClassificationResults              Relationship = "classification results"
	ProjectWorkspace                   Relationship = "project/workspace"
	InstrumentationSettingsDescription Relationship = "instrumentation settings description"
	SampleSpecimenDescription          Relationship = "sample specimen description"
	AnalysisDescription                Relationship = "analysis description"
	ResultsDescription                 Relationship = "results description"
	RelatedPublication                 Relationship = "related publication"
	DigitalSignature                   Relationship = "digital signature"
)

// KnownRelationships lists the canonical vocabulary.
func KnownRelationships() []Relationship {
	return []Relationship{
		GatingDescription,
		CompensationDescription,
		CompensatedVersion,
		ClassificationResults,
		ProjectWorkspace,
		InstrumentationSettingsDescription,
		SampleSpecimenDescription,
		AnalysisDescription,
		ResultsDescription,
		RelatedPublication,
		DigitalSignature,
	}
}

// Matches reports whether label denotes this relationship, ignoring
// case and surrounding whitespace.
func (r Relationship) Matches(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), string(r))
}

// ClassifyRelationship returns the canonical relationship for label,
// or false if the label is outside the vocabulary.
func ClassifyRelationship(label string) (Relationship, bool) {
	for _, known := range KnownRelationships() {
		if known.Matches(label) {
			return known, true
		}
	}
	return "", false
}

// normalizeRelationship is the stored form of a label.
func normalizeRelationship(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
