// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package acs reads and writes Archival Cytometry Standard packages.
//
// A package is a zip archive holding data files plus one XML manifest
// per version, named TOC1.xml, TOC2.xml, and so on. Each manifest
// lists resources by URI with optional MIME type and description,
// typed associations between resources, and free-form annotations.
// Resources with a file URI are stored in the package under the URI
// path; every other scheme is an external reference.
//
// The model:
//
//   - [Container]: the open package. Owns the version chain, the
//     inventory of the original package, and temp files. [Open] loads
//     a package, [NewContainer] starts from nothing,
//     [Container.WritePackage] writes all versions to a new package.
//   - [TableOfContents]: one manifest version. Resources are unique by
//     URI ignoring case and keep insertion order.
//   - [Resource]: one manifest entry and its content [Source], which
//     is a one-shot reader, a local file, or the original package.
//   - [Association]: a labelled edge to another resource, held by URI
//     and resolved on demand. Labels are trimmed and lower-cased; the
//     known vocabulary is [KnownRelationships].
//   - [Annotations]: ordered text, tagged and opaque XML content,
//     attached to a manifest or to a resource.
//
// Versions are append-only. To change a package, derive the next
// version and edit it:
//
//	container, err := acs.Open("experiment.acs", acs.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer container.Close()
//
//	next, err := container.CreateNextTableOfContents()
//	if err != nil {
//	    return err
//	}
//	gating, err := next.CreateResource("file:///gates.xml", acs.FromFile("gates.xml"), "application/xml")
//	if err != nil {
//	    return err
//	}
//	sample := next.ResourceByURI("file:///sample.fcs")
//	if _, err := sample.CreateAssociation(gating, "gating description"); err != nil {
//	    return err
//	}
//	return container.WritePackageFile("experiment-v3.acs")
//
// Content is read lazily: nothing is copied out of the original
// package until a resource is extracted or a package is written, and
// each read rescans the original package from the start.
//
// A Container and everything reachable from it must not be used from
// more than one goroutine at a time.
package acs
