// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Acs inspects and edits Archival Cytometry Standard packages.
//
//	acs versions experiment.acs
//	acs show --version 1 experiment.acs
//	acs add --fcs experiment.acs u937_16.fcs
//	acs extract -o gates.xml experiment.acs file:///gates.xml
//
// Run "acs --help" for the full command list.
package main
