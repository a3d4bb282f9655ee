// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"io"
	"reflect"

	"github.com/cytobank/acs/lib/codec"
)

// OutputFormat is an embeddable params struct adding --json and --cbor
// result output to a command.
//
//	type showParams struct {
//	    cli.OutputFormat
//	    Version int `flag:"version" desc:"manifest version"`
//	}
//
//	// In Run:
//	if done, err := params.Emit(os.Stdout, snapshot); done {
//	    return err
//	}
//	// ... text formatting ...
type OutputFormat struct {
	OutputJSON bool `flag:"json" desc:"output as JSON"`
	OutputCBOR bool `flag:"cbor" desc:"output as deterministic CBOR"`
}

// Emit writes result to w in the selected structured format. It
// returns false when neither flag is set and the caller should print
// text. --cbor wins over --json. Nil slices are written as empty
// arrays.
func (o *OutputFormat) Emit(w io.Writer, result any) (bool, error) {
	switch {
	case o.OutputCBOR:
		return true, WriteCBOR(w, normalizeNilSlice(result))
	case o.OutputJSON:
		return true, WriteJSON(w, normalizeNilSlice(result))
	default:
		return false, nil
	}
}

// WriteJSON writes value to w as indented JSON.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// WriteCBOR writes value to w as Core Deterministic CBOR.
func WriteCBOR(w io.Writer, value any) error {
	return codec.NewEncoder(w).Encode(value)
}

func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}
