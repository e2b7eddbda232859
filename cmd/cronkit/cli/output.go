// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/bureau-foundation/cronkit/lib/codec"
)

// Format selects how a command writes its result.
type Format string

const (
	// FormatText is human-readable output, specific to each command.
	FormatText Format = "text"
	// FormatJSON is indented JSON.
	FormatJSON Format = "json"
	// FormatCBOR is Core Deterministic CBOR via lib/codec.
	FormatCBOR Format = "cbor"
)

// ParseFormat validates a --format value.
func ParseFormat(value string) (Format, error) {
	switch format := Format(value); format {
	case FormatText, FormatJSON, FormatCBOR:
		return format, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json, or cbor)", value)
}

// Emit writes result to w in the given format. For FormatText it calls
// text instead, which renders the same result for a terminal.
//
// Nil slices are normalized to empty slices before serialization, so
// callers never need to guard against null JSON output.
func Emit(w io.Writer, format Format, result any, text func(io.Writer) error) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, normalizeNilSlice(result))
	case FormatCBOR:
		return codec.NewEncoder(w).Encode(normalizeNilSlice(result))
	default:
		return text(w)
	}
}

// WriteJSON marshals value as indented JSON and writes it to w.
func WriteJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// normalizeNilSlice returns an empty slice of the same type if value
// is a nil slice, so that JSON serialization produces [] instead of
// null. Returns value unchanged for all other types.
func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}
