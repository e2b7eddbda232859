// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration for machine
// readable cronkit output.
//
// cronkit writes three output formats: human text, JSON, and CBOR. JSON
// and CBOR carry the same records; CBOR is selected with --format cbor
// for consumers that want a compact binary stream. The encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2), so the same listing always
// produces identical bytes.
//
// Instants are written as tag 0 RFC 3339 strings, keeping the UTC offset
// of the zone an execution was computed in. Types implementing
// encoding.TextMarshaler, such as *cron.Cron, are written as text
// strings.
//
// For buffer-oriented use:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For streaming a listing record by record:
//
//	encoder := codec.NewEncoder(os.Stdout)
//	for _, record := range records {
//	    if err := encoder.Encode(record); err != nil { ... }
//	}
//
// # Struct Tags
//
// Output records carry `json` tags only. fxamacker/cbor v2 reads `json`
// tags when `cbor` tags are absent, so one tag controls field naming
// and omitempty for both formats.
package codec
