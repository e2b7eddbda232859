// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schedulefile

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/cronkit/lib/cron"
)

// Fingerprint is a 32-byte BLAKE3 digest identifying a schedule by
// dialect and canonical expression.
type Fingerprint [32]byte

// fingerprintKey is the BLAKE3 key of the fingerprint domain: the ASCII
// domain name zero-padded to 32 bytes. Changing it changes every
// fingerprint.
var fingerprintKey = [32]byte{
	'c', 'r', 'o', 'n', 'k', 'i', 't', '.', 's', 'c', 'h', 'e', 'd', 'u', 'l', 'e',
	'.', 'f', 'i', 'n', 'g', 'e', 'r', 'p', 'r', 'i', 'n', 't', 0, 0, 0, 0,
}

// FingerprintOf computes the fingerprint of c: the keyed hash of the
// dialect name, a zero byte, and the canonical text.
func FingerprintOf(c *cron.Cron) Fingerprint {
	// NewKeyed only fails for keys that are not 32 bytes long.
	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		panic("schedulefile: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write([]byte(c.Definition().Name()))
	hasher.Write([]byte{0})
	hasher.Write([]byte(c.String()))

	var fingerprint Fingerprint
	copy(fingerprint[:], hasher.Sum(nil))
	return fingerprint
}

// String returns the full hex encoding.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Short returns the "sch-" prefix followed by the first 12 hex
// characters, for display.
func (f Fingerprint) Short() string {
	return "sch-" + hex.EncodeToString(f[:6])
}
