package capability

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// fingerprintEncMode encodes descriptors deterministically.
var fingerprintEncMode cbor.EncMode

func init() {
	var err error
	fingerprintEncMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create fingerprint CBOR encoder mode: %v", err))
	}
}

// Encode returns the canonical CBOR encoding of d. The extension is not
// part of the encoding, so two descriptors with equal capabilities encode
// identically regardless of which pool their strings live in.
func (d Descriptor) Encode() ([]byte, error) {
	return fingerprintEncMode.Marshal(d)
}

// Fingerprint returns a hex BLAKE2b-256 digest of the canonical encoding.
func (d Descriptor) Fingerprint() string {
	data, err := d.Encode()
	if err != nil {
		return ""
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
