package artifact

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// canonical encoding keeps artifacts byte for byte reproducible
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("artifact: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// EncodeCBOR serializes an artifact to CBOR bytes.
func EncodeCBOR(art *Artifact) ([]byte, error) {
	return cborEncMode.Marshal(art)
}

// DecodeCBOR deserializes an artifact from CBOR bytes, rejecting unknown
// container versions.
func DecodeCBOR(data []byte) (*Artifact, error) {
	var art Artifact
	if err := cbor.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("artifact: unmarshal: %w", err)
	}
	if art.Version != Version {
		return nil, fmt.Errorf("artifact: unsupported version %v, expected %v", art.Version, Version)
	}
	return &art, nil
}
