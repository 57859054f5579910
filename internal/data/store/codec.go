package store

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Account payloads are CBOR in core-deterministic mode so the same
// record always serializes to the same bytes regardless of map order.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("store: cbor enc mode: %v", err))
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("store: cbor dec mode: %v", err))
	}
}

// Marshal encodes an entity into account payload bytes.
func Marshal(v any) ([]byte, error) {
	data, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode account payload: %w", err)
	}
	return data, nil
}

// Unmarshal decodes account payload bytes into an entity.
func Unmarshal(data []byte, v any) error {
	if err := decMode.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode account payload: %w", err)
	}
	return nil
}
