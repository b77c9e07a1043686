package actions

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/ava-labs/hypersdk/codec"

	"github.com/chokosabe/betvm/consts"
)

var ErrUnmarshalEmpty = errors.New("cannot unmarshal empty bytes")

// packTyped serializes a value with its one-byte type ID prefix.
func packTyped(typeID uint8, v interface{}) ([]byte, error) {
	p := &wrappers.Packer{
		Bytes:   make([]byte, 0, consts.MaxActionSize),
		MaxSize: consts.MaxActionSize,
	}
	p.PackByte(typeID)
	if err := codec.LinearCodec.MarshalInto(v, p); err != nil {
		return nil, err
	}
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Bytes, nil
}

// mustPackTyped is packTyped for Bytes() implementations, which have no error
// return.
func mustPackTyped(typeID uint8, v interface{}) []byte {
	b, err := packTyped(typeID, v)
	if err != nil {
		panic(fmt.Errorf("failed to marshal type %d: %w", typeID, err))
	}
	return b
}

// unpackTyped deserializes bytes produced by packTyped into v, verifying the
// type ID prefix.
func unpackTyped(b []byte, typeID uint8, v interface{}) error {
	if len(b) == 0 {
		return ErrUnmarshalEmpty
	}
	if b[0] != typeID {
		return fmt.Errorf("unexpected typeID: %d != %d", b[0], typeID)
	}
	return codec.LinearCodec.UnmarshalFrom(&wrappers.Packer{Bytes: b[1:]}, v)
}
