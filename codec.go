/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hbbft

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Codec bundles everything the engine needs to know about an embedder's
// transaction type T: how to serialize it for the wire, how to parse it
// back, and how to order it so that a batch's transaction set is
// canonical across every honest node ("the T ordering
// determines batch order").
type Codec[T any] interface {
	Encode(tx T) ([]byte, error)
	Decode(data []byte) (T, error)
	Less(a, b T) bool
}

// CBORCodec is the default Codec: it marshals T with CBOR (deterministic
// for any T that round-trips through cbor.Marshal/Unmarshal without
// using maps with non-canonical key ordering) and orders elements with a
// caller-supplied comparator, since Go generics cannot derive Less for
// an arbitrary T on their own.
type CBORCodec[T any] struct {
	LessFunc func(a, b T) bool
}

func (c CBORCodec[T]) Encode(tx T) ([]byte, error) {
	return cbor.Marshal(tx)
}

func (c CBORCodec[T]) Decode(data []byte) (T, error) {
	var tx T
	err := cbor.Unmarshal(data, &tx)
	return tx, err
}

func (c CBORCodec[T]) Less(a, b T) bool {
	return c.LessFunc(a, b)
}

// Ordered is satisfied by any type usable with the < operator; it mirrors
// the stdlib cmp.Ordered constraint without requiring callers to import
// the cmp package themselves.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~string
}

// NewOrderedCBORCodec returns a CBORCodec whose Less uses T's natural <
// ordering, for the common case where T is a primitive or a named
// primitive type.
func NewOrderedCBORCodec[T Ordered]() CBORCodec[T] {
	return CBORCodec[T]{LessFunc: func(a, b T) bool { return a < b }}
}

// encodeProposal serializes txs as a length-prefixed sequence: a
// little-endian uint32 count, followed by that many (little-endian
// uint32 length, payload) pairs. The frame format itself
// is fixed regardless of what Codec a caller supplies for T, so it
// cannot be made pluggable the way T's own encoding is.
func encodeProposal[T any](codec Codec[T], txs []T) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(txs))); err != nil {
		return nil, err
	}
	for _, tx := range txs {
		data, err := codec.Encode(tx)
		if err != nil {
			return nil, err
		}
		if err := binary.Write(&buf, binary.LittleEndian, uint32(len(data))); err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// decodeProposal is the inverse of encodeProposal.
func decodeProposal[T any](codec Codec[T], data []byte) ([]T, error) {
	r := bytes.NewReader(data)
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	txs := make([]T, 0, count)
	for i := uint32(0); i < count; i++ {
		var length uint32
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, err
		}
		chunk := make([]byte, length)
		if _, err := io.ReadFull(r, chunk); err != nil {
			return nil, err
		}
		tx, err := codec.Decode(chunk)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
