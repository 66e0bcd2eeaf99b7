// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	cerrors "coinjecture.dev/consensus/errors"
)

// Writer accumulates a strict binary encoding. There is no optional
// padding or alignment; every value is written in a fixed, declaration-
// matching order by the caller.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated encoding.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteUint8 writes a single byte.
func (w *Writer) WriteUint8(v uint8) {
	w.buf.WriteByte(v)
}

// WriteBool writes a boolean as a single 0/1 byte.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
}

// WriteUint32 writes v little-endian.
func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// WriteUint64 writes v little-endian.
func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// WriteInt32 writes v little-endian, two's complement.
func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

// WriteInt64 writes v little-endian, two's complement.
func (w *Writer) WriteInt64(v int64) {
	w.WriteUint64(uint64(v))
}

// WriteHash writes the raw 32 bytes of a hash.
func (w *Writer) WriteHash(b [32]byte) {
	w.buf.Write(b[:])
}

// WriteCompactSize writes v using the Bitcoin/Decred-lineage compact-size
// encoding: values below 0xfd take one byte; 0xfd/0xfe/0xff introduce a
// 2/4/8-byte little-endian payload respectively. This is the same
// length-prefix convention used across the wire formats in this family of
// chains.
func (w *Writer) WriteCompactSize(v uint64) {
	switch {
	case v < 0xfd:
		w.WriteUint8(uint8(v))
	case v <= 0xffff:
		w.WriteUint8(0xfd)
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(v))
		w.buf.Write(b[:])
	case v <= 0xffffffff:
		w.WriteUint8(0xfe)
		w.WriteUint32(uint32(v))
	default:
		w.WriteUint8(0xff)
		w.WriteUint64(v)
	}
}

// WriteVarBytes writes b as a compact-size length prefix followed by the
// raw bytes. It returns ErrOutOfRange if len(b) exceeds maxLen.
func (w *Writer) WriteVarBytes(fieldName string, maxLen int, b []byte) error {
	if len(b) > maxLen {
		return cerrors.OutOfRange(fieldName, fmt.Sprintf("length %d exceeds maximum %d", len(b), maxLen))
	}
	w.WriteCompactSize(uint64(len(b)))
	w.buf.Write(b)
	return nil
}

// WriteVarUint32s writes a compact-size count followed by that many
// little-endian uint32 values. It returns ErrOutOfRange if len(vs)
// exceeds maxLen.
func (w *Writer) WriteVarUint32s(fieldName string, maxLen int, vs []uint32) error {
	if len(vs) > maxLen {
		return cerrors.OutOfRange(fieldName, fmt.Sprintf("length %d exceeds maximum %d", len(vs), maxLen))
	}
	w.WriteCompactSize(uint64(len(vs)))
	for _, v := range vs {
		w.WriteUint32(v)
	}
	return nil
}

// Reader consumes a strict binary encoding produced by Writer.
type Reader struct {
	r   *bytes.Reader
	buf []byte // original, for offset reporting
}

// NewReader wraps data for strict decoding.
func NewReader(data []byte) *Reader {
	return &Reader{r: bytes.NewReader(data), buf: data}
}

// Remaining reports how many bytes are left unread.
func (r *Reader) Remaining() int {
	return r.r.Len()
}

// Offset reports the current read position, used for TrailingData errors.
func (r *Reader) Offset() int {
	return len(r.buf) - r.r.Len()
}

// FinishStrict must be called after a type has decoded every field it
// expects. It fails with ErrTrailingData if any bytes remain, satisfying
// spec invariant 4.
func (r *Reader) FinishStrict() error {
	if r.r.Len() > 0 {
		return cerrors.TrailingData(r.Offset())
	}
	return nil
}

func (r *Reader) readExact(fieldName string, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, cerrors.MissingField(fieldName)
	}
	return b, nil
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8(fieldName string) (uint8, error) {
	b, err := r.readExact(fieldName, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadBool reads a single 0/1 byte as a boolean.
func (r *Reader) ReadBool(fieldName string) (bool, error) {
	v, err := r.ReadUint8(fieldName)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32(fieldName string) (uint32, error) {
	b, err := r.readExact(fieldName, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadUint64 reads a little-endian uint64.
func (r *Reader) ReadUint64(fieldName string) (uint64, error) {
	b, err := r.readExact(fieldName, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadInt32 reads a little-endian, two's complement int32.
func (r *Reader) ReadInt32(fieldName string) (int32, error) {
	v, err := r.ReadUint32(fieldName)
	return int32(v), err
}

// ReadInt64 reads a little-endian, two's complement int64.
func (r *Reader) ReadInt64(fieldName string) (int64, error) {
	v, err := r.ReadUint64(fieldName)
	return int64(v), err
}

// ReadHash reads 32 raw bytes.
func (r *Reader) ReadHash(fieldName string) ([32]byte, error) {
	var h [32]byte
	b, err := r.readExact(fieldName, 32)
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}

// ReadCompactSize reads a compact-size encoded length/count.
func (r *Reader) ReadCompactSize(fieldName string) (uint64, error) {
	prefix, err := r.ReadUint8(fieldName)
	if err != nil {
		return 0, err
	}
	switch prefix {
	case 0xfd:
		b, err := r.readExact(fieldName, 2)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 0xfe:
		v, err := r.ReadUint32(fieldName)
		return uint64(v), err
	case 0xff:
		return r.ReadUint64(fieldName)
	default:
		return uint64(prefix), nil
	}
}

// ReadVarUint32s reads a compact-size count followed by that many
// little-endian uint32 values, failing with ErrOutOfRange if the declared
// count exceeds maxLen.
func (r *Reader) ReadVarUint32s(fieldName string, maxLen int) ([]uint32, error) {
	n, err := r.ReadCompactSize(fieldName)
	if err != nil {
		return nil, err
	}
	if n > uint64(maxLen) {
		return nil, cerrors.OutOfRange(fieldName, fmt.Sprintf("length %d exceeds maximum %d", n, maxLen))
	}
	vs := make([]uint32, n)
	for i := range vs {
		vs[i], err = r.ReadUint32(fieldName)
		if err != nil {
			return nil, err
		}
	}
	return vs, nil
}

// ReadVarBytes reads a compact-size length prefix followed by that many
// raw bytes, failing with ErrOutOfRange if the declared length exceeds
// maxLen.
func (r *Reader) ReadVarBytes(fieldName string, maxLen int) ([]byte, error) {
	n, err := r.ReadCompactSize(fieldName)
	if err != nil {
		return nil, err
	}
	if n > uint64(maxLen) {
		return nil, cerrors.OutOfRange(fieldName, fmt.Sprintf("length %d exceeds maximum %d", n, maxLen))
	}
	return r.readExact(fieldName, int(n))
}
