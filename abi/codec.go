// Copyright 2024 The abiforge Authors
// This file is part of the abiforge library.
//
// The abiforge library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The abiforge library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the abiforge library. If not, see <http://www.gnu.org/licenses/>.

package abi

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/abiforge/abiforge/common"
	"github.com/holiman/uint256"
)

// InvalidOutputTypeError is returned by FromToken, Detokenize and the
// Arguments helpers when a token variant cannot be converted into the
// requested type.
type InvalidOutputTypeError struct {
	Expected string
	Token    Token
}

func (e *InvalidOutputTypeError) Error() string {
	return fmt.Sprintf("abi: invalid output type: expected %s, got %s", e.Expected, e.Token)
}

func invalidOutput(expected string, tok Token) error {
	return &InvalidOutputTypeError{Expected: expected, Token: tok}
}

// typeErr returns a formatted type casting error.
func typeErr(expected Type, got interface{}) error {
	return fmt.Errorf("abi: cannot use %T as type %v as argument", got, expected)
}

// IntoToken converts a native Go value into the runtime token of type t.
//
// Accepted inputs per type:
//   - address: common.Address or *common.Address
//   - bool, string: the corresponding Go type
//   - uintN: uint, uint8..uint64, *big.Int, *uint256.Int
//   - intN: int, int8..int64, *big.Int, *uint256.Int; negative values are
//     stored in 256-bit two's complement form
//   - bytes: []byte (any slice with byte element type)
//   - bytesN: a byte slice or array of exactly N bytes (common.Hash for
//     bytes32)
//   - T[] / T[k]: any Go slice or array whose elements convert to T, with
//     an exact length check for fixed arrays
//   - tuples: a struct whose exported fields convert positionally, or a
//     slice/array of matching arity
//
// A Token passes through unchanged after a shape check against t.
func (t Type) IntoToken(v interface{}) (Token, error) {
	if tok, ok := v.(Token); ok {
		if _, err := t.FromToken(tok); err != nil {
			return Token{}, err
		}
		return tok, nil
	}
	switch t.T {
	case AddressTy:
		switch val := v.(type) {
		case common.Address:
			return NewAddressToken(val), nil
		case *common.Address:
			return NewAddressToken(*val), nil
		}
		return Token{}, typeErr(t, v)

	case BoolTy:
		if b, ok := v.(bool); ok {
			return NewBoolToken(b), nil
		}
		return Token{}, typeErr(t, v)

	case StringTy:
		if s, ok := v.(string); ok {
			return NewStringToken(s), nil
		}
		return Token{}, typeErr(t, v)

	case UintTy, IntTy:
		word, err := intWord(t, v)
		if err != nil {
			return Token{}, err
		}
		if t.T == UintTy {
			return NewUintToken(word), nil
		}
		return NewIntToken(word), nil

	case BytesTy:
		if b, ok := byteSlice(v); ok {
			return NewBytesToken(b), nil
		}
		return Token{}, typeErr(t, v)

	case FixedBytesTy:
		if h, ok := v.(common.Hash); ok && t.Size == common.HashLength {
			return NewFixedBytesToken(h[:]), nil
		}
		b, ok := byteSlice(v)
		if !ok {
			return Token{}, typeErr(t, v)
		}
		if len(b) != t.Size {
			return Token{}, fmt.Errorf("abi: cannot use %d byte value as type %v as argument", len(b), t)
		}
		return NewFixedBytesToken(b), nil

	case SliceTy, ArrayTy:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return Token{}, typeErr(t, v)
		}
		if t.T == ArrayTy && rv.Len() != t.Size {
			return Token{}, fmt.Errorf("abi: cannot use %d element value as type %v as argument", rv.Len(), t)
		}
		elems := make([]Token, rv.Len())
		for i := range elems {
			elem, err := t.Elem.IntoToken(rv.Index(i).Interface())
			if err != nil {
				return Token{}, err
			}
			elems[i] = elem
		}
		if t.T == ArrayTy {
			return NewFixedArrayToken(elems...), nil
		}
		return NewArrayToken(elems...), nil

	case TupleTy:
		return t.tupleToken(v)

	default:
		return Token{}, fmt.Errorf("abi: unknown type %v", t.T)
	}
}

// tupleToken converts a struct or a slice/array of values into a tuple token,
// matching the tuple's fields positionally.
func (t Type) tupleToken(v interface{}) (Token, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		fields := exportedFields(rv)
		if len(fields) != len(t.TupleElems) {
			return Token{}, fmt.Errorf("abi: cannot use struct with %d fields as type %v as argument", len(fields), t)
		}
		elems := make([]Token, len(fields))
		for i, field := range fields {
			elem, err := t.TupleElems[i].IntoToken(field.Interface())
			if err != nil {
				return Token{}, err
			}
			elems[i] = elem
		}
		return NewTupleToken(elems...), nil

	case reflect.Slice, reflect.Array:
		if rv.Len() != len(t.TupleElems) {
			return Token{}, fmt.Errorf("abi: cannot use %d element value as type %v as argument", rv.Len(), t)
		}
		elems := make([]Token, rv.Len())
		for i := range elems {
			elem, err := t.TupleElems[i].IntoToken(rv.Index(i).Interface())
			if err != nil {
				return Token{}, err
			}
			elems[i] = elem
		}
		return NewTupleToken(elems...), nil
	}
	return Token{}, typeErr(t, v)
}

func exportedFields(rv reflect.Value) []reflect.Value {
	var fields []reflect.Value
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		if rt.Field(i).IsExported() {
			fields = append(fields, rv.Field(i))
		}
	}
	return fields
}

// intWord converts a native integer value into its 256-bit word. Negative
// signed values wrap to their two's complement representation, so e.g. an
// int8 of -1 becomes the all-ones word.
func intWord(t Type, v interface{}) (*uint256.Int, error) {
	switch val := v.(type) {
	case *uint256.Int:
		return new(uint256.Int).Set(val), nil
	case *big.Int:
		word := new(uint256.Int)
		if overflow := word.SetFromBig(val); overflow {
			return nil, fmt.Errorf("abi: cannot use %v as type %v as argument: value does not fit in 256 bits", val, t)
		}
		return word, nil
	case uint:
		return uint256.NewInt(uint64(val)), nil
	case uint8:
		return uint256.NewInt(uint64(val)), nil
	case uint16:
		return uint256.NewInt(uint64(val)), nil
	case uint32:
		return uint256.NewInt(uint64(val)), nil
	case uint64:
		return uint256.NewInt(val), nil
	case int:
		return signedWord(int64(val)), nil
	case int8:
		return signedWord(int64(val)), nil
	case int16:
		return signedWord(int64(val)), nil
	case int32:
		return signedWord(int64(val)), nil
	case int64:
		return signedWord(val), nil
	}
	return nil, typeErr(t, v)
}

// signedWord sign-extends the 64-bit two's complement pattern of v to 256
// bits.
func signedWord(v int64) *uint256.Int {
	word := new(uint256.Int).SetUint64(uint64(v))
	if v < 0 {
		word.ExtendSign(word, uint256.NewInt(7))
	}
	return word
}

// FromToken converts a runtime token back into a native Go value for type t.
//
// Produced outputs per type:
//   - address: common.Address
//   - bool, string: the corresponding Go type
//   - uintN: uint8/uint16/uint32/uint64 for N <= 64, *uint256.Int above
//   - intN: int8/int16/int32/int64 for N <= 64, a sign-extended
//     *uint256.Int (two's complement word) above
//   - bytes, bytesN: []byte
//   - arrays and tuples: []interface{} of the converted elements
//
// Integer tokens are reinterpreted from their low N bits without range
// validation: a Uint(256) holding 2^255 converts to uint8 as 0. Callers
// needing range checks must validate the token value beforehand.
func (t Type) FromToken(tok Token) (interface{}, error) {
	switch t.T {
	case AddressTy:
		if tok.Kind != AddressToken {
			return nil, invalidOutput("address", tok)
		}
		return tok.Addr, nil

	case BoolTy:
		if tok.Kind != BoolToken {
			return nil, invalidOutput("bool", tok)
		}
		return tok.Bool, nil

	case StringTy:
		if tok.Kind != StringToken {
			return nil, invalidOutput("string", tok)
		}
		return tok.Str, nil

	case BytesTy:
		switch tok.Kind {
		case BytesToken, FixedBytesToken:
			return tok.Bytes, nil
		case ArrayToken, FixedArrayToken:
			// A byte-wise integer array converts to its packed form.
			out := make([]byte, len(tok.Elems))
			for i, elem := range tok.Elems {
				if elem.Kind != UintToken && elem.Kind != IntToken {
					return nil, invalidOutput("bytes", tok)
				}
				out[i] = byte(elem.Int.Uint64())
			}
			return out, nil
		}
		return nil, invalidOutput("bytes", tok)

	case FixedBytesTy:
		if tok.Kind != FixedBytesToken {
			return nil, invalidOutput(t.String(), tok)
		}
		if len(tok.Bytes) != t.Size {
			return nil, invalidOutput(t.String(), tok)
		}
		return tok.Bytes, nil

	case UintTy:
		if tok.Kind != UintToken && tok.Kind != IntToken {
			return nil, invalidOutput(t.String(), tok)
		}
		word := truncateWord(tok.Int, t.Size)
		switch {
		case t.Size <= 8:
			return uint8(word.Uint64()), nil
		case t.Size <= 16:
			return uint16(word.Uint64()), nil
		case t.Size <= 32:
			return uint32(word.Uint64()), nil
		case t.Size <= 64:
			return word.Uint64(), nil
		}
		return word, nil

	case IntTy:
		if tok.Kind != IntToken && tok.Kind != UintToken {
			return nil, invalidOutput(t.String(), tok)
		}
		word := truncateWord(tok.Int, t.Size)
		if t.Size <= 64 {
			// Sign-extend the low N bits within a 64-bit value.
			v := int64(word.Uint64()<<(64-t.Size)) >> (64 - t.Size)
			switch {
			case t.Size <= 8:
				return int8(v), nil
			case t.Size <= 16:
				return int16(v), nil
			case t.Size <= 32:
				return int32(v), nil
			}
			return v, nil
		}
		word.ExtendSign(word, uint256.NewInt(uint64(t.Size/8-1)))
		return word, nil

	case SliceTy:
		if tok.Kind != ArrayToken && tok.Kind != FixedArrayToken {
			return nil, invalidOutput(t.String(), tok)
		}
		return t.elemValues(tok.Elems)

	case ArrayTy:
		if tok.Kind != FixedArrayToken {
			return nil, invalidOutput(t.String(), tok)
		}
		if len(tok.Elems) != t.Size {
			return nil, invalidOutput(t.String(), tok)
		}
		return t.elemValues(tok.Elems)

	case TupleTy:
		if tok.Kind != TupleToken {
			return nil, invalidOutput(t.String(), tok)
		}
		if len(tok.Elems) != len(t.TupleElems) {
			return nil, invalidOutput(t.String(), tok)
		}
		out := make([]interface{}, len(tok.Elems))
		for i, elem := range tok.Elems {
			v, err := t.TupleElems[i].FromToken(elem)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	default:
		return nil, fmt.Errorf("abi: unknown type %v", t.T)
	}
}

func (t Type) elemValues(elems []Token) ([]interface{}, error) {
	out := make([]interface{}, len(elems))
	for i, elem := range elems {
		v, err := t.Elem.FromToken(elem)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// truncateWord copies the low size bits of word.
func truncateWord(word *uint256.Int, size int) *uint256.Int {
	out := new(uint256.Int).Set(word)
	if size >= 256 {
		return out
	}
	mask := new(uint256.Int).Lsh(uint256.NewInt(1), uint(size))
	mask.SubUint64(mask, 1)
	return out.And(out, mask)
}

// byteSlice extracts the byte contents of v if it is a slice or array with a
// byte element type.
func byteSlice(v interface{}) ([]byte, bool) {
	if b, ok := v.([]byte); ok {
		return b, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() != reflect.Uint8 {
			return nil, false
		}
		out := make([]byte, rv.Len())
		for i := range out {
			out[i] = byte(rv.Index(i).Uint())
		}
		return out, true
	}
	return nil, false
}
