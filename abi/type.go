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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Type enumerator
const (
	IntTy byte = iota
	UintTy
	BoolTy
	StringTy
	SliceTy
	ArrayTy
	TupleTy
	AddressTy
	FixedBytesTy
	BytesTy
)

// Type is the static ABI type of a single parameter. It is a closed sum:
// the T tag selects the variant and the remaining fields carry the
// variant's payload.
//
// Size holds the bit width for IntTy/UintTy, the byte length for
// FixedBytesTy and the element count for ArrayTy. Elem is set for SliceTy
// and ArrayTy, TupleElems for TupleTy. A Type tree is finite and immutable
// once built.
type Type struct {
	Elem *Type
	Size int
	T    byte

	// Tuple relative fields
	TupleElems    []*Type  // Type information of all tuple fields
	TupleRawNames []string // Raw field name of all tuple fields, may be empty
}

// String returns the canonical signature rendering of the type, e.g.
// "uint256", "bool[3][]" or "(address,bytes32)".
func (t Type) String() string {
	switch t.T {
	case IntTy:
		return "int" + strconv.Itoa(t.Size)
	case UintTy:
		return "uint" + strconv.Itoa(t.Size)
	case BoolTy:
		return "bool"
	case StringTy:
		return "string"
	case SliceTy:
		return t.Elem.String() + "[]"
	case ArrayTy:
		return t.Elem.String() + "[" + strconv.Itoa(t.Size) + "]"
	case TupleTy:
		elems := make([]string, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			elems[i] = elem.String()
		}
		return "(" + strings.Join(elems, ",") + ")"
	case AddressTy:
		return "address"
	case FixedBytesTy:
		return "bytes" + strconv.Itoa(t.Size)
	case BytesTy:
		return "bytes"
	default:
		panic("abi: unknown type")
	}
}

// NewType creates the ABI type corresponding to the given JSON ABI type
// string. Tuples are described by the "tuple" keyword together with their
// components, nested arrays by trailing "[]" / "[n]" suffixes.
func NewType(t string, components []ArgumentMarshaling) (typ Type, err error) {
	// check that array brackets are equal if they exist
	if strings.Count(t, "[") != strings.Count(t, "]") {
		return Type{}, errors.New("invalid arg type in abi")
	}
	// if there are brackets, get ready to go into slice/array mode and
	// recursively create the type
	if i := strings.LastIndex(t, "["); i != -1 {
		embeddedType, err := NewType(t[:i], components)
		if err != nil {
			return Type{}, err
		}
		sliced := strings.TrimSuffix(t[i+1:], "]")
		if sliced == "" {
			return Type{T: SliceTy, Elem: &embeddedType}, nil
		}
		size, err := strconv.Atoi(sliced)
		if err != nil || size < 0 {
			return Type{}, fmt.Errorf("abi: error parsing array size: %q", sliced)
		}
		return Type{T: ArrayTy, Elem: &embeddedType, Size: size}, nil
	}
	if t == "tuple" {
		elems := make([]*Type, len(components))
		names := make([]string, len(components))
		for i, c := range components {
			cType, err := NewType(c.Type, c.Components)
			if err != nil {
				return Type{}, err
			}
			elems[i] = &cType
			names[i] = c.Name
		}
		return Type{T: TupleTy, TupleElems: elems, TupleRawNames: names}, nil
	}
	// The remaining cases are exactly the elementary type keywords of the
	// signature grammar, so delegate to the signature parser.
	typ, err = ParseType(t)
	if err != nil {
		return Type{}, fmt.Errorf("unsupported arg type: %s", t)
	}
	return typ, nil
}

// Equal reports whether two types describe the same ABI type.
func (t Type) Equal(other Type) bool {
	if t.T != other.T || t.Size != other.Size {
		return false
	}
	if (t.Elem == nil) != (other.Elem == nil) {
		return false
	}
	if t.Elem != nil && !t.Elem.Equal(*other.Elem) {
		return false
	}
	if len(t.TupleElems) != len(other.TupleElems) {
		return false
	}
	for i, elem := range t.TupleElems {
		if !elem.Equal(*other.TupleElems[i]) {
			return false
		}
	}
	return true
}

// isDynamicType returns true if the type is dynamic.
// The following types are called "dynamic":
// * bytes
// * string
// * T[] for any T
// * T[k] for any dynamic T and any k >= 0
// * (T1,...,Tk) if Ti is dynamic for some 1 <= i <= k
func isDynamicType(t Type) bool {
	if t.T == TupleTy {
		for _, elem := range t.TupleElems {
			if isDynamicType(*elem) {
				return true
			}
		}
		return false
	}
	return t.T == StringTy || t.T == BytesTy || t.T == SliceTy || (t.T == ArrayTy && isDynamicType(*t.Elem))
}
