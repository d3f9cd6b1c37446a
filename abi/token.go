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
	"bytes"
	"fmt"
	"strings"

	"github.com/abiforge/abiforge/common"
	"github.com/holiman/uint256"
)

// TokenKind enumerates the runtime ABI value variants.
type TokenKind byte

const (
	AddressToken TokenKind = iota
	FixedBytesToken
	BytesToken
	IntToken
	UintToken
	BoolToken
	StringToken
	FixedArrayToken
	ArrayToken
	TupleToken
)

// Token is a runtime ABI value, the dynamic counterpart of Type. Tokens are
// transient: they are constructed while encoding arguments and consumed while
// decoding call results and event logs, and are never persisted.
//
// The Kind tag selects the variant; only the matching payload field is
// meaningful. Int and Uint both carry an unsigned 256 bit word, negative
// integers are stored in two's complement form.
type Token struct {
	Kind  TokenKind
	Addr  common.Address
	Bytes []byte
	Int   *uint256.Int
	Bool  bool
	Str   string
	Elems []Token
}

// NewAddressToken returns an Address token.
func NewAddressToken(addr common.Address) Token {
	return Token{Kind: AddressToken, Addr: addr}
}

// NewFixedBytesToken returns a FixedBytes token wrapping b.
func NewFixedBytesToken(b []byte) Token {
	return Token{Kind: FixedBytesToken, Bytes: b}
}

// NewBytesToken returns a Bytes token wrapping b.
func NewBytesToken(b []byte) Token {
	return Token{Kind: BytesToken, Bytes: b}
}

// NewIntToken returns an Int token holding the two's complement word v.
func NewIntToken(v *uint256.Int) Token {
	return Token{Kind: IntToken, Int: v}
}

// NewUintToken returns a Uint token holding v.
func NewUintToken(v *uint256.Int) Token {
	return Token{Kind: UintToken, Int: v}
}

// NewBoolToken returns a Bool token.
func NewBoolToken(b bool) Token {
	return Token{Kind: BoolToken, Bool: b}
}

// NewStringToken returns a String token.
func NewStringToken(s string) Token {
	return Token{Kind: StringToken, Str: s}
}

// NewFixedArrayToken returns a FixedArray token over elems.
func NewFixedArrayToken(elems ...Token) Token {
	return Token{Kind: FixedArrayToken, Elems: elems}
}

// NewArrayToken returns an Array token over elems.
func NewArrayToken(elems ...Token) Token {
	return Token{Kind: ArrayToken, Elems: elems}
}

// NewTupleToken returns a Tuple token over elems.
func NewTupleToken(elems ...Token) Token {
	return Token{Kind: TupleToken, Elems: elems}
}

// Equal reports whether two tokens carry the same variant and value.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case AddressToken:
		return t.Addr == other.Addr
	case FixedBytesToken, BytesToken:
		return bytes.Equal(t.Bytes, other.Bytes)
	case IntToken, UintToken:
		return t.Int.Eq(other.Int)
	case BoolToken:
		return t.Bool == other.Bool
	case StringToken:
		return t.Str == other.Str
	default:
		if len(t.Elems) != len(other.Elems) {
			return false
		}
		for i, elem := range t.Elems {
			if !elem.Equal(other.Elems[i]) {
				return false
			}
		}
		return true
	}
}

// String renders the token for error messages and debugging.
func (t Token) String() string {
	switch t.Kind {
	case AddressToken:
		return fmt.Sprintf("Address(%s)", t.Addr.Hex())
	case FixedBytesToken:
		return fmt.Sprintf("FixedBytes(%#x)", t.Bytes)
	case BytesToken:
		return fmt.Sprintf("Bytes(%#x)", t.Bytes)
	case IntToken:
		return fmt.Sprintf("Int(%s)", t.Int.Hex())
	case UintToken:
		return fmt.Sprintf("Uint(%s)", t.Int.Hex())
	case BoolToken:
		return fmt.Sprintf("Bool(%t)", t.Bool)
	case StringToken:
		return fmt.Sprintf("String(%q)", t.Str)
	case FixedArrayToken:
		return "FixedArray" + t.elemsString()
	case ArrayToken:
		return "Array" + t.elemsString()
	case TupleToken:
		return "Tuple" + t.elemsString()
	default:
		return fmt.Sprintf("Token(%d)", t.Kind)
	}
}

func (t Token) elemsString() string {
	elems := make([]string, len(t.Elems))
	for i, elem := range t.Elems {
		elems[i] = elem.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}
