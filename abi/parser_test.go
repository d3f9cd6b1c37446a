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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeRoundTrip(t *testing.T) {
	// Canonical renderings parse back to themselves.
	for _, sig := range []string{
		"uint256",
		"uint8",
		"int256",
		"int24",
		"bool",
		"string",
		"address",
		"bytes",
		"bytes1",
		"bytes32",
		"bool[]",
		"bool[3]",
		"bool[3][]",
		"bool[][3]",
		"(uint256,bytes32)",
		"(uint256,bytes32)[]",
		"()",
		"(address,(uint256,uint256)[])[7]",
		"((bool,string[2])[],bytes24)",
	} {
		typ, err := ParseType(sig)
		require.NoError(t, err, sig)
		assert.Equal(t, sig, typ.String(), sig)
	}
}

func TestParseTypeShapes(t *testing.T) {
	typ, err := ParseType("bool[][3]")
	require.NoError(t, err)
	// Array suffixes wrap left to right.
	assert.Equal(t, ArrayTy, typ.T)
	assert.Equal(t, 3, typ.Size)
	assert.Equal(t, SliceTy, typ.Elem.T)
	assert.Equal(t, BoolTy, typ.Elem.Elem.T)

	typ, err = ParseType("uint")
	require.NoError(t, err)
	assert.Equal(t, UintTy, typ.T)
	assert.Equal(t, 256, typ.Size)

	typ, err = ParseType("int")
	require.NoError(t, err)
	assert.Equal(t, IntTy, typ.T)
	assert.Equal(t, 256, typ.Size)

	// byte is an alias for bytes1.
	typ, err = ParseType("byte")
	require.NoError(t, err)
	assert.Equal(t, FixedBytesTy, typ.T)
	assert.Equal(t, 1, typ.Size)

	// tuple keyword forms.
	typ, err = ParseType("tuple")
	require.NoError(t, err)
	assert.Equal(t, TupleTy, typ.T)
	assert.Empty(t, typ.TupleElems)

	typ, err = ParseType("tuple(uint256,bool)[2]")
	require.NoError(t, err)
	assert.Equal(t, "(uint256,bool)[2]", typ.String())
}

func TestParseTypeErrors(t *testing.T) {
	var lexErr *LexerError
	for _, sig := range []string{"", "notatype", "bool[", "(uint256", "(uint256 bool)", "[3]"} {
		_, err := ParseType(sig)
		require.ErrorAs(t, err, &lexErr, sig)
	}
}

func TestParseFunction(t *testing.T) {
	method, err := ParseFunction("function transfer(address to, uint256 amount) returns (bool success)")
	require.NoError(t, err)
	assert.Equal(t, "transfer", method.Name)
	assert.Equal(t, "transfer(address,uint256)", method.Sig)
	require.Len(t, method.Inputs, 2)
	assert.Equal(t, "to", method.Inputs[0].Name)
	assert.Equal(t, AddressTy, method.Inputs[0].Type.T)
	assert.Equal(t, "amount", method.Inputs[1].Name)
	require.Len(t, method.Outputs, 1)
	assert.Equal(t, "success", method.Outputs[0].Name)
	assert.Equal(t, BoolTy, method.Outputs[0].Type.T)
	assert.Equal(t, "nonpayable", method.StateMutability)
}

func TestParseFunctionKeywordOptional(t *testing.T) {
	// The leading "function" keyword must not change the result.
	withKw, err := ParseFunction("function balanceOf(address owner) view returns (uint256)")
	require.NoError(t, err)
	withoutKw, err := ParseFunction("balanceOf(address owner) view returns (uint256)")
	require.NoError(t, err)
	assert.Equal(t, withKw.Sig, withoutKw.Sig)
	assert.Equal(t, withKw.ID, withoutKw.ID)
	assert.Equal(t, withKw.StateMutability, withoutKw.StateMutability)
	assert.Equal(t, withKw.String(), withoutKw.String())
}

func TestParseFunctionModifiers(t *testing.T) {
	// Visibility, virtual and override are discarded, mutability is kept.
	method, err := ParseFunction("function f(uint256 memory x) public virtual override pure returns (uint256)")
	require.NoError(t, err)
	assert.Equal(t, "pure", method.StateMutability)
	assert.True(t, method.IsConstant())

	method, err = ParseFunction("function deposit() external payable")
	require.NoError(t, err)
	assert.Equal(t, "payable", method.StateMutability)
	assert.True(t, method.IsPayable())
	assert.Empty(t, method.Outputs)

	// Output list without the returns keyword.
	method, err = ParseFunction("function get() external view (uint256 value)")
	require.NoError(t, err)
	require.Len(t, method.Outputs, 1)
	assert.Equal(t, "value", method.Outputs[0].Name)
}

func TestParseFunctionDataLocations(t *testing.T) {
	method, err := ParseFunction("function store(bytes calldata data, string memory note)")
	require.NoError(t, err)
	assert.Equal(t, "store(bytes,string)", method.Sig)
	assert.Equal(t, "data", method.Inputs[0].Name)
	assert.Equal(t, "note", method.Inputs[1].Name)
}

func TestParseEvent(t *testing.T) {
	event, err := ParseEvent("event ValueChanged(address indexed author, string oldValue, string newValue)")
	require.NoError(t, err)
	assert.Equal(t, "ValueChanged", event.Name)
	assert.Equal(t, "ValueChanged(address,string,string)", event.Sig)
	assert.False(t, event.Anonymous)
	require.Len(t, event.Inputs, 3)
	assert.True(t, event.Inputs[0].Indexed)
	assert.False(t, event.Inputs[1].Indexed)
	assert.False(t, event.Inputs[2].Indexed)

	event, err = ParseEvent("event Ping(uint256) anonymous")
	require.NoError(t, err)
	assert.True(t, event.Anonymous)

	// The event keyword is mandatory.
	_, err = ParseEvent("Ping(uint256)")
	assert.Error(t, err)
}

func TestParseErrorDecl(t *testing.T) {
	abiErr, err := ParseError("error InsufficientBalance(uint256 available, uint256 required)")
	require.NoError(t, err)
	assert.Equal(t, "InsufficientBalance", abiErr.Name)
	assert.Equal(t, "InsufficientBalance(uint256,uint256)", abiErr.Sig)

	// The error keyword is optional.
	bare, err := ParseError("InsufficientBalance(uint256 available, uint256 required)")
	require.NoError(t, err)
	assert.Equal(t, abiErr.Sig, bare.Sig)
	assert.Equal(t, abiErr.ID, bare.ID)
}

func TestParseConstructorDecl(t *testing.T) {
	method, err := ParseConstructor("constructor(address owner, uint256 supply) payable")
	require.NoError(t, err)
	assert.Equal(t, Constructor, method.Type)
	assert.Empty(t, method.Name)
	assert.Empty(t, method.Sig)
	require.Len(t, method.Inputs, 2)
	assert.Equal(t, "payable", method.StateMutability)

	_, err = ParseConstructor("(address owner)")
	assert.Error(t, err)
}

func TestParseNestedTupleArray(t *testing.T) {
	typ, err := ParseType("(uint256,bytes32)[]")
	require.NoError(t, err)
	assert.Equal(t, SliceTy, typ.T)
	require.Equal(t, TupleTy, typ.Elem.T)
	require.Len(t, typ.Elem.TupleElems, 2)
	assert.Equal(t, UintTy, typ.Elem.TupleElems[0].T)
	assert.Equal(t, 256, typ.Elem.TupleElems[0].Size)
	assert.Equal(t, FixedBytesTy, typ.Elem.TupleElems[1].T)
	assert.Equal(t, 32, typ.Elem.TupleElems[1].Size)
}

func TestParseTypeWithResolver(t *testing.T) {
	point := Type{T: TupleTy, TupleElems: []*Type{
		{T: UintTy, Size: 256},
		{T: UintTy, Size: 256},
	}, TupleRawNames: []string{"x", "y"}}
	resolver := func(name string) (Type, bool) {
		if name == "Point" {
			return point, true
		}
		return Type{}, false
	}

	typ, err := ParseTypeWith("Point[2]", resolver)
	require.NoError(t, err)
	assert.Equal(t, "(uint256,uint256)[2]", typ.String())

	_, err = ParseTypeWith("Rect", resolver)
	var lexErr *LexerError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, ErrUnrecognisedToken, lexErr.Code)
}

func TestParseTrailingInputIgnored(t *testing.T) {
	typ, err := ParseType("uint256 trailing garbage")
	require.NoError(t, err)
	assert.Equal(t, "uint256", typ.String())
}
