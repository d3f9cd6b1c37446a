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
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeFlattensTopLevelTuple(t *testing.T) {
	type args struct {
		Amount *big.Int
		Live   bool
	}
	tokens, err := Tokenize(mustType(t, "(uint256,bool)"), args{big.NewInt(5), true})
	require.NoError(t, err)
	// The tuple becomes one token per field, not one nested tuple token.
	require.Len(t, tokens, 2)
	assert.Equal(t, UintToken, tokens[0].Kind)
	assert.Equal(t, BoolToken, tokens[1].Kind)
}

func TestTokenizeScalar(t *testing.T) {
	tokens, err := Tokenize(mustType(t, "uint256"), big.NewInt(5))
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, UintToken, tokens[0].Kind)
}

func TestFlattenTokens(t *testing.T) {
	tuple := NewTupleToken(NewBoolToken(true), NewStringToken("x"))

	// Only a singleton tuple is flattened.
	assert.Len(t, FlattenTokens([]Token{tuple}), 2)
	assert.Len(t, FlattenTokens([]Token{tuple, tuple}), 2)
	assert.Len(t, FlattenTokens([]Token{NewBoolToken(true)}), 1)
	assert.Empty(t, FlattenTokens(nil))
}

func TestDetokenize(t *testing.T) {
	// Empty list decodes through an empty tuple.
	v, err := Detokenize(mustType(t, "()"), nil)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, v)

	// A singleton decodes directly against the type.
	v, err = Detokenize(mustType(t, "uint64"), []Token{NewUintToken(uint256.NewInt(7))})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), v)

	// Longer lists are wrapped into a tuple first.
	v, err = Detokenize(mustType(t, "(uint64,bool)"), []Token{
		NewUintToken(uint256.NewInt(7)),
		NewBoolToken(true),
	})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{uint64(7), true}, v)
}

func TestTokenizeDetokenizeAsymmetry(t *testing.T) {
	// Tokenizing a one-field tuple flattens it to the bare field token, so
	// the round trip back runs against the field type, not the tuple type.
	tuple := mustType(t, "(uint64)")
	tokens, err := Tokenize(tuple, []interface{}{uint64(9)})
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, UintToken, tokens[0].Kind)

	// Against the tuple type the singleton fails: the token is not a tuple.
	_, err = Detokenize(tuple, tokens)
	var outErr *InvalidOutputTypeError
	require.ErrorAs(t, err, &outErr)

	// Against the field type it decodes.
	v, err := Detokenize(mustType(t, "uint64"), tokens)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), v)
}
