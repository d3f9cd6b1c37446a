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

// Tokenize converts a native value of type t into the positional argument
// token list. A value converting to a single top-level tuple token is
// flattened into its fields, so a struct maps to one token per field rather
// than to one nested tuple.
func Tokenize(t Type, v interface{}) ([]Token, error) {
	tok, err := t.IntoToken(v)
	if err != nil {
		return nil, err
	}
	return FlattenTokens([]Token{tok}), nil
}

// FlattenTokens flattens a single top-level tuple token into its fields. Any
// other token list, including longer lists containing tuples, is returned
// unchanged.
func FlattenTokens(tokens []Token) []Token {
	if len(tokens) == 1 && tokens[0].Kind == TupleToken {
		return tokens[0].Elems
	}
	return tokens
}

// Detokenize converts a positional token list back into a native value of
// type t. A single token converts directly; the empty list and lists of two
// or more tokens are wrapped into a tuple token first.
//
// Note the deliberate asymmetry with Tokenize: a singleton list is never
// re-wrapped, so detokenizing the output of Tokenize for a one-field tuple
// requires the field type, not the tuple type.
func Detokenize(t Type, tokens []Token) (interface{}, error) {
	if len(tokens) == 1 {
		return t.FromToken(tokens[0])
	}
	return t.FromToken(NewTupleToken(tokens...))
}
