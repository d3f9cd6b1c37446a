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
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Argument holds the name of the argument and the corresponding type.
// Types are used when tokenizing and testing arguments.
type Argument struct {
	Name    string
	Type    Type
	Indexed bool // indexed is only used by events
}

type Arguments []Argument

type ArgumentMarshaling struct {
	Name       string
	Type       string
	Components []ArgumentMarshaling
	Indexed    bool
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (argument *Argument) UnmarshalJSON(data []byte) error {
	var arg ArgumentMarshaling
	err := json.Unmarshal(data, &arg)
	if err != nil {
		return fmt.Errorf("argument json err: %v", err)
	}

	argument.Type, err = NewType(arg.Type, arg.Components)
	if err != nil {
		return err
	}
	argument.Name = arg.Name
	argument.Indexed = arg.Indexed

	return nil
}

// NonIndexed returns the arguments with indexed arguments filtered out.
func (arguments Arguments) NonIndexed() Arguments {
	var ret []Argument
	for _, arg := range arguments {
		if !arg.Indexed {
			ret = append(ret, arg)
		}
	}
	return ret
}

// isTuple returns true for non-atomic constructs, like (uint,uint) or uint[].
func (arguments Arguments) isTuple() bool {
	return len(arguments) > 1
}

// Tokenize performs the operation Go format -> token list. The number of
// values must match the number of arguments exactly.
func (arguments Arguments) Tokenize(args ...interface{}) ([]Token, error) {
	if len(args) != len(arguments) {
		return nil, fmt.Errorf("argument count mismatch: got %d for %d", len(args), len(arguments))
	}
	tokens := make([]Token, len(args))
	for i, a := range args {
		tok, err := arguments[i].Type.IntoToken(a)
		if err != nil {
			return nil, err
		}
		tokens[i] = tok
	}
	return tokens, nil
}

// Detokenize performs the operation token list -> Go format, returning one
// value per non-indexed argument. Indexed event arguments carry no token and
// are skipped.
func (arguments Arguments) Detokenize(tokens []Token) ([]interface{}, error) {
	nonIndexedArgs := arguments.NonIndexed()
	if len(tokens) != len(nonIndexedArgs) {
		return nil, fmt.Errorf("abi: token count mismatch: got %d for %d", len(tokens), len(nonIndexedArgs))
	}
	retval := make([]interface{}, 0, len(nonIndexedArgs))
	for i, arg := range nonIndexedArgs {
		v, err := arg.Type.FromToken(tokens[i])
		if err != nil {
			return nil, err
		}
		retval = append(retval, v)
	}
	return retval, nil
}

// DetokenizeIntoMap performs the operation token list -> mapping of argument
// name to argument value.
func (arguments Arguments) DetokenizeIntoMap(v map[string]interface{}, tokens []Token) error {
	if v == nil {
		return errors.New("abi: cannot detokenize into a nil map")
	}
	values, err := arguments.Detokenize(tokens)
	if err != nil {
		return err
	}
	for i, arg := range arguments.NonIndexed() {
		v[arg.Name] = values[i]
	}
	return nil
}

// TupleType returns the tuple type formed by the argument types in order.
// It is the type a struct-valued argument list tokenizes through.
func (arguments Arguments) TupleType() Type {
	elems := make([]*Type, len(arguments))
	names := make([]string, len(arguments))
	for i, arg := range arguments {
		typ := arg.Type
		elems[i] = &typ
		names[i] = arg.Name
	}
	return Type{T: TupleTy, TupleElems: elems, TupleRawNames: names}
}

// ToCamelCase converts an under-score string to a camel-case string.
func ToCamelCase(input string) string {
	parts := strings.Split(input, "_")
	for i, s := range parts {
		if len(s) > 0 {
			parts[i] = strings.ToUpper(s[:1]) + s[1:]
		}
	}
	return strings.Join(parts, "")
}
