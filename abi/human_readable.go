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
	"sort"
	"strings"
)

// structDef is an unresolved struct declaration. Field types are kept as raw
// text until all declarations are known, since structs may reference each
// other in any order.
type structDef struct {
	name   string
	fields []structField
}

type structField struct {
	name string
	typ  string
}

// ParseDeclarations assembles an ABI from a set of human-readable
// declarations, one per item. Supported items are function, event, error and
// constructor signatures (with optional leading keywords, as accepted by the
// single-item parsers), `receive` and `fallback` declarations, and `struct`
// definitions.
//
// Struct definitions may appear anywhere in the list and may reference each
// other; struct-typed parameters resolve to the struct's tuple type,
// including through array suffixes. Blank items and `//` comment lines are
// skipped.
func ParseDeclarations(items []string) (ABI, error) {
	var (
		abi = ABI{
			Methods: make(map[string]Method),
			Events:  make(map[string]Event),
			Errors:  make(map[string]Error),
		}
		structs []structDef
		lines   []string
	)
	// First pass: separate struct declarations from signature lines.
	for _, item := range items {
		line := cleanDeclaration(item)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "struct ") || strings.HasPrefix(line, "struct\t") {
			def, err := parseStructDef(line)
			if err != nil {
				return ABI{}, err
			}
			structs = append(structs, def)
			continue
		}
		lines = append(lines, line)
	}
	resolved, err := resolveStructs(structs)
	if err != nil {
		return ABI{}, err
	}
	resolver := func(name string) (Type, bool) {
		typ, ok := resolved[name]
		return typ, ok
	}
	// Second pass: parse the signature lines against the struct table.
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "event "):
			event, err := ParseEventWith(line, resolver)
			if err != nil {
				return ABI{}, err
			}
			name := ResolveNameConflict(event.RawName, func(s string) bool { _, ok := abi.Events[s]; return ok })
			event.Name = name
			abi.Events[name] = event
		case strings.HasPrefix(line, "error "):
			abiErr, err := ParseErrorWith(line, resolver)
			if err != nil {
				return ABI{}, err
			}
			abi.Errors[abiErr.Name] = abiErr
		case strings.HasPrefix(line, "constructor"):
			constructor, err := ParseConstructorWith(line, resolver)
			if err != nil {
				return ABI{}, err
			}
			abi.Constructor = constructor
		case strings.HasPrefix(line, "receive"):
			if abi.HasReceive() {
				return ABI{}, errors.New("only single receive is allowed")
			}
			abi.Receive = NewMethod("", "", Receive, "payable", false, true, nil, nil)
		case strings.HasPrefix(line, "fallback"):
			if abi.HasFallback() {
				return ABI{}, errors.New("only single fallback is allowed")
			}
			mutability := "nonpayable"
			if strings.Contains(line, "payable") {
				mutability = "payable"
			}
			abi.Fallback = NewMethod("", "", Fallback, mutability, false, mutability == "payable", nil, nil)
		default:
			method, err := ParseFunctionWith(line, resolver)
			if err != nil {
				return ABI{}, err
			}
			name := ResolveNameConflict(method.RawName, func(s string) bool { _, ok := abi.Methods[s]; return ok })
			if name != method.RawName {
				method = NewMethod(name, method.RawName, Function, method.StateMutability, method.Constant, method.Payable, method.Inputs, method.Outputs)
			}
			abi.Methods[name] = method
		}
	}
	return abi, nil
}

// ParseDeclarationsString is ParseDeclarations over a single string holding
// one declaration per line, optionally wrapped in the JSON-ish
// `[ "decl", ... ]` form produced by javascript tooling.
func ParseDeclarationsString(s string) (ABI, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	return ParseDeclarations(strings.Split(s, "\n"))
}

// cleanDeclaration strips the per-line decoration of the javascript array
// form: surrounding whitespace, quotes and a trailing comma.
func cleanDeclaration(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "\"")
	line = strings.TrimSuffix(line, ",")
	line = strings.TrimSuffix(line, "\"")
	return strings.TrimSpace(line)
}

// parseStructDef parses `struct Name { type name; ... }` into an unresolved
// declaration. Field types stay textual and are resolved later.
func parseStructDef(line string) (structDef, error) {
	body := strings.TrimSpace(line[len("struct"):])
	open := strings.IndexByte(body, '{')
	closing := strings.LastIndexByte(body, '}')
	if open < 0 || closing < open {
		return structDef{}, fmt.Errorf("abi: invalid struct declaration: %q", line)
	}
	name := strings.TrimSpace(body[:open])
	if name == "" {
		return structDef{}, fmt.Errorf("abi: struct declaration without a name: %q", line)
	}
	def := structDef{name: name}
	for _, field := range strings.Split(body[open+1:closing], ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		parts := strings.Fields(field)
		if len(parts) < 2 {
			return structDef{}, fmt.Errorf("abi: invalid struct field %q in %q", field, line)
		}
		def.fields = append(def.fields, structField{
			name: parts[len(parts)-1],
			typ:  strings.Join(parts[:len(parts)-1], ""),
		})
	}
	return def, nil
}

// resolveStructs turns the unresolved declarations into tuple types. Structs
// may reference each other, so resolution runs in rounds, retrying
// declarations whose dependencies were not available yet until either all
// resolve or a round makes no progress (an unknown or cyclic reference).
func resolveStructs(defs []structDef) (map[string]Type, error) {
	resolved := make(map[string]Type, len(defs))
	resolver := func(name string) (Type, bool) {
		typ, ok := resolved[name]
		return typ, ok
	}
	pending := defs
	for len(pending) > 0 {
		var retry []structDef
		for _, def := range pending {
			typ, err := resolveStruct(def, resolver)
			if err != nil {
				retry = append(retry, def)
				continue
			}
			if _, ok := resolved[def.name]; ok {
				return nil, fmt.Errorf("abi: duplicate struct declaration: %s", def.name)
			}
			resolved[def.name] = typ
		}
		if len(retry) == len(pending) {
			names := make([]string, len(retry))
			for i, def := range retry {
				names[i] = def.name
			}
			sort.Strings(names)
			return nil, fmt.Errorf("abi: failed to resolve structs: %s", strings.Join(names, ", "))
		}
		pending = retry
	}
	return resolved, nil
}

func resolveStruct(def structDef, resolver TypeResolver) (Type, error) {
	typ := Type{T: TupleTy}
	for _, field := range def.fields {
		fieldType, err := ParseTypeWith(field.typ, resolver)
		if err != nil {
			return Type{}, err
		}
		elem := fieldType
		typ.TupleElems = append(typ.TupleElems, &elem)
		typ.TupleRawNames = append(typ.TupleRawNames, field.name)
	}
	return typ, nil
}
