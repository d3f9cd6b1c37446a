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
	"strconv"
)

// TypeResolver maps a custom (struct) type name to its tuple type. It is
// consulted by the parser whenever an identifier appears in type position,
// allowing callers to resolve user defined struct parameters against a
// name -> Type table.
type TypeResolver func(name string) (Type, bool)

// ParseType parses a single type from its canonical signature rendering,
// e.g. "uint256", "(uint256,bytes32)[]" or "bool[3][]".
//
// Trailing input after the parsed type is ignored.
func ParseType(s string) (Type, error) {
	return newSigParser(s, nil).parseType()
}

// ParseTypeWith is ParseType with a resolver for custom struct type names.
func ParseTypeWith(s string, resolver TypeResolver) (Type, error) {
	return newSigParser(s, resolver).parseType()
}

// ParseFunction parses a human-readable function signature such as
// "function transfer(address to, uint256 amount) returns (bool)". The
// leading "function" keyword is optional, and an output list may follow
// without the "returns" keyword. Data location, visibility, virtual and
// override modifiers are accepted and discarded; state mutability is
// recorded on the returned method.
//
// Trailing input after the parsed function is ignored.
func ParseFunction(s string) (Method, error) {
	return newSigParser(s, nil).parseFunction()
}

// ParseFunctionWith is ParseFunction with a resolver for custom struct
// type names.
func ParseFunctionWith(s string, resolver TypeResolver) (Method, error) {
	return newSigParser(s, resolver).parseFunction()
}

// ParseEvent parses a human-readable event signature such as
// "event Transfer(address indexed from, address indexed to, uint256 value)".
//
// Trailing input after the parsed event is ignored.
func ParseEvent(s string) (Event, error) {
	return newSigParser(s, nil).parseEvent()
}

// ParseEventWith is ParseEvent with a resolver for custom struct type names.
func ParseEventWith(s string, resolver TypeResolver) (Event, error) {
	return newSigParser(s, resolver).parseEvent()
}

// ParseError parses a human-readable error signature such as
// "error InsufficientBalance(uint256 available, uint256 required)". The
// leading "error" keyword is optional.
//
// Trailing input after the parsed error is ignored.
func ParseError(s string) (Error, error) {
	return newSigParser(s, nil).parseError()
}

// ParseErrorWith is ParseError with a resolver for custom struct type names.
func ParseErrorWith(s string, resolver TypeResolver) (Error, error) {
	return newSigParser(s, resolver).parseError()
}

// ParseConstructor parses a human-readable constructor signature such as
// "constructor(address owner, uint256 supply)".
//
// Trailing input after the parsed constructor is ignored.
func ParseConstructor(s string) (Method, error) {
	return newSigParser(s, nil).parseConstructor()
}

// ParseConstructorWith is ParseConstructor with a resolver for custom
// struct type names.
func ParseConstructorWith(s string, resolver TypeResolver) (Method, error) {
	return newSigParser(s, resolver).parseConstructor()
}

// sigParser is a recursive-descent parser over the signature lexer with a
// single token of lookahead. Any grammar violation aborts the parse with a
// LexerError; there is no recovery and no partial result.
type sigParser struct {
	lx      *lexer
	resolve TypeResolver

	peeked  *spanned
	peekErr error
}

func newSigParser(input string, resolver TypeResolver) *sigParser {
	return &sigParser{lx: newLexer(input), resolve: resolver}
}

// peek returns the next token without consuming it. The bool is false at the
// end of the input.
func (p *sigParser) peek() (spanned, bool, error) {
	if p.peekErr != nil {
		return spanned{}, false, p.peekErr
	}
	if p.peeked != nil {
		return *p.peeked, true, nil
	}
	sp, ok, err := p.lx.next()
	if err != nil {
		p.peekErr = err
		return spanned{}, false, err
	}
	if !ok {
		return spanned{}, false, nil
	}
	p.peeked = &sp
	return sp, true, nil
}

// next consumes and returns the next token, failing with ErrEndOfFile when
// the input is exhausted.
func (p *sigParser) next() (spanned, error) {
	sp, ok, err := p.peek()
	if err != nil {
		return spanned{}, err
	}
	if !ok {
		return spanned{}, &LexerError{Code: ErrEndOfFile, Start: p.lx.pos, End: p.lx.pos}
	}
	p.peeked = nil
	return sp, nil
}

// expect consumes the next token and requires it to be of the given kind.
func (p *sigParser) expect(kind lexemeKind, name string) (spanned, error) {
	sp, ok, err := p.peek()
	if err != nil {
		return spanned{}, err
	}
	if !ok {
		return spanned{}, &LexerError{Code: ErrEndOfFileExpectedToken, Start: p.lx.pos, End: p.lx.pos, Expected: name}
	}
	if sp.lex.kind != kind {
		return spanned{}, &LexerError{Code: ErrExpectedToken, Start: sp.start, End: sp.end, Expected: name, Text: sp.lex.String()}
	}
	p.peeked = nil
	return sp, nil
}

// accept consumes the next token if it is of the given kind.
func (p *sigParser) accept(kind lexemeKind) bool {
	sp, ok, err := p.peek()
	if err != nil || !ok || sp.lex.kind != kind {
		return false
	}
	p.peeked = nil
	return true
}

// peekIs reports whether the next token is of the given kind.
func (p *sigParser) peekIs(kind lexemeKind) bool {
	sp, ok, err := p.peek()
	return err == nil && ok && sp.lex.kind == kind
}

// unrecognised builds the error for a token that has no place in the
// grammar at the current position.
func unrecognised(sp spanned) error {
	return &LexerError{Code: ErrUnrecognisedToken, Start: sp.start, End: sp.end, Text: sp.lex.String()}
}

// parseType parses `type := base_type array_tail*`.
func (p *sigParser) parseType() (Type, error) {
	sp, err := p.next()
	if err != nil {
		return Type{}, err
	}

	var typ Type
	switch sp.lex.kind {
	case lexAddress:
		typ = Type{T: AddressTy, Size: 20}
	case lexBool:
		typ = Type{T: BoolTy}
	case lexString:
		typ = Type{T: StringTy}
	case lexDynamicBytes:
		typ = Type{T: BytesTy}
	case lexByte:
		// `byte` is a pre-0.8.0 alias for bytes1.
		typ = Type{T: FixedBytesTy, Size: 1}
	case lexBytesN:
		typ = Type{T: FixedBytesTy, Size: sp.lex.size}
	case lexUintN:
		typ = Type{T: UintTy, Size: sp.lex.size}
	case lexIntN:
		typ = Type{T: IntTy, Size: sp.lex.size}
	case lexTuple:
		// The tuple keyword may stand alone (an empty tuple) or be
		// followed by its parenthesized components.
		if p.accept(lexOpenParen) {
			typ, err = p.parseTypeList()
			if err != nil {
				return Type{}, err
			}
		} else {
			typ = Type{T: TupleTy}
		}
	case lexOpenParen:
		typ, err = p.parseTypeList()
		if err != nil {
			return Type{}, err
		}
	case lexIdentifier:
		if p.resolve != nil {
			if resolved, ok := p.resolve(sp.lex.text); ok {
				typ = resolved
				break
			}
		}
		return Type{}, unrecognised(sp)
	default:
		return Type{}, unrecognised(sp)
	}
	return p.parseArrayTail(typ)
}

// parseTypeList parses `type_list := (type (',' type)*)? ')'` with the
// opening parenthesis already consumed, producing a tuple type.
func (p *sigParser) parseTypeList() (Type, error) {
	typ := Type{T: TupleTy}
	if p.accept(lexCloseParen) {
		return typ, nil
	}
	for {
		elem, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		typ.TupleElems = append(typ.TupleElems, &elem)
		typ.TupleRawNames = append(typ.TupleRawNames, "")
		sp, err := p.next()
		if err != nil {
			return Type{}, err
		}
		switch sp.lex.kind {
		case lexComma:
		case lexCloseParen:
			return typ, nil
		default:
			return Type{}, &LexerError{Code: ErrExpectedToken, Start: sp.start, End: sp.end, Expected: ")", Text: sp.lex.String()}
		}
	}
}

// parseArrayTail parses `array_tail := '[' NUMBER? ']'` repeatedly, wrapping
// typ left to right: bool[][3] becomes FixedArray(Array(bool), 3).
func (p *sigParser) parseArrayTail(typ Type) (Type, error) {
	for p.accept(lexOpenBracket) {
		if p.peekIs(lexNumber) {
			sp, _ := p.next()
			size, err := strconv.Atoi(sp.lex.text)
			if err != nil {
				return Type{}, &LexerError{Code: ErrExpectedToken, Start: sp.start, End: sp.end, Expected: "array size", Text: sp.lex.text}
			}
			elem := typ
			typ = Type{T: ArrayTy, Elem: &elem, Size: size}
		} else {
			elem := typ
			typ = Type{T: SliceTy, Elem: &elem}
		}
		if _, err := p.expect(lexCloseBracket, "]"); err != nil {
			return Type{}, err
		}
	}
	return typ, nil
}

// parseParam parses `param := type data_location? IDENTIFIER?` or, for
// events, `event_param := type 'indexed'? IDENTIFIER?`. Data locations are
// recognized and discarded.
func (p *sigParser) parseParam(event bool) (Argument, error) {
	typ, err := p.parseType()
	if err != nil {
		return Argument{}, err
	}
	arg := Argument{Type: typ}
	if event {
		arg.Indexed = p.accept(lexIndexed)
	} else {
		// data location is recognized and dropped
		_ = p.accept(lexMemory) || p.accept(lexStorage) || p.accept(lexCalldata)
	}
	if p.peekIs(lexIdentifier) {
		sp, _ := p.next()
		arg.Name = sp.lex.text
	}
	return arg, nil
}

// parseParams parses a parenthesized parameter list with the opening
// parenthesis already consumed.
func (p *sigParser) parseParams(event bool) (Arguments, error) {
	var args Arguments
	if p.accept(lexCloseParen) {
		return args, nil
	}
	for {
		arg, err := p.parseParam(event)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		sp, err := p.next()
		if err != nil {
			return nil, err
		}
		switch sp.lex.kind {
		case lexComma:
		case lexCloseParen:
			return args, nil
		default:
			return nil, &LexerError{Code: ErrExpectedToken, Start: sp.start, End: sp.end, Expected: ")", Text: sp.lex.String()}
		}
	}
}

// parseModifiers consumes visibility, virtual, override, constant and state
// mutability tokens. Everything but the mutability is discarded.
func (p *sigParser) parseModifiers() (mutability string, constant, payable bool) {
	mutability = "nonpayable"
	for {
		sp, ok, err := p.peek()
		if err != nil || !ok {
			return
		}
		switch sp.lex.kind {
		case lexPublic, lexPrivate, lexInternal, lexExternal, lexVirtual, lexOverride:
		case lexConstant:
			constant = true
		case lexPure:
			mutability = "pure"
		case lexView:
			mutability = "view"
		case lexPayable:
			mutability = "payable"
			payable = true
		default:
			return
		}
		p.peeked = nil
	}
}

// parseFunction parses the function production. The leading "function"
// keyword is optional, so shorthand signatures like "get(address)" parse
// identically to "function get(address)".
func (p *sigParser) parseFunction() (Method, error) {
	p.accept(lexFunction)
	name, err := p.expect(lexIdentifier, "identifier")
	if err != nil {
		return Method{}, err
	}
	if _, err := p.expect(lexOpenParen, "("); err != nil {
		return Method{}, err
	}
	inputs, err := p.parseParams(false)
	if err != nil {
		return Method{}, err
	}
	mutability, constant, payable := p.parseModifiers()
	p.accept(lexReturns)
	var outputs Arguments
	if p.accept(lexOpenParen) {
		if outputs, err = p.parseParams(false); err != nil {
			return Method{}, err
		}
	}
	return NewMethod(name.lex.text, name.lex.text, Function, mutability, constant, payable, inputs, outputs), nil
}

// parseEvent parses the event production, including the optional trailing
// "anonymous" keyword.
func (p *sigParser) parseEvent() (Event, error) {
	if _, err := p.expect(lexEvent, "event"); err != nil {
		return Event{}, err
	}
	name, err := p.expect(lexIdentifier, "identifier")
	if err != nil {
		return Event{}, err
	}
	if _, err := p.expect(lexOpenParen, "("); err != nil {
		return Event{}, err
	}
	inputs, err := p.parseParams(true)
	if err != nil {
		return Event{}, err
	}
	anonymous := p.accept(lexAnonymous)
	return NewEvent(name.lex.text, name.lex.text, anonymous, inputs), nil
}

// parseError parses the error production. The leading "error" keyword is
// optional, mirroring the function shorthand.
func (p *sigParser) parseError() (Error, error) {
	p.accept(lexError)
	name, err := p.expect(lexIdentifier, "identifier")
	if err != nil {
		return Error{}, err
	}
	if _, err := p.expect(lexOpenParen, "("); err != nil {
		return Error{}, err
	}
	inputs, err := p.parseParams(false)
	if err != nil {
		return Error{}, err
	}
	return NewError(name.lex.text, inputs), nil
}

// parseConstructor parses the constructor production. Trailing modifiers
// (e.g. "payable") are consumed the same way as on functions.
func (p *sigParser) parseConstructor() (Method, error) {
	if _, err := p.expect(lexConstructor, "constructor"); err != nil {
		return Method{}, err
	}
	if _, err := p.expect(lexOpenParen, "("); err != nil {
		return Method{}, err
	}
	inputs, err := p.parseParams(false)
	if err != nil {
		return Method{}, err
	}
	mutability, constant, payable := p.parseModifiers()
	return NewMethod("", "", Constructor, mutability, constant, payable, inputs, nil), nil
}
