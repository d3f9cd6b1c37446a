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
	"strconv"
	"unicode"
	"unicode/utf8"
)

// LexerErrorCode discriminates the error variants produced by the signature
// lexer and parser.
type LexerErrorCode byte

const (
	// ErrUnrecognisedToken is returned for input that matches no token rule.
	ErrUnrecognisedToken LexerErrorCode = iota
	// ErrExpectedToken is returned when the parser finds a different token
	// than the grammar requires.
	ErrExpectedToken
	// ErrEndOfFileInHex is returned when the input ends directly after "0x".
	ErrEndOfFileInHex
	// ErrMissingNumber is returned when "0x" is followed by a non-hex char.
	ErrMissingNumber
	// ErrEndOfFileExpectedToken is returned when the input ends where the
	// grammar requires a specific token.
	ErrEndOfFileExpectedToken
	// ErrEndOfFile is returned when the input ends where the grammar
	// requires any further token.
	ErrEndOfFile
)

// LexerError is the error type shared by the signature lexer and parser.
// Start and End are byte offsets into the signature string delimiting the
// offending span.
type LexerError struct {
	Code     LexerErrorCode
	Start    int
	End      int
	Text     string // offending input text, set for unrecognised tokens
	Expected string // expected token rendering, set for expected-token errors
}

// Error implements the error interface.
func (e *LexerError) Error() string {
	switch e.Code {
	case ErrUnrecognisedToken:
		return fmt.Sprintf("abi: unrecognised token `%s` at %d:%d", e.Text, e.Start, e.End)
	case ErrExpectedToken:
		return fmt.Sprintf("abi: expected token `%s`, got `%s` at %d:%d", e.Expected, e.Text, e.Start, e.End)
	case ErrEndOfFileInHex:
		return fmt.Sprintf("abi: end of input while parsing hex number at %d:%d", e.Start, e.End)
	case ErrMissingNumber:
		return fmt.Sprintf("abi: missing number after `0x` at %d:%d", e.Start, e.End)
	case ErrEndOfFileExpectedToken:
		return fmt.Sprintf("abi: end of input, expected token `%s`", e.Expected)
	case ErrEndOfFile:
		return "abi: unexpected end of input"
	default:
		return "abi: unknown lexer error"
	}
}

// lexemeKind enumerates the token kinds of the signature grammar.
type lexemeKind byte

const (
	lexIdentifier lexemeKind = iota
	lexNumber
	lexHexNumber

	// Punctuation
	lexOpenParen
	lexCloseParen
	lexComma
	lexOpenBracket
	lexCloseBracket
	lexSemicolon
	lexPoint

	// Declaration keywords
	lexStruct
	lexEvent
	lexError
	lexEnum
	lexFunction
	lexConstructor
	lexTypeKw

	// Data location keywords
	lexMemory
	lexStorage
	lexCalldata

	// Visibility keywords
	lexPublic
	lexPrivate
	lexInternal
	lexExternal

	// Mutability keywords
	lexConstant
	lexPure
	lexView
	lexPayable

	// Misc keywords
	lexReturns
	lexAnonymous
	lexIndexed
	lexReceive
	lexFallback
	lexAbstract
	lexVirtual
	lexOverride

	// Elementary type keywords
	lexAddress
	lexBool
	lexString
	lexDynamicBytes
	lexByte
	lexBytesN
	lexUintN
	lexIntN
	lexTuple
)

// lexeme is a single lexed token. text carries the raw input for identifiers
// and number literals, size carries the bit width of uintN/intN and the byte
// length of bytesN.
type lexeme struct {
	kind lexemeKind
	text string
	size int
}

// spanned is a lexeme together with its byte span in the input.
type spanned struct {
	start int
	lex   lexeme
	end   int
}

// String renders the lexeme the way it appears in a signature, used in
// expected/got error messages.
func (l lexeme) String() string {
	switch l.kind {
	case lexIdentifier, lexNumber, lexHexNumber:
		return l.text
	case lexOpenParen:
		return "("
	case lexCloseParen:
		return ")"
	case lexComma:
		return ","
	case lexOpenBracket:
		return "["
	case lexCloseBracket:
		return "]"
	case lexSemicolon:
		return ";"
	case lexPoint:
		return "."
	case lexBytesN:
		return "bytes" + strconv.Itoa(l.size)
	case lexUintN:
		return "uint" + strconv.Itoa(l.size)
	case lexIntN:
		return "int" + strconv.Itoa(l.size)
	default:
		return keywordName(l.kind)
	}
}

// keywordNames maps the fixed keyword kinds back to their spelling.
var keywordNames = map[lexemeKind]string{
	lexStruct: "struct", lexEvent: "event", lexError: "error", lexEnum: "enum",
	lexFunction: "function", lexConstructor: "constructor", lexTypeKw: "type",
	lexMemory: "memory", lexStorage: "storage", lexCalldata: "calldata",
	lexPublic: "public", lexPrivate: "private", lexInternal: "internal", lexExternal: "external",
	lexConstant: "constant", lexPure: "pure", lexView: "view", lexPayable: "payable",
	lexReturns: "returns", lexAnonymous: "anonymous", lexIndexed: "indexed",
	lexReceive: "receive", lexFallback: "fallback", lexAbstract: "abstract",
	lexVirtual: "virtual", lexOverride: "override",
	lexAddress: "address", lexBool: "bool", lexString: "string",
	lexDynamicBytes: "bytes", lexByte: "byte", lexTuple: "tuple",
}

func keywordName(kind lexemeKind) string {
	if name, ok := keywordNames[kind]; ok {
		return name
	}
	return "?"
}

// keywords is the exhaustive, case-sensitive keyword table. A scanned
// identifier is matched against it as a whole, never by prefix.
var keywords = make(map[string]lexeme)

func init() {
	for kind, name := range keywordNames {
		keywords[name] = lexeme{kind: kind}
	}
	// uint/int default to 256 bits, the sized variants go in steps of 8.
	keywords["uint"] = lexeme{kind: lexUintN, size: 256}
	keywords["int"] = lexeme{kind: lexIntN, size: 256}
	for i := 8; i <= 256; i += 8 {
		keywords["uint"+strconv.Itoa(i)] = lexeme{kind: lexUintN, size: i}
		keywords["int"+strconv.Itoa(i)] = lexeme{kind: lexIntN, size: i}
	}
	for i := 1; i <= 32; i++ {
		keywords["bytes"+strconv.Itoa(i)] = lexeme{kind: lexBytesN, size: i}
	}
}

// lexer produces a lazy, finite, non-restartable sequence of spanned tokens
// from a signature string. The input is only borrowed for the duration of the
// scan; lexemes reference it by slicing.
type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

// next returns the next spanned token. The second return is false once the
// input is exhausted.
func (l *lexer) next() (spanned, bool, error) {
	for l.pos < len(l.input) {
		r, width := utf8.DecodeRuneInString(l.input[l.pos:])
		switch {
		case unicode.IsSpace(r):
			l.pos += width

		case isIdentifierStart(r):
			start := l.pos
			l.pos += width
			for l.pos < len(l.input) {
				r, width = utf8.DecodeRuneInString(l.input[l.pos:])
				if !isIdentifierPart(r) {
					break
				}
				l.pos += width
			}
			id := l.input[start:l.pos]
			if kw, ok := keywords[id]; ok {
				return spanned{start, kw, l.pos}, true, nil
			}
			return spanned{start, lexeme{kind: lexIdentifier, text: id}, l.pos}, true, nil

		case r >= '0' && r <= '9':
			return l.scanNumber()

		case r == '(':
			return l.punct(lexOpenParen)
		case r == ')':
			return l.punct(lexCloseParen)
		case r == ',':
			return l.punct(lexComma)
		case r == '[':
			return l.punct(lexOpenBracket)
		case r == ']':
			return l.punct(lexCloseBracket)
		case r == ';':
			return l.punct(lexSemicolon)
		case r == '.':
			return l.punct(lexPoint)

		default:
			// Collect the maximal run of non-whitespace characters and
			// report it whole.
			start := l.pos
			for l.pos < len(l.input) {
				r, width = utf8.DecodeRuneInString(l.input[l.pos:])
				if unicode.IsSpace(r) {
					break
				}
				l.pos += width
			}
			return spanned{}, false, &LexerError{
				Code:  ErrUnrecognisedToken,
				Start: start,
				End:   l.pos,
				Text:  l.input[start:l.pos],
			}
		}
	}
	return spanned{}, false, nil
}

// scanNumber scans a decimal or hexadecimal literal. The leading character is
// known to be an ASCII digit.
func (l *lexer) scanNumber() (spanned, bool, error) {
	start := l.pos
	if l.input[l.pos] == '0' && l.pos+1 < len(l.input) && l.input[l.pos+1] == 'x' {
		l.pos += 2
		if l.pos == len(l.input) {
			return spanned{}, false, &LexerError{Code: ErrEndOfFileInHex, Start: start, End: l.pos}
		}
		digits := l.pos
		for l.pos < len(l.input) && (isHexDigit(l.input[l.pos]) || l.input[l.pos] == '_') {
			l.pos++
		}
		if l.pos == digits {
			return spanned{}, false, &LexerError{Code: ErrMissingNumber, Start: start, End: l.pos + 1}
		}
		return spanned{start, lexeme{kind: lexHexNumber, text: l.input[start:l.pos]}, l.pos}, true, nil
	}
	for l.pos < len(l.input) && (l.input[l.pos] >= '0' && l.input[l.pos] <= '9' || l.input[l.pos] == '_') {
		l.pos++
	}
	return spanned{start, lexeme{kind: lexNumber, text: l.input[start:l.pos]}, l.pos}, true, nil
}

func (l *lexer) punct(kind lexemeKind) (spanned, bool, error) {
	start := l.pos
	l.pos++
	return spanned{start, lexeme{kind: kind}, l.pos}, true, nil
}

// isIdentifierStart reports whether r can begin an identifier. This follows
// the Unicode XID_Start property, approximated with the standard library
// range tables, plus '_'.
func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.In(r, unicode.Letter, unicode.Nl, unicode.Other_ID_Start)
}

// isIdentifierPart reports whether r can continue an identifier, following
// XID_Continue plus '$'.
func isIdentifierPart(r rune) bool {
	return r == '$' || isIdentifierStart(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
