// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl parses the small textual notations used to describe chips: pin
// lists ("a, b, bus[4]"), pin references ("not1.out", "bus[0..3]") and wires
// ("a -> not1.in").
//
package hdl

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Type is a token type.
//
type Type int

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
	Range
	Dot
	Arrow
)

var typeNames = [...]string{
	EOF:          "end of input",
	Raw:          "character",
	Ident:        "identifier",
	BracketOpen:  "'['",
	BracketClose: "']'",
	Comma:        "','",
	Int:          "integer",
	Range:        "'..'",
	Dot:          "'.'",
	Arrow:        "'->'",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Item is a lexed token.
//
type Item struct {
	Type  Type
	Value interface{} // string for Ident, Raw and Int (the digits)
	Pos   int         // byte offset in the input
}

func (i Item) String() string {
	switch i.Type {
	case Ident:
		return "identifier " + strconv.Quote(i.Value.(string))
	case Int:
		return "integer " + i.Value.(string)
	case Raw:
		return strconv.Quote(i.Value.(string))
	}
	return i.Type.String()
}

// Lexer splits its input into tokens.
//
type Lexer struct {
	input string
	pos   int
}

// NewLexer returns a new lexer for the given input.
//
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) next() (rune, int) {
	if l.pos >= len(l.input) {
		return -1, 0
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	return r, w
}

// Lex returns the next token. Once the input is exhausted, it keeps returning
// EOF.
//
func (l *Lexer) Lex() Item {
	r, w := l.next()
	for w > 0 && unicode.IsSpace(r) {
		l.pos += w
		r, w = l.next()
	}
	start := l.pos
	if w == 0 {
		return Item{EOF, nil, start}
	}
	l.pos += w
	switch {
	case unicode.IsLetter(r) || r == '_':
		for {
			r, w = l.next()
			if w == 0 || !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
				break
			}
			l.pos += w
		}
		return Item{Ident, l.input[start:l.pos], start}
	case '0' <= r && r <= '9':
		for {
			r, w = l.next()
			if w == 0 || r < '0' || r > '9' {
				break
			}
			l.pos += w
		}
		return Item{Int, l.input[start:l.pos], start}
	case r == '[':
		return Item{BracketOpen, "[", start}
	case r == ']':
		return Item{BracketClose, "]", start}
	case r == ',':
		return Item{Comma, ",", start}
	case r == '.':
		if n, _ := l.next(); n == '.' {
			l.pos++
			return Item{Range, "..", start}
		}
		return Item{Dot, ".", start}
	case r == '-':
		if n, _ := l.next(); n == '>' {
			l.pos++
			return Item{Arrow, "->", start}
		}
	}
	return Item{Raw, string(r), start}
}
