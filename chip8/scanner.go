/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

package chip8

import (
	"fmt"
	"strconv"
	"strings"
)

/// Kind of scanned token.
///
type tokenKind uint8

/// Lexical assembly tokens.
///
const (
	tokenEnd tokenKind = iota
	tokenChar
	tokenLabel
	tokenRef
	tokenMnemonic
	tokenDirective
	tokenEqu
	tokenBreak
	tokenV
	tokenI
	tokenIndirect
	tokenB
	tokenF
	tokenK
	tokenDT
	tokenST
	tokenLit
	tokenText
)

/// A parsed, lexical token. Registers and literals carry their value
/// in n; identifiers, text and comments carry it in text.
///
type token struct {
	kind tokenKind
	n    int
	text string
}

/// CHIP-8 assembler token scanner over a single, upper-cased line.
///
type tokenScanner struct {
	bytes []byte

	// scan position
	pos int

	// true once the first token of the line is scanned
	started bool
}

/// scanToken reads the next token from the line.
///
func (s *tokenScanner) scanToken() token {
	for s.pos < len(s.bytes) && s.bytes[s.pos] < 33 {
		s.pos++
	}

	// if at the end, return an empty end token
	if s.pos >= len(s.bytes) {
		return token{kind: tokenEnd}
	}

	first := !s.started
	s.started = true

	c := s.bytes[s.pos]

	switch {
	case c == ';':
		return s.scanToEnd()
	case c == '.' && first:
		return s.scanLabel()
	case c == '[':
		return s.scanIndirection()
	case c == '#':
		return s.scanHexLit()
	case c == '$':
		return s.scanBinLit()
	case c == '-' || (c >= '0' && c <= '9'):
		return s.scanDecLit()
	case (c >= 'A' && c <= 'Z') || c == '_':
		return s.scanIdentifier()
	case c == '"' || c == '\'':
		return s.scanString(c)
	}

	return s.scanChar()
}

/// scanOperands scans a list of comma-separated tokens to the end of
/// the line.
///
func (s *tokenScanner) scanOperands() []token {
	tokens := make([]token, 0, 3)

	t := s.scanToken()
	if t.kind == tokenEnd {
		return tokens
	}

	for {
		if t.kind == tokenEnd || t.kind == tokenChar {
			panic("expected operand")
		}

		tokens = append(tokens, t)

		// either the end of the list or a comma
		sep := s.scanToken()
		if sep.kind == tokenEnd {
			return tokens
		}

		if sep.kind != tokenChar || sep.n != ',' {
			panic("unexpected token")
		}

		t = s.scanToken()
	}
}

/// scanChar scans a single punctuation character.
///
func (s *tokenScanner) scanChar() token {
	c := s.bytes[s.pos]

	s.pos++

	return token{kind: tokenChar, n: int(c)}
}

/// scanToEnd consumes the rest of the line and returns it as the text
/// of an end token.
///
func (s *tokenScanner) scanToEnd() token {
	text := string(s.bytes[s.pos:])

	// skip to the end
	s.pos = len(s.bytes)

	return token{kind: tokenEnd, text: strings.TrimSpace(strings.TrimPrefix(text, ";"))}
}

/// scanLabel scans a label declaration: a '.' followed by an identifier.
///
func (s *tokenScanner) scanLabel() token {
	s.pos++

	if s.pos < len(s.bytes) {
		if c := s.bytes[s.pos]; (c >= 'A' && c <= 'Z') || c == '_' {
			if id := s.scanIdentifier(); id.kind == tokenRef {
				return token{kind: tokenLabel, text: id.text}
			}
		}
	}

	panic("expected label")
}

/// scanIdentifier scans a mnemonic, register, keyword or label reference.
///
func (s *tokenScanner) scanIdentifier() token {
	i := s.pos

	for ; s.pos < len(s.bytes); s.pos++ {
		c := s.bytes[s.pos]

		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' {
			break
		}
	}

	id := string(s.bytes[i:s.pos])

	// V0-VF
	if len(id) == 2 && id[0] == 'V' {
		if n, err := strconv.ParseUint(id[1:], 16, 4); err == nil {
			return token{kind: tokenV, n: int(n)}
		}
	}

	switch id {
	case "I":
		return token{kind: tokenI}
	case "B":
		return token{kind: tokenB}
	case "F":
		return token{kind: tokenF}
	case "K":
		return token{kind: tokenK}
	case "DT":
		return token{kind: tokenDT}
	case "ST":
		return token{kind: tokenST}
	case "EQU":
		return token{kind: tokenEqu}
	case "BREAK":
		return token{kind: tokenBreak}
	case "BYTE", "WORD", "ALIGN", "PAD":
		return token{kind: tokenDirective, text: id}
	case "CLS", "RET", "SYS", "JP", "CALL", "SE", "SNE", "SKP", "SKNP", "LD", "OR", "AND", "XOR",
		"ADD", "SUB", "SUBN", "SHR", "SHL", "RND", "DRW":
		return token{kind: tokenMnemonic, text: id}
	}

	return token{kind: tokenRef, text: id}
}

/// scanIndirection scans [I].
///
func (s *tokenScanner) scanIndirection() token {
	s.pos++

	if t := s.scanToken(); t.kind == tokenI {
		if c := s.scanToken(); c.kind == tokenChar && c.n == ']' {
			return token{kind: tokenIndirect}
		}
	}

	panic("illegal indirection")
}

/// scanDecLit scans a decimal literal with an optional minus sign.
///
func (s *tokenScanner) scanDecLit() token {
	i := s.pos

	// skip a unary minus negation
	if s.bytes[i] == '-' {
		s.pos++
	}

	for ; s.pos < len(s.bytes); s.pos++ {
		if c := s.bytes[s.pos]; c < '0' || c > '9' {
			break
		}
	}

	if n, err := strconv.ParseInt(string(s.bytes[i:s.pos]), 10, 32); err == nil {
		return token{kind: tokenLit, n: int(n)}
	}

	panic(fmt.Sprintf("illegal decimal value: %s", s.bytes[i:s.pos]))
}

/// scanHexLit scans a #hex literal.
///
func (s *tokenScanner) scanHexLit() token {
	i := s.pos

	for s.pos++; s.pos < len(s.bytes); s.pos++ {
		if strings.IndexByte("0123456789ABCDEF", s.bytes[s.pos]) < 0 {
			break
		}
	}

	if n, err := strconv.ParseInt(string(s.bytes[i+1:s.pos]), 16, 32); err == nil {
		return token{kind: tokenLit, n: int(n)}
	}

	panic(fmt.Sprintf("illegal hex value: %s", s.bytes[i:s.pos]))
}

/// scanBinLit scans a $binary literal, where '.' may be used for 0 so
/// sprite data reads like a picture.
///
func (s *tokenScanner) scanBinLit() token {
	i := s.pos

	for s.pos++; s.pos < len(s.bytes); s.pos++ {
		if strings.IndexByte(".01", s.bytes[s.pos]) < 0 {
			break
		}
	}

	v := strings.ReplaceAll(string(s.bytes[i+1:s.pos]), ".", "0")

	if n, err := strconv.ParseInt(v, 2, 32); err == nil {
		return token{kind: tokenLit, n: int(n)}
	}

	panic(fmt.Sprintf("illegal binary value: %s", s.bytes[i:s.pos]))
}

/// scanString scans a quoted string.
///
func (s *tokenScanner) scanString(term byte) token {
	s.pos++

	i := s.pos

	// find the terminating quotation
	for s.pos < len(s.bytes) && s.bytes[s.pos] != term {
		s.pos++
	}

	if s.pos >= len(s.bytes) {
		panic("unterminated string")
	}

	text := string(s.bytes[i:s.pos])

	// skip the closing quote
	s.pos++

	return token{kind: tokenText, text: text}
}
