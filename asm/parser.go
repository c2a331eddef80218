// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"io"
	"strconv"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

func isIdentRune(ch rune, i int) bool {
	return ch != ',' && (unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch))
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

// parser states
const (
	stInsn  = iota // accept anything
	stArg          // need operand
	stOrg          // accept integer or const (for .org directive)
	stEqu          // accept integer or const (for .equ value)
	stDat          // accept integer, const or label (for .dat)
)

type parser struct {
	i       []vm.Cell
	pc      int
	size    int
	s       scanner.Scanner
	labels  map[string]*label
	consts  map[string]labelSite
	cstName string
	cstPos  scanner.Position
	errs    ErrAsm
	state   int
	// instruction being assembled
	in    vm.Instruction
	insPC int
	argN  int
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]labelSite)
	return p
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.size {
		p.size = p.pc
	}
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, struct {
			Pos scanner.Position
			Msg string
		}{pos, msg})
	}
}

func (p *parser) useLabel(name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{labelSite{p.s.Position, -1}, nil}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{p.s.Position, p.pc})
}

func (p *parser) defineLabel(n string) {
	if len(n) == 0 {
		p.error(p.s.Position, "empty label name")
		return
	}
	if cst, ok := p.consts[n]; ok {
		p.error(p.s.Position, "label redefinition: "+n+", previously defined as a constant here: "+cst.pos.String())
		return
	}
	if l, ok := p.labels[n]; ok {
		if l.address != -1 {
			p.error(p.s.Position, "label redefinition: "+n+", previous definition here: "+l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = p.s.Position
		return
	}
	p.labels[n] = &label{labelSite{p.s.Position, p.pc}, nil}
}

// value converts s to an integer literal, character literal or constant value.
func (p *parser) value(s string) (v vm.Cell, ok bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			p.error(p.s.Position, "invalid character literal "+s)
			return 0, true
		}
		return vm.Cell(r), true
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

// operand compiles operand s of the current instruction.
func (p *parser) operand(s string) {
	var mode vm.Mode
	switch s[0] {
	case '#':
		mode = vm.Immediate
		s = s[1:]
	case '%':
		mode = vm.Relative
		s = s[1:]
	}
	if len(s) == 0 {
		p.error(p.s.Position, "missing operand value")
		return
	}
	if mode != vm.Position {
		f := vm.Cell(100)
		for n := 0; n < p.argN; n++ {
			f *= 10
		}
		p.i[p.insPC] += vm.Cell(mode) * f
	}
	if v, ok := p.value(s); ok {
		p.write(v)
	} else if s[0] == '.' || s[0] == ':' {
		p.error(p.s.Position, "invalid operand for "+p.in.Name+": "+s)
		p.write(0)
	} else {
		p.useLabel(s)
		p.write(0)
	}
	p.argN++
	if p.argN == p.in.Arity {
		p.state = stInsn
	}
}

// scanComment skips tokens up to and including the first one ending with ')'.
func (p *parser) scanComment(s string) {
	if len(s) > 1 && s[len(s)-1] == ')' {
		return
	}
	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		if t := p.s.TokenText(); t[len(t)-1] == ')' {
			return
		}
	}
	p.error(p.s.Position, "unterminated comment")
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) error {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		p.error(pos, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); len(p.errs) < maxErrors && tok != scanner.EOF; tok = p.s.Scan() {
		// operands may be separated by commas
		if tok == ',' {
			continue
		}
		if tok != scanner.Ident {
			p.error(p.s.Position, "unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		s := p.s.TokenText()
		if s[0] == '(' {
			p.scanComment(s)
			continue
		}

		switch p.state {
		case stArg:
			p.operand(s)
			continue
		case stOrg, stEqu, stDat:
			v, ok := p.value(s)
			switch {
			case ok && p.state == stOrg:
				if v < 0 {
					p.error(p.s.Position, ".org: negative address "+s)
				} else {
					p.pc = int(v)
				}
			case ok && p.state == stEqu:
				p.consts[p.cstName] = labelSite{p.cstPos, int(v)}
			case ok:
				p.write(v)
			case p.state == stDat && s[0] != '.' && s[0] != ':':
				p.useLabel(s)
				p.write(0)
			default:
				p.error(p.s.Position, "invalid directive argument: "+s)
			}
			p.state = stInsn
			continue
		}

		// stInsn
		if v, ok := p.value(s); ok {
			// implicit .dat
			p.write(v)
			continue
		}
		switch s[0] {
		case ':':
			p.defineLabel(s[1:])
		case '.':
			switch s {
			case ".org":
				p.state = stOrg
			case ".dat":
				p.state = stDat
			case ".equ":
				t := p.s.Scan()
				if t != scanner.Ident {
					p.error(p.s.Position, ".equ: expected identifier, got "+p.s.TokenText())
					continue
				}
				p.cstName = p.s.TokenText()
				if l, ok := p.labels[p.cstName]; ok {
					p.error(p.s.Position, ".equ: redefinition of "+p.cstName+", previously defined/used as a label here: "+l.pos.String())
					continue
				}
				p.cstPos = p.s.Position
				p.state = stEqu
			default:
				p.error(p.s.Position, "unknown directive: "+s)
			}
		default:
			in, ok := opcodeIndex[s]
			if !ok {
				p.error(p.s.Position, "unknown instruction: "+s)
				continue
			}
			p.in = in
			p.insPC = p.pc
			p.argN = 0
			p.write(vm.Encode(in.Opcode))
			if in.Arity > 0 {
				p.state = stArg
			}
		}
	}

	switch p.state {
	case stArg:
		p.error(p.s.Pos(), "missing operand for "+p.in.Name)
	case stOrg, stEqu, stDat:
		p.error(p.s.Pos(), "missing directive argument")
	}

	// write labels
	for n, l := range p.labels {
		if l.address == -1 {
			p.error(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}
