// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"fmt"
	"strings"
)

// dependsSatisfied evaluates a registry depends expression such as
// "VK_KHR_get_physical_device_properties2,VK_VERSION_1_1". A comma is OR, a
// plus is AND, and parentheses group. have reports whether a feature or
// extension name is selected.
func dependsSatisfied(expr string, have func(string) bool) (bool, error) {
	p := &dependsParser{s: strings.ReplaceAll(expr, " ", ""), have: have}
	ok, err := p.expr()
	if err != nil {
		return false, fmt.Errorf("depends %q: %w", expr, err)
	}
	if p.i != len(p.s) {
		return false, fmt.Errorf("depends %q: unexpected %q at %d", expr, p.s[p.i], p.i)
	}
	return ok, nil
}

type dependsParser struct {
	s    string
	i    int
	have func(string) bool
}

func (p *dependsParser) expr() (bool, error) {
	v, err := p.term()
	if err != nil {
		return false, err
	}
	for p.peek(',') {
		p.i++
		r, err := p.term()
		if err != nil {
			return false, err
		}
		v = v || r
	}
	return v, nil
}

func (p *dependsParser) term() (bool, error) {
	v, err := p.factor()
	if err != nil {
		return false, err
	}
	for p.peek('+') {
		p.i++
		r, err := p.factor()
		if err != nil {
			return false, err
		}
		v = v && r
	}
	return v, nil
}

func (p *dependsParser) factor() (bool, error) {
	if p.peek('(') {
		p.i++
		v, err := p.expr()
		if err != nil {
			return false, err
		}
		if !p.peek(')') {
			return false, fmt.Errorf("missing ')' at %d", p.i)
		}
		p.i++
		return v, nil
	}
	start := p.i
	for p.i < len(p.s) && !strings.ContainsRune("+,()", rune(p.s[p.i])) {
		p.i++
	}
	if start == p.i {
		return false, fmt.Errorf("expected a name at %d", p.i)
	}
	return p.have(p.s[start:p.i]), nil
}

func (p *dependsParser) peek(c byte) bool {
	return p.i < len(p.s) && p.s[p.i] == c
}
