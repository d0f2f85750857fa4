// This file is part of palmcore.
//
// palmcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// palmcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with palmcore.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"strconv"
	"strings"

	"github.com/jetsetilly/palmcore/errors"
)

// Bool is a boolean preference cell.
type Bool struct {
	value bool
	hook  func(bool)
}

func NewBool(value bool, hook func(bool)) *Bool {
	return &Bool{value: value, hook: hook}
}

func (b *Bool) Set(v Value) error {
	switch x := v.(type) {
	case bool:
		b.value = x
	case string:
		p, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return errors.Errorf(errors.Prefs, err)
		}
		b.value = p
	default:
		return errors.Errorf(errors.Prefs, "unsupported value type for Bool")
	}
	if b.hook != nil {
		b.hook(b.value)
	}
	return nil
}

func (b *Bool) Get() bool { return b.value }

func (b *Bool) String() string {
	if b.value {
		return "true"
	}
	return "false"
}

// Int is an integer preference cell.
type Int struct {
	value int
	hook  func(int)
}

func NewInt(value int, hook func(int)) *Int {
	return &Int{value: value, hook: hook}
}

func (n *Int) Set(v Value) error {
	switch x := v.(type) {
	case int:
		n.value = x
	case string:
		p, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return errors.Errorf(errors.Prefs, err)
		}
		n.value = p
	default:
		return errors.Errorf(errors.Prefs, "unsupported value type for Int")
	}
	if n.hook != nil {
		n.hook(n.value)
	}
	return nil
}

func (n *Int) Get() int { return n.value }

func (n *Int) String() string {
	return strconv.Itoa(n.value)
}

// Float is a float64 preference cell.
type Float struct {
	value float64
	hook  func(float64)
}

func NewFloat(value float64, hook func(float64)) *Float {
	return &Float{value: value, hook: hook}
}

func (f *Float) Set(v Value) error {
	switch x := v.(type) {
	case float64:
		f.value = x
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return errors.Errorf(errors.Prefs, err)
		}
		f.value = p
	default:
		return errors.Errorf(errors.Prefs, "unsupported value type for Float")
	}
	if f.hook != nil {
		f.hook(f.value)
	}
	return nil
}

func (f *Float) Get() float64 { return f.value }

func (f *Float) String() string {
	return strconv.FormatFloat(f.value, 'f', -1, 64)
}

// String is a string preference cell. MaxLen, when non-zero, truncates any
// value assigned via Set.
type String struct {
	value  string
	maxLen int
	hook   func(string)
}

func NewString(value string, hook func(string)) *String {
	return &String{value: value, hook: hook}
}

// SetMaxLen bounds the length of any value subsequently assigned with Set.
// A zero value (the default) means unbounded.
func (s *String) SetMaxLen(n int) {
	s.maxLen = n
	if s.maxLen > 0 && len(s.value) > s.maxLen {
		s.value = s.value[:s.maxLen]
	}
}

func (s *String) Set(v Value) error {
	x, ok := v.(string)
	if !ok {
		return errors.Errorf(errors.Prefs, "unsupported value type for String")
	}
	if s.maxLen > 0 && len(x) > s.maxLen {
		x = x[:s.maxLen]
	}
	s.value = x
	if s.hook != nil {
		s.hook(s.value)
	}
	return nil
}

func (s *String) Get() string { return s.value }

func (s *String) String() string { return s.value }

// Generic stores a value as a plain string and reports it verbatim, for
// preference cells that do not need typed conversion.
type Generic struct {
	value string
	hook  func(string)
}

func NewGeneric(value string, hook func(string)) *Generic {
	return &Generic{value: value, hook: hook}
}

func (g *Generic) Set(v Value) error {
	x, ok := v.(string)
	if !ok {
		return errors.Errorf(errors.Prefs, "unsupported value type for Generic")
	}
	g.value = x
	if g.hook != nil {
		g.hook(g.value)
	}
	return nil
}

func (g *Generic) Get() string { return g.value }

func (g *Generic) String() string { return g.value }
