// This file is part of Gophernes.
//
// Gophernes is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophernes is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophernes.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Value represents the actual Go preference value.
type Value any

// types supported by the prefs system must implement the pref interface.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// hooks are shared by all the concrete preference types.
type hooks struct {
	hookPre  func(value Value) error
	hookPost func(value Value) error
}

// SetHookPre sets the callback function to be called just before the prefs
// value is updated. Note that even if the value hasn't changed, the callback
// will be executed.
//
// Not required but is useful in some contexts.
func (h *hooks) SetHookPre(f func(value Value) error) {
	h.hookPre = f
}

// SetHookPost sets the callback function to be called just after the prefs
// value is updated. Note that even if the value hasn't changed, the callback
// will be executed.
//
// Not required but is useful in some contexts.
func (h *hooks) SetHookPost(f func(value Value) error) {
	h.hookPost = f
}

// store runs the pre-hook, stores the new value and then runs the post-hook.
// the value is not stored if the pre-hook fails.
func store[T any](h *hooks, a *atomic.Value, nv T) error {
	if h.hookPre != nil {
		if err := h.hookPre(nv); err != nil {
			return err
		}
	}
	a.Store(nv)
	if h.hookPost != nil {
		if err := h.hookPost(nv); err != nil {
			return err
		}
	}
	return nil
}

// load returns the stored value or the zero value of T if nothing has been
// stored yet.
func load[T any](a *atomic.Value) T {
	if v, ok := a.Load().(T); ok {
		return v
	}
	var z T
	return z
}

// Bool implements a boolean type in the prefs system.
type Bool struct {
	hooks
	value atomic.Value // bool
}

func (p *Bool) String() string {
	return strconv.FormatBool(load[bool](&p.value))
}

// Set new value to Bool type. New value must be of type bool or string. A
// string value of anything other than "true" (case insensitive) will set the
// value to false.
func (p *Bool) Set(v Value) error {
	switch v := v.(type) {
	case bool:
		return store(&p.hooks, &p.value, v)
	case string:
		return store(&p.hooks, &p.value, strings.ToLower(strings.TrimSpace(v)) == "true")
	}
	return fmt.Errorf("prefs: cannot convert %T to prefs.Bool", v)
}

// Get returns the raw pref value.
func (p *Bool) Get() Value {
	return load[bool](&p.value)
}

// Reset sets the boolean value to false.
func (p *Bool) Reset() error {
	return p.Set(false)
}

// String implements a string type in the prefs system.
type String struct {
	hooks
	maxLen int
	value  atomic.Value // string
}

func (p *String) String() string {
	return load[string](&p.value)
}

// SetMaxLen sets the maximum length for a string when it is set. To set no
// limit use a value less than or equal to zero. Note that the existing string
// will be cropped if necessary.
func (p *String) SetMaxLen(max int) {
	p.maxLen = max
	if s := load[string](&p.value); p.maxLen > 0 && len(s) > p.maxLen {
		p.value.Store(s[:p.maxLen])
	}
}

// Set new value to String type. Values of other types are converted with
// the %v verb.
func (p *String) Set(v Value) error {
	nv := fmt.Sprintf("%v", v)
	if p.maxLen > 0 && len(nv) > p.maxLen {
		nv = nv[:p.maxLen]
	}
	return store(&p.hooks, &p.value, nv)
}

// Get returns the raw pref value.
func (p *String) Get() Value {
	return load[string](&p.value)
}

// Reset sets the string value to the empty string.
func (p *String) Reset() error {
	return p.Set("")
}

// Int implements an integer type in the prefs system.
type Int struct {
	hooks
	value atomic.Value // int
}

func (p *Int) String() string {
	return strconv.Itoa(load[int](&p.value))
}

// Set new value to Int type. New value can be an int or string.
func (p *Int) Set(v Value) error {
	switch v := v.(type) {
	case int:
		return store(&p.hooks, &p.value, v)
	case int32:
		return store(&p.hooks, &p.value, int(v))
	case int64:
		return store(&p.hooks, &p.value, int(v))
	case string:
		nv, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("prefs: cannot convert %T to prefs.Int: %w", v, err)
		}
		return store(&p.hooks, &p.value, nv)
	}
	return fmt.Errorf("prefs: cannot convert %T to prefs.Int", v)
}

// Get returns the raw pref value.
func (p *Int) Get() Value {
	return load[int](&p.value)
}

// Reset sets the int value to zero.
func (p *Int) Reset() error {
	return p.Set(0)
}

// Float implements a floating point type in the prefs system.
type Float struct {
	hooks
	value atomic.Value // float64
}

func (p *Float) String() string {
	return fmt.Sprintf("%.3f", load[float64](&p.value))
}

// Set new value to Float type. New value can be a float, an int or a string.
func (p *Float) Set(v Value) error {
	switch v := v.(type) {
	case float64:
		return store(&p.hooks, &p.value, v)
	case float32:
		return store(&p.hooks, &p.value, float64(v))
	case int:
		return store(&p.hooks, &p.value, float64(v))
	case string:
		nv, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("prefs: cannot convert %T to prefs.Float: %w", v, err)
		}
		return store(&p.hooks, &p.value, nv)
	}
	return fmt.Errorf("prefs: cannot convert %T to prefs.Float", v)
}

// Get returns the raw pref value.
func (p *Float) Get() Value {
	return load[float64](&p.value)
}

// Reset sets the float value to zero.
func (p *Float) Reset() error {
	return p.Set(0.0)
}
