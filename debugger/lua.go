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

package debugger

import (
	"fmt"

	"github.com/jetsetilly/gophernes/curated"
	"github.com/jetsetilly/gophernes/hardware"
	lua "github.com/yuin/gopher-lua"
)

// luaEnv is the Lua state used to evaluate breakpoint expressions. The
// functions available to an expression are:
//
//	pc() a() x() y() sp() p()	the CPU registers
//	peek(address)			the value at the address on the CPU bus
//	frame() scanline() dot()	the television coordinates
//	cycles()			the number of CPU cycles since reset
type luaEnv struct {
	nes   *hardware.NES
	state *lua.LState
}

func newLuaEnv(nes *hardware.NES) (*luaEnv, error) {
	env := &luaEnv{
		nes:   nes,
		state: lua.NewState(lua.Options{SkipOpenLibs: true}),
	}

	// only the base and math libraries are opened. breakpoint expressions
	// have no need for the io and os libraries
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.MathLibName, lua.OpenMath},
	} {
		err := env.state.CallByParam(lua.P{
			Fn:      env.state.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			env.state.Close()
			return nil, curated.Errorf("lua: %v", err)
		}
	}

	number := func(f func() int) lua.LGFunction {
		return func(L *lua.LState) int {
			L.Push(lua.LNumber(f()))
			return 1
		}
	}

	env.state.SetGlobal("pc", env.state.NewFunction(number(func() int { return int(nes.CPU.PC.Address()) })))
	env.state.SetGlobal("a", env.state.NewFunction(number(func() int { return int(nes.CPU.A.Value()) })))
	env.state.SetGlobal("x", env.state.NewFunction(number(func() int { return int(nes.CPU.X.Value()) })))
	env.state.SetGlobal("y", env.state.NewFunction(number(func() int { return int(nes.CPU.Y.Value()) })))
	env.state.SetGlobal("sp", env.state.NewFunction(number(func() int { return int(nes.CPU.SP.Value()) })))
	env.state.SetGlobal("p", env.state.NewFunction(number(func() int { return int(nes.CPU.Status.Value()) })))
	env.state.SetGlobal("frame", env.state.NewFunction(number(func() int { return nes.PPU.Frame })))
	env.state.SetGlobal("scanline", env.state.NewFunction(number(func() int { return nes.PPU.Scanline })))
	env.state.SetGlobal("dot", env.state.NewFunction(number(func() int { return nes.PPU.Dot })))
	env.state.SetGlobal("cycles", env.state.NewFunction(number(func() int { return int(nes.Timing.Cycles) })))

	env.state.SetGlobal("peek", env.state.NewFunction(func(L *lua.LState) int {
		address := L.CheckInt(1)
		if address < 0 || address > 0xffff {
			L.ArgError(1, "address out of range")
			return 0
		}
		v, err := nes.Mem.Peek(uint16(address))
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		L.Push(lua.LNumber(v))
		return 1
	}))

	return env, nil
}

func (env *luaEnv) close() {
	env.state.Close()
}

// luaBreak is a breakpoint that triggers when the Lua expression evaluates
// to true
type luaBreak struct {
	env        *luaEnv
	expression string
	fn         *lua.LFunction
}

func (env *luaEnv) compile(expression string) (*luaBreak, error) {
	fn, err := env.state.LoadString(fmt.Sprintf("return (%s)", expression))
	if err != nil {
		return nil, curated.Errorf("lua: %v", err)
	}
	return &luaBreak{
		env:        env,
		expression: expression,
		fn:         fn,
	}, nil
}

func (bp *luaBreak) String() string {
	return fmt.Sprintf("LUA %s", bp.expression)
}

func (bp *luaBreak) check() (bool, error) {
	L := bp.env.state

	err := L.CallByParam(lua.P{
		Fn:      bp.fn,
		NRet:    1,
		Protect: true,
	})
	if err != nil {
		return false, curated.Errorf("lua: %v", err)
	}

	ret := L.Get(-1)
	L.Pop(1)

	return lua.LVAsBool(ret), nil
}
