// Package script renders plain text with tag hooks written in Lua.
//
// A script defines a global table named tags whose keys are tag names
// ("bold", "spell", "damage") and whose values are functions taking the raw
// argument list and a render function for nested markup:
//
//	tags = {}
//	function tags.bold(args, render)
//	  return "*" .. render(args[1]) .. "*"
//	end
//
// A hook returning nil falls back to the plain text rendering. Scripts run
// without file, OS or module loading access.
package script

import (
	_ "embed"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/FocuswithJustin/Compendium/core/entry"
	"github.com/FocuswithJustin/Compendium/core/errors"
	"github.com/FocuswithJustin/Compendium/core/markup"
	"github.com/FocuswithJustin/Compendium/internal/formats"
	"github.com/FocuswithJustin/Compendium/internal/formats/base"
	"github.com/FocuswithJustin/Compendium/internal/formats/text"
)

//go:embed default.lua
var defaultScript string

// Manifest returns the format manifest for registration.
func Manifest() *formats.Manifest {
	return &formats.Manifest{
		ID:          "script",
		Version:     "1.0.0",
		MediaType:   "text/plain; charset=utf-8",
		Extension:   ".txt",
		Description: "Plain text with tag hooks from a Lua script",
	}
}

// Register registers this format with the registry.
func Register() {
	formats.Register(&formats.Registration{
		Manifest: Manifest(),
		New: func(opts formats.Options) (formats.Format, error) {
			return New(opts)
		},
	})
}

func init() {
	Register()
}

// VM is a sandboxed Lua state holding the hooks of one script. An LState is
// not safe for concurrent use, so renders through a Format are serialized.
type VM struct {
	mu    sync.Mutex
	state *lua.LState
	hooks map[markup.TagName]*lua.LFunction
}

var sandboxLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// Globals removed from the base library.
var unsafeGlobals = []string{"dofile", "loadfile", "require", "module", "print"}

// Load runs src in a fresh sandbox and collects its tag hooks.
func Load(src string) (*VM, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range sandboxLibs {
		if err := L.CallByParam(lua.P{Fn: L.NewFunction(lib.open), NRet: 0, Protect: true}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, errors.Wrapf(err, "open lua library %q", lib.name)
		}
	}
	for _, name := range unsafeGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, &errors.ParseError{Format: "lua", Message: err.Error(), Err: err}
	}

	vm := &VM{state: L, hooks: make(map[markup.TagName]*lua.LFunction)}
	table, ok := L.GetGlobal("tags").(*lua.LTable)
	if !ok {
		return vm, nil
	}
	var bad error
	table.ForEach(func(k, v lua.LValue) {
		if bad != nil {
			return
		}
		fn, ok := v.(*lua.LFunction)
		if !ok {
			bad = errors.NewValidation("tags."+k.String(), "not a function")
			return
		}
		name, err := markup.ParseTagName(k.String())
		if err != nil {
			bad = errors.NewValidation("tags."+k.String(), "unknown tag")
			return
		}
		vm.hooks[name] = fn
	})
	if bad != nil {
		L.Close()
		return nil, bad
	}
	return vm, nil
}

// Close releases the Lua state.
func (vm *VM) Close() {
	vm.state.Close()
}

// Has reports whether the script hooks name.
func (vm *VM) Has(name markup.TagName) bool {
	_, ok := vm.hooks[name]
	return ok
}

// call runs fn with args and a render function bound to r. It reports false
// when the hook returned nil. A failed nested render is returned as the
// renderer's own error, not the Lua error raised to unwind the script.
func (vm *VM) call(fn *lua.LFunction, r markup.Renderer, args []string) (string, bool, error) {
	L := vm.state
	argv := L.NewTable()
	for _, a := range args {
		argv.Append(lua.LString(a))
	}
	var renderErr error
	render := L.NewFunction(func(L *lua.LState) int {
		out, err := r.Render(L.CheckString(1))
		if err != nil {
			renderErr = err
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(lua.LString(out))
		return 1
	})
	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, argv, render); err != nil {
		if renderErr != nil {
			return "", false, renderErr
		}
		return "", false, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	switch v := ret.(type) {
	case lua.LString:
		return string(v), true, nil
	case lua.LNumber:
		return v.String(), true, nil
	}
	if ret == lua.LNil {
		return "", false, nil
	}
	return "", false, fmt.Errorf("hook returned a %s, want a string", ret.Type())
}

// Tags are the plain text tags with script hooks layered on top.
type Tags struct {
	text.Tags
	vm *VM
}

func (t Tags) hook(name markup.TagName, r markup.Renderer, args []string, fallback func(markup.Renderer, []string) (string, error)) (string, error) {
	fn, ok := t.vm.hooks[name]
	if !ok {
		return fallback(r, args)
	}
	out, handled, err := t.vm.call(fn, r, args)
	if err != nil {
		return "", errors.Wrapf(err, "lua hook %q", name.String())
	}
	if !handled {
		return fallback(r, args)
	}
	return out, nil
}

// Format renders through a script's hooks, one render at a time.
type Format struct {
	base.Format
	vm *VM
}

// New loads opts.Script, or the bundled default script when it is empty.
func New(opts formats.Options) (*Format, error) {
	src := opts.Script
	if src == "" {
		src = defaultScript
	}
	vm, err := Load(src)
	if err != nil {
		return nil, err
	}
	return &Format{
		Format: base.New(text.Style{}, Tags{vm: vm}, opts.MaxDepth),
		vm:     vm,
	}, nil
}

func (f *Format) RenderMarkup(s string) (string, error) {
	f.vm.mu.Lock()
	defer f.vm.mu.Unlock()
	return f.Format.RenderMarkup(s)
}

func (f *Format) RenderEntry(e entry.Entry) (string, error) {
	f.vm.mu.Lock()
	defer f.vm.mu.Unlock()
	return f.Format.RenderEntry(e)
}

// Close releases the script's Lua state.
func (f *Format) Close() {
	f.vm.Close()
}
