package lmod

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// fallbackDirective is the dispatch entry used for any name without its own
// entry.
const fallbackDirective = "*"

// moduleContext describes the file being executed.
type moduleContext struct {
	path    string
	name    string
	version string
	getenv  func(string) string
}

func newModuleContext(path string, getenv func(string) string) *moduleContext {
	version := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &moduleContext{
		path:    path,
		name:    filepath.Base(filepath.Dir(path)),
		version: version,
		getenv:  getenv,
	}
}

// directive implements one Lmod function inside the sandbox.
type directive func(mc *moduleContext, env *envTable) lua.LGFunction

func noop(*moduleContext, *envTable) lua.LGFunction {
	return func(*lua.LState) int { return 0 }
}

func recordEnv(_ *moduleContext, env *envTable) lua.LGFunction {
	return func(L *lua.LState) int {
		// Assigning nil creates no entry.
		if L.Get(2) == lua.LNil {
			return 0
		}
		env.set(L.ToString(1), L.ToString(2))
		return 0
	}
}

func returnBool(v bool) directive {
	return func(*moduleContext, *envTable) lua.LGFunction {
		return func(L *lua.LState) int {
			L.Push(lua.LBool(v))
			return 1
		}
	}
}

func returnString(pick func(*moduleContext) string) directive {
	return func(mc *moduleContext, _ *envTable) lua.LGFunction {
		return func(L *lua.LState) int {
			L.Push(lua.LString(pick(mc)))
			return 1
		}
	}
}

func pathJoin(*moduleContext, *envTable) lua.LGFunction {
	return func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToString(i))
		}
		L.Push(lua.LString(strings.Join(parts, "/")))
		return 1
	}
}

// directives is the dispatch table for Lmod functions. Names not listed here
// resolve to the fallback entry.
var directives = map[string]directive{
	"setenv":             recordEnv,
	"pushenv":            recordEnv,
	"pathJoin":           pathJoin,
	"isloaded":           returnBool(false),
	"isAvail":            returnBool(false),
	"mode":               returnString(func(*moduleContext) string { return "load" }),
	"myModuleName":       returnString(func(mc *moduleContext) string { return mc.name }),
	"myModuleVersion":    returnString(func(mc *moduleContext) string { return mc.version }),
	"myModuleFullName":   returnString(func(mc *moduleContext) string { return mc.name + "/" + mc.version }),
	"myFileName":         returnString(func(mc *moduleContext) string { return mc.path }),
	"help":               noop,
	"whatis":             noop,
	"prepend_path":       noop,
	"append_path":        noop,
	"remove_path":        noop,
	"unsetenv":           noop,
	"load":               noop,
	"try_load":           noop,
	"always_load":        noop,
	"depends_on":         noop,
	"unload":             noop,
	"prereq":             noop,
	"conflict":           noop,
	"family":             noop,
	"add_property":       noop,
	"remove_property":    noop,
	"set_alias":          noop,
	"set_shell_function": noop,
	"execute":            noop,
	"LmodMessage":        noop,
	"LmodWarning":        noop,
	"LmodError":          noop,
	fallbackDirective:    noop,
}

func lookupDirective(name string) directive {
	if d, ok := directives[name]; ok {
		return d
	}
	return directives[fallbackDirective]
}

// removedGlobals are base library functions that reach outside the sandbox.
var removedGlobals = []string{"dofile", "loadfile", "loadstring", "require", "module", "print"}

// newSandbox returns a Lua state with only the base, table, string and math
// libraries, the directive table installed, and unknown globals resolving to
// no-op functions.
func newSandbox(mc *moduleContext, env *envTable) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	for name, d := range directives {
		if name == fallbackDirective {
			continue
		}
		L.SetGlobal(name, L.NewFunction(d(mc, env)))
	}

	osTable := L.NewTable()
	L.SetField(osTable, "getenv", L.NewFunction(func(L *lua.LState) int {
		v := mc.getenv(L.CheckString(1))
		if v == "" {
			L.Push(lua.LNil)
		} else {
			L.Push(lua.LString(v))
		}
		return 1
	}))
	L.SetGlobal("os", osTable)

	globals := L.G.Global
	mt := L.NewTable()
	L.SetField(mt, "__index", L.NewFunction(func(L *lua.LState) int {
		name := L.ToString(2)
		fn := L.NewFunction(lookupDirective(name)(mc, env))
		globals.RawSetString(name, fn)
		L.Push(fn)
		return 1
	}))
	L.SetMetatable(globals, mt)

	return L
}

// execute runs src in a fresh sandbox and returns the environment assignments
// it made, in call order.
func execute(ctx context.Context, path, src string, getenv func(string) string) (*envTable, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	env := newEnvTable()
	L := newSandbox(newModuleContext(path, getenv), env)
	defer L.Close()
	L.SetContext(ctx)

	fn, err := L.Load(strings.NewReader(src), path)
	if err != nil {
		return nil, err
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, err
	}
	return env, nil
}
