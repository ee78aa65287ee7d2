// Package lmod extracts raw directives from Lmod module-definition files by
// combining a regular-expression pass with execution in a sandboxed Lua
// interpreter.
package lmod

// Assignment is one environment variable assignment.
type Assignment struct {
	Name  string
	Value string
}

// Facts is the raw content extracted from one module file.
type Facts struct {
	// Path is the file the facts were read from.
	Path string

	// Help holds the help([==[...]==]) blocks in file order.
	Help []string

	// Whatis holds the whatis([==[...]==]) blocks in file order.
	Whatis []string

	// Loads holds the load("...") arguments in file order.
	Loads []string

	// Env holds setenv assignments in first-assignment order. Sandbox
	// assignments come first; literal setenv calls found by the regular
	// expression pass overwrite them or are appended.
	Env []Assignment

	// Root is the value of `local root = "..."`, empty when absent.
	Root string
}

// envTable is an insertion-ordered assignment set. Reassigning a name keeps
// its original position.
type envTable struct {
	list []Assignment
	pos  map[string]int
}

func newEnvTable() *envTable {
	return &envTable{pos: make(map[string]int)}
}

func (e *envTable) set(name, value string) {
	if i, ok := e.pos[name]; ok {
		e.list[i].Value = value
		return
	}
	e.pos[name] = len(e.list)
	e.list = append(e.list, Assignment{Name: name, Value: value})
}

func (e *envTable) assignments() []Assignment {
	out := make([]Assignment, len(e.list))
	copy(out, e.list)
	return out
}
