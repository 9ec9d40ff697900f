package compiler

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	"github.com/charon-lang/charon/ast"
)

const (
	PRINT  = "print"
	PRINTF = "printf"
)

// declarePrintf registers the external variadic printf declaration that the
// built-in print lowers its calls to.
func declarePrintf(m *ir.Module) *ir.Func {
	printf := m.NewFunc(PRINTF, types.I32, ir.NewParam("format", types.I8Ptr))
	printf.Sig.Variadic = true
	return printf
}

// declareFunctions is the first pass of compilation: every top-level
// function is registered with an i32 return type and i32 parameters before
// any body is lowered, so calls resolve regardless of definition order.
func (c *Compiler) declareFunctions(prog *ast.Program) error {
	for _, fd := range prog.Functions {
		name := fd.Name.Value
		if name == PRINTF {
			return duplicateFunction(fd.Name.Token, name)
		}
		if _, ok := c.funcs[name]; ok {
			return duplicateFunction(fd.Name.Token, name)
		}

		params := make([]*ir.Param, 0, len(fd.Parameters))
		for _, p := range fd.Parameters {
			params = append(params, ir.NewParam(p.Value, types.I32))
		}
		c.funcs[name] = c.Module.NewFunc(name, types.I32, params...)
	}
	return nil
}
