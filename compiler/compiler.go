package compiler

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/charon-lang/charon/ast"
)

// Compiler lowers one compilation unit's AST into an LLVM IR module. It
// owns the module, the constant pool, and the function map built by the
// declaration pass; the remaining fields track the function currently being
// lowered. A Compiler is single-use: build one per compilation unit. It is
// not safe for concurrent use, but independent Compilers are independent.
type Compiler struct {
	Module *ir.Module

	pool   *ConstPool
	funcs  map[string]*ir.Func
	printf *ir.Func

	// State for the function currently being lowered.
	fn     *ir.Func
	block  *ir.Block
	syms   *SymbolTable
	labels map[string]int

	finalized bool
}

func New() *Compiler {
	m := ir.NewModule()
	return &Compiler{
		Module: m,
		pool:   NewConstPool(m),
		funcs:  make(map[string]*ir.Func),
		printf: declarePrintf(m),
	}
}

// Compile lowers prog in two passes: declare every function signature, then
// lower each body in source order. The first error aborts the whole
// compilation; a partially lowered module is never returned as valid.
func (c *Compiler) Compile(prog *ast.Program) error {
	if err := c.declareFunctions(prog); err != nil {
		return err
	}
	return c.lowerAll(prog)
}

func (c *Compiler) lowerAll(prog *ast.Program) error {
	for _, fd := range prog.Functions {
		if err := c.lowerFunc(fd); err != nil {
			return err
		}
	}
	return nil
}

// lowerFunc lowers one function body. The entry block binds every parameter
// to a fresh storage slot initialized with the incoming value; a body whose
// final block is still open after lowering returns 0 implicitly.
func (c *Compiler) lowerFunc(fd *ast.FuncDef) error {
	c.fn = c.funcs[fd.Name.Value]
	c.syms = newSymbolTable(c.fn)
	c.labels = make(map[string]int)

	entry := c.fn.NewBlock("entry")
	c.setInsertion(entry)
	for i, p := range fd.Parameters {
		c.syms.lookupOrCreate(entry, p.Value, c.fn.Params[i])
	}

	if err := c.compileBlockStatement(fd.Body); err != nil {
		return err
	}

	c.returnValue(constant.NewInt(types.I32, 0))
	return nil
}

// Finalize stamps target metadata onto the module, once. The module is
// complete after this; callers must not lower into it again.
func (c *Compiler) Finalize(t Target) *ir.Module {
	if !c.finalized {
		c.Module.TargetTriple = t.Triple
		c.Module.DataLayout = t.DataLayout
		c.finalized = true
	}
	return c.Module
}

// GenerateIR renders the module as textual LLVM IR: target metadata, then
// globals and the printf declaration, then each function with blocks in
// creation order and instructions in insertion order.
func (c *Compiler) GenerateIR() string {
	return c.Module.String()
}
