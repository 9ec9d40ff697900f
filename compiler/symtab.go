package compiler

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/charon-lang/charon/token"
)

// SymbolTable maps variable names to their storage slots for the function
// currently being lowered. The mapping is flat, not block scoped:
// conditionals and loops lower into nested blocks but share the enclosing
// function's table, so a variable first assigned inside a branch or loop
// body stays visible after the construct. The table is discarded when the
// function finishes lowering.
type SymbolTable struct {
	fn    *ir.Func
	slots map[string]*ir.InstAlloca
}

func newSymbolTable(fn *ir.Func) *SymbolTable {
	return &SymbolTable{
		fn:    fn,
		slots: make(map[string]*ir.InstAlloca),
	}
}

// lookupOrCreate stores val into name's slot at the insertion block,
// allocating the slot on first assignment. Slots always land in the entry
// block regardless of where the first assignment happens, so they dominate
// reads from every later block of the function.
func (st *SymbolTable) lookupOrCreate(at *ir.Block, name string, val value.Value) *ir.InstAlloca {
	slot, ok := st.slots[name]
	if !ok {
		slot = st.fn.Blocks[0].NewAlloca(types.I32)
		slot.LocalName = name + ".addr"
		st.slots[name] = slot
	}
	at.NewStore(val, slot)
	return slot
}

// read loads name's current value at the insertion block.
func (st *SymbolTable) read(at *ir.Block, tok token.Token, name string) (value.Value, error) {
	slot, ok := st.slots[name]
	if !ok {
		return nil, undefinedVariable(tok, name)
	}
	return at.NewLoad(types.I32, slot), nil
}
