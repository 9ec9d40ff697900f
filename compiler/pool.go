package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// ConstPool deduplicates string literals into module-level constants.
// Entries are keyed by exact byte content and never removed, so interning
// the same payload twice yields the same addressable constant and the
// module carries at most one global per distinct literal.
type ConstPool struct {
	module  *ir.Module
	entries map[string]value.Value
}

func NewConstPool(m *ir.Module) *ConstPool {
	return &ConstPool{
		module:  m,
		entries: make(map[string]value.Value),
	}
}

// Intern returns an i8* constant addressing the NUL-terminated global that
// holds text, defining the global on first use. Synthetic names follow the
// pool size at interning time: str_const_0, str_const_1, ...
func (cp *ConstPool) Intern(text string) value.Value {
	if ptr, ok := cp.entries[text]; ok {
		return ptr
	}

	data := text + "\x00"
	name := fmt.Sprintf("str_const_%d", len(cp.entries))
	global := cp.module.NewGlobalDef(name, constant.NewCharArrayFromString(data))
	global.Linkage = enum.LinkageInternal
	global.Immutable = true
	global.UnnamedAddr = enum.UnnamedAddrUnnamedAddr

	zero := constant.NewInt(types.I32, 0)
	ptr := constant.NewGetElementPtr(
		types.NewArray(uint64(len(data)), types.I8),
		global,
		zero, zero,
	)
	cp.entries[text] = ptr
	return ptr
}

// Size returns the number of distinct payloads interned so far.
func (cp *ConstPool) Size() int {
	return len(cp.entries)
}
