package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// Block bookkeeping for the function being lowered. A block is open until
// its terminator is inserted; all three terminate operations check for an
// existing terminator first and skip insertion when the block is already
// closed. That check is what lets both arms of a conditional fall through
// to a shared merge block without double-terminating it, and what makes a
// return inside an already-closed block a no-op.

// newBlock appends a fresh block to the current function without moving the
// insertion point. Labels get a per-hint counter so they stay unique within
// the function: then_0, then_1, while_cond_0, ...
func (c *Compiler) newBlock(hint string) *ir.Block {
	n := c.labels[hint]
	c.labels[hint]++
	return c.fn.NewBlock(fmt.Sprintf("%s_%d", hint, n))
}

// setInsertion makes blk the active block; subsequent instructions append
// there.
func (c *Compiler) setInsertion(blk *ir.Block) {
	c.block = blk
}

// closed reports whether the insertion block already has its terminator.
func (c *Compiler) closed() bool {
	return c.block.Term != nil
}

// branch closes the insertion block with an unconditional branch to target.
func (c *Compiler) branch(target *ir.Block) {
	if c.closed() {
		return
	}
	c.block.NewBr(target)
}

// condBranch closes the insertion block with a conditional branch. cond
// must be an i1.
func (c *Compiler) condBranch(cond value.Value, then, els *ir.Block) {
	if c.closed() {
		return
	}
	c.block.NewCondBr(cond, then, els)
}

// returnValue closes the insertion block with ret.
func (c *Compiler) returnValue(v value.Value) {
	if c.closed() {
		return
	}
	c.block.NewRet(v)
}
