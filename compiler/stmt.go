package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/charon-lang/charon/ast"
)

// intFormat is the shared format constant integer print arguments go
// through; interning keeps it a single global per module.
const intFormat = "%d\n"

// compileBlockStatement lowers statements in order until the insertion
// block closes. Statements after an unconditional terminator are dead code:
// they contribute no instructions and no blocks, and are not an error.
func (c *Compiler) compileBlockStatement(bs *ast.BlockStatement) error {
	for _, stmt := range bs.Statements {
		if c.closed() {
			break
		}
		if err := c.compileStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) compileStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		return c.compileAssign(s)
	case *ast.ReturnStatement:
		return c.compileReturn(s)
	case *ast.ExpressionStatement:
		_, err := c.compileExpression(s.Expression)
		return err
	case *ast.IfStatement:
		return c.compileIf(s)
	case *ast.WhileStatement:
		return c.compileWhile(s)
	case *ast.BlockStatement:
		return c.compileBlockStatement(s)
	default:
		return unsupportedConstruct(stmt.Tok(), fmt.Sprintf("unsupported statement %T", stmt))
	}
}

// compileAssign evaluates the right-hand side fully, then writes the result
// into the variable's slot, creating the slot on first assignment.
func (c *Compiler) compileAssign(s *ast.AssignStatement) error {
	val, err := c.compileExpression(s.Value)
	if err != nil {
		return err
	}
	c.syms.lookupOrCreate(c.block, s.Name.Value, val)
	return nil
}

// compileReturn lowers the return value and closes the block. A bare
// return yields 0.
func (c *Compiler) compileReturn(s *ast.ReturnStatement) error {
	var val value.Value = constant.NewInt(types.I32, 0)
	if s.Value != nil {
		v, err := c.compileExpression(s.Value)
		if err != nil {
			return err
		}
		val = v
	}
	c.returnValue(val)
	return nil
}

// compileIf lowers:
//
//	if cond: consequence
//	else: alternative
//
// to:
//
// 1. Evaluate the condition in the current block and branch on its truth value
// 2. then block: lower the consequence, fall through to merge if still open
// 3. else block: lower the alternative (empty when there is no else clause), fall through to merge
// 4. merge block becomes the insertion point
func (c *Compiler) compileIf(s *ast.IfStatement) error {
	cond, err := c.compileExpression(s.Condition)
	if err != nil {
		return err
	}

	thenBlk := c.newBlock("then")
	elseBlk := c.newBlock("else")
	mergeBlk := c.newBlock("merge")
	c.condBranch(c.truthy(cond), thenBlk, elseBlk)

	c.setInsertion(thenBlk)
	if err := c.compileBlockStatement(s.Consequence); err != nil {
		return err
	}
	c.branch(mergeBlk)

	c.setInsertion(elseBlk)
	if s.Alternative != nil {
		if err := c.compileBlockStatement(s.Alternative); err != nil {
			return err
		}
	}
	c.branch(mergeBlk)

	c.setInsertion(mergeBlk)
	return nil
}

// compileWhile lowers:
//
//	while cond: body
//
// to:
//
// 1. Branch from the current block into while_cond
// 2. while_cond: evaluate the test and branch to while_body or while_end;
//    the test re-runs on every iteration, nothing is cached
// 3. while_body: lower the body, branch back to while_cond
// 4. while_end becomes the insertion point
func (c *Compiler) compileWhile(s *ast.WhileStatement) error {
	condBlk := c.newBlock("while_cond")
	bodyBlk := c.newBlock("while_body")
	endBlk := c.newBlock("while_end")

	c.branch(condBlk)
	c.setInsertion(condBlk)
	cond, err := c.compileExpression(s.Condition)
	if err != nil {
		return err
	}
	c.condBranch(c.truthy(cond), bodyBlk, endBlk)

	c.setInsertion(bodyBlk)
	if err := c.compileBlockStatement(s.Body); err != nil {
		return err
	}
	c.branch(condBlk)

	c.setInsertion(endBlk)
	return nil
}

// compilePrint lowers the built-in print: one printf call per argument.
// A string literal argument prints through its pooled constant; any other
// argument lowers to i32 and prints through the shared "%d\n" constant.
// The result is the last printf call's value.
func (c *Compiler) compilePrint(e *ast.CallExpression) (value.Value, error) {
	var last value.Value = constant.NewInt(types.I32, 0)
	for _, arg := range e.Arguments {
		if s, ok := arg.(*ast.StringLiteral); ok {
			last = c.block.NewCall(c.printf, c.pool.Intern(s.Value))
			continue
		}
		v, err := c.compileExpression(arg)
		if err != nil {
			return nil, err
		}
		last = c.block.NewCall(c.printf, c.pool.Intern(intFormat), v)
	}
	return last, nil
}
