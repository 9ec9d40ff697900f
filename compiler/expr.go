package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/charon-lang/charon/ast"
	"github.com/charon-lang/charon/token"
)

// Comparison operators map to signed predicates; the language's only type
// is a signed integer.
var icmpPreds = map[token.TokenType]enum.IPred{
	token.LSS: enum.IPredSLT,
	token.LEQ: enum.IPredSLE,
	token.GTR: enum.IPredSGT,
	token.GEQ: enum.IPredSGE,
	token.EQL: enum.IPredEQ,
}

// compileExpression lowers an expression to an i32 value in the insertion
// block. Booleans are integers: comparisons and boolean operators pass
// through i1 and zext back to i32, 0 is false, everything else is true.
func (c *Compiler) compileExpression(expr ast.Expression) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return constant.NewInt(types.I32, e.Value), nil
	case *ast.Identifier:
		return c.syms.read(c.block, e.Token, e.Value)
	case *ast.InfixExpression:
		return c.compileInfix(e)
	case *ast.PrefixExpression:
		return c.compilePrefix(e)
	case *ast.CallExpression:
		return c.compileCall(e)
	case *ast.StringLiteral:
		return nil, unsupportedConstruct(e.Token, "string literal is only valid as a print argument")
	default:
		return nil, unsupportedConstruct(expr.Tok(), fmt.Sprintf("unsupported expression %T", expr))
	}
}

func (c *Compiler) compileInfix(e *ast.InfixExpression) (value.Value, error) {
	left, err := c.compileExpression(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.compileExpression(e.Right)
	if err != nil {
		return nil, err
	}

	if pred, ok := icmpPreds[e.Operator]; ok {
		cmp := c.block.NewICmp(pred, left, right)
		return c.block.NewZExt(cmp, types.I32), nil
	}

	switch e.Operator {
	case token.ADD:
		return c.block.NewAdd(left, right), nil
	case token.SUB:
		return c.block.NewSub(left, right), nil
	case token.MUL:
		return c.block.NewMul(left, right), nil
	case token.QUO:
		return c.block.NewSDiv(left, right), nil
	case token.AND:
		// Both operands are always evaluated; and/or introduce no
		// short-circuit control flow.
		return c.block.NewZExt(c.block.NewAnd(c.truthy(left), c.truthy(right)), types.I32), nil
	case token.OR:
		return c.block.NewZExt(c.block.NewOr(c.truthy(left), c.truthy(right)), types.I32), nil
	}
	return nil, unsupportedOperator(e.Token, e.Operator)
}

func (c *Compiler) compilePrefix(e *ast.PrefixExpression) (value.Value, error) {
	if e.Operator != token.NOT {
		return nil, unsupportedOperator(e.Token, e.Operator)
	}
	v, err := c.compileExpression(e.Right)
	if err != nil {
		return nil, err
	}
	isZero := c.block.NewICmp(enum.IPredEQ, v, constant.NewInt(types.I32, 0))
	return c.block.NewZExt(isZero, types.I32), nil
}

// compileCall resolves against the declared-function map first, so a
// user-defined print shadows the built-in.
func (c *Compiler) compileCall(e *ast.CallExpression) (value.Value, error) {
	name := e.Function.Value
	fn, ok := c.funcs[name]
	if !ok {
		if name == PRINT {
			return c.compilePrint(e)
		}
		return nil, unknownFunction(e.Function.Token, name)
	}

	if len(e.Arguments) != len(fn.Params) {
		return nil, wrongArity(e.Token, name, len(fn.Params), len(e.Arguments))
	}
	args := make([]value.Value, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		v, err := c.compileExpression(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return c.block.NewCall(fn, args...), nil
}

// truthy collapses an i32 to its i1 truth value (v != 0).
func (c *Compiler) truthy(v value.Value) value.Value {
	return c.block.NewICmp(enum.IPredNE, v, constant.NewInt(types.I32, 0))
}
