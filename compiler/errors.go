package compiler

import (
	"fmt"

	"github.com/charon-lang/charon/token"
)

// Lowering failures come in five kinds. Each embeds token.CompileError so
// every failure carries the source position of the offending node, and each
// is a distinct type so callers can tell the kinds apart with errors.As.
// Lowering aborts at the first failure; a partially lowered module is never
// returned as valid.

// UndefinedVariableError reports a read of a name that was never assigned.
type UndefinedVariableError struct {
	token.CompileError
}

func undefinedVariable(tok token.Token, name string) *UndefinedVariableError {
	return &UndefinedVariableError{token.CompileError{
		Token: tok,
		Msg:   fmt.Sprintf("undefined variable %q", name),
	}}
}

// UnsupportedOperatorError reports an operator outside the fixed
// arithmetic, comparison, and boolean set.
type UnsupportedOperatorError struct {
	token.CompileError
}

func unsupportedOperator(tok token.Token, op token.TokenType) *UnsupportedOperatorError {
	return &UnsupportedOperatorError{token.CompileError{
		Token: tok,
		Msg:   fmt.Sprintf("unsupported operator %s", op),
	}}
}

// UnsupportedConstructError reports a statement or expression kind the
// language does not have.
type UnsupportedConstructError struct {
	token.CompileError
}

func unsupportedConstruct(tok token.Token, msg string) *UnsupportedConstructError {
	return &UnsupportedConstructError{token.CompileError{
		Token: tok,
		Msg:   msg,
	}}
}

// UnknownFunctionError reports a call whose target is neither a declared
// function nor the built-in print, or a call with the wrong argument count.
type UnknownFunctionError struct {
	token.CompileError
}

func unknownFunction(tok token.Token, name string) *UnknownFunctionError {
	return &UnknownFunctionError{token.CompileError{
		Token: tok,
		Msg:   fmt.Sprintf("unknown function %q", name),
	}}
}

func wrongArity(tok token.Token, name string, want, got int) *UnknownFunctionError {
	return &UnknownFunctionError{token.CompileError{
		Token: tok,
		Msg:   fmt.Sprintf("function %q expects %d arguments, got %d", name, want, got),
	}}
}

// DuplicateFunctionError reports two top-level definitions sharing a name.
type DuplicateFunctionError struct {
	token.CompileError
}

func duplicateFunction(tok token.Token, name string) *DuplicateFunctionError {
	return &DuplicateFunctionError{token.CompileError{
		Token: tok,
		Msg:   fmt.Sprintf("function %q has already been defined", name),
	}}
}
