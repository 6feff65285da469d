// Package gs2err defines the two tagged-union error families used across the
// decompiler pipeline: LoaderError and DecompileError. Both follow the shape
// of the teacher's internal/errors.SentraError — a typed Kind, a message, and
// positional context — but wrap causes with github.com/pkg/errors so a
// backtrace is attached where one is available.
package gs2err

import (
	"fmt"

	"github.com/pkg/errors"
)

// LoaderKind enumerates the ways BuildModule can fail.
type LoaderKind string

const (
	InvalidSectionType    LoaderKind = "InvalidSectionType"
	InvalidSectionLength  LoaderKind = "InvalidSectionLength"
	StringIndexOutOfBounds LoaderKind = "StringIndexOutOfBounds"
	NoPreviousInstruction LoaderKind = "NoPreviousInstruction"
	UnreachableBlock      LoaderKind = "UnreachableBlock"
	GraalIo               LoaderKind = "GraalIo"
	OpcodeErrorKind       LoaderKind = "OpcodeError"
	InvalidOperand        LoaderKind = "InvalidOperand"
	InvalidJumpTarget     LoaderKind = "InvalidJumpTarget"
)

// LoaderError is fatal to loading; a partial Module is never returned.
type LoaderError struct {
	Kind    LoaderKind
	Message string

	// Context, populated depending on Kind.
	Section string
	Address int
	Index   int
	Length  int

	cause error
}

func (e *LoaderError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (e *LoaderError) Unwrap() error { return e.cause }

func newLoaderError(kind LoaderKind, message string) *LoaderError {
	return &LoaderError{Kind: kind, Message: message, cause: errors.New(message)}
}

func NewInvalidSectionType(tag uint32) *LoaderError {
	return newLoaderError(InvalidSectionType, fmt.Sprintf("invalid section type: %d", tag))
}

func NewInvalidSectionLength(section string, got uint32) *LoaderError {
	e := newLoaderError(InvalidSectionLength, fmt.Sprintf("invalid section length for %s: got %d", section, got))
	e.Section = section
	e.Length = int(got)
	return e
}

func NewStringIndexOutOfBounds(index, length int) *LoaderError {
	e := newLoaderError(StringIndexOutOfBounds, fmt.Sprintf("string index %d is out of bounds (len %d)", index, length))
	e.Index = index
	e.Length = length
	return e
}

func NewNoPreviousInstruction() *LoaderError {
	return newLoaderError(NoPreviousInstruction, "no previous instruction to attach operand to")
}

func NewUnreachableBlock(address int) *LoaderError {
	e := newLoaderError(UnreachableBlock, fmt.Sprintf("block at address %d is unreachable", address))
	e.Address = address
	return e
}

func NewGraalIo(cause error) *LoaderError {
	return &LoaderError{Kind: GraalIo, Message: cause.Error(), cause: errors.WithStack(cause)}
}

func NewOpcodeError(cause error) *LoaderError {
	return &LoaderError{Kind: OpcodeErrorKind, Message: cause.Error(), cause: errors.WithStack(cause)}
}

func NewInvalidOperand(cause error) *LoaderError {
	return &LoaderError{Kind: InvalidOperand, Message: cause.Error(), cause: errors.WithStack(cause)}
}

func NewInvalidJumpTarget(target int) *LoaderError {
	e := newLoaderError(InvalidJumpTarget, fmt.Sprintf("jump target %d exceeds instruction count", target))
	e.Address = target
	return e
}

// DecompileKind enumerates the ways per-function decompilation can fail.
type DecompileKind string

const (
	CannotPopNode            DecompileKind = "CannotPopNode"
	FunctionErrorKind        DecompileKind = "FunctionError"
	OperandErrorKind         DecompileKind = "OperandError"
	InstructionMustHaveOperand DecompileKind = "InstructionMustHaveOperand"
	InvalidNodeType          DecompileKind = "InvalidNodeType"
	AstNodeErrorKind         DecompileKind = "AstNodeError"
	UnimplementedOpcode      DecompileKind = "UnimplementedOpcode"
	ExecutionStackEmpty      DecompileKind = "ExecutionStackEmpty"
	UnexpectedExecutionState DecompileKind = "UnexpectedExecutionState"
	UnexpectedNodeType       DecompileKind = "UnexpectedNodeType"
	RegisterNotFound         DecompileKind = "RegisterNotFound"
	StructureAnalysis        DecompileKind = "StructureAnalysisError"
	Other                    DecompileKind = "Other"
)

// StructureAnalysisSub distinguishes the sub-kinds nested under
// StructureAnalysisError, mirroring §7 of the specification.
type StructureAnalysisSub string

const (
	SubRegionNotFound       StructureAnalysisSub = "RegionNotFound"
	SubEntryRegionNotFound  StructureAnalysisSub = "EntryRegionNotFound"
	SubMaxIterationsReached StructureAnalysisSub = "MaxIterationsReached"
	SubExpectedConditionNotFound StructureAnalysisSub = "ExpectedConditionNotFound"
	SubOther                StructureAnalysisSub = "Other"
)

// ErrorContext names the (function, block, opcode) triple every handler
// error is reported against, per §7's user-visible behavior requirement.
type ErrorContext struct {
	FunctionName string
	BlockID      string
	Opcode       string
}

func (c ErrorContext) String() string {
	return fmt.Sprintf("function=%s block=%s opcode=%s", c.FunctionName, c.BlockID, c.Opcode)
}

// DecompileError is fatal to the current function; the driver does not retry.
type DecompileError struct {
	Kind    DecompileKind
	Message string
	Context ErrorContext

	Sub StructureAnalysisSub

	Expected string
	Found    string

	cause error
}

func (e *DecompileError) Error() string {
	base := fmt.Sprintf("%s: %s [%s]", e.Kind, e.Message, e.Context)
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", base, e.cause)
	}
	return base
}

func (e *DecompileError) Unwrap() error { return e.cause }

func newDecompileError(kind DecompileKind, ctx ErrorContext, message string) *DecompileError {
	return &DecompileError{Kind: kind, Message: message, Context: ctx, cause: errors.New(message)}
}

func NewCannotPopNode(ctx ErrorContext) *DecompileError {
	return newDecompileError(CannotPopNode, ctx, "cannot pop node from empty block frame stack")
}

func NewFunctionError(ctx ErrorContext, cause error) *DecompileError {
	e := newDecompileError(FunctionErrorKind, ctx, cause.Error())
	e.cause = errors.WithStack(cause)
	return e
}

func NewOperandError(ctx ErrorContext, cause error) *DecompileError {
	e := newDecompileError(OperandErrorKind, ctx, cause.Error())
	e.cause = errors.WithStack(cause)
	return e
}

func NewInstructionMustHaveOperand(ctx ErrorContext) *DecompileError {
	return newDecompileError(InstructionMustHaveOperand, ctx, fmt.Sprintf("%s requires an operand", ctx.Opcode))
}

func NewInvalidNodeType(ctx ErrorContext, expected, found string) *DecompileError {
	e := newDecompileError(InvalidNodeType, ctx, fmt.Sprintf("expected node of kind %s, found %s", expected, found))
	e.Expected = expected
	e.Found = found
	return e
}

func NewAstNodeError(ctx ErrorContext, cause error) *DecompileError {
	e := newDecompileError(AstNodeErrorKind, ctx, cause.Error())
	e.cause = errors.WithStack(cause)
	return e
}

func NewUnimplementedOpcode(ctx ErrorContext) *DecompileError {
	return newDecompileError(UnimplementedOpcode, ctx, fmt.Sprintf("no handler registered for opcode %s", ctx.Opcode))
}

func NewExecutionStackEmpty(ctx ErrorContext) *DecompileError {
	return newDecompileError(ExecutionStackEmpty, ctx, "execution frame stack is empty")
}

func NewUnexpectedExecutionState(ctx ErrorContext, expected, got string) *DecompileError {
	e := newDecompileError(UnexpectedExecutionState, ctx, fmt.Sprintf("expected execution state %s, got %s", expected, got))
	e.Expected = expected
	e.Found = got
	return e
}

func NewUnexpectedNodeType(ctx ErrorContext) *DecompileError {
	return newDecompileError(UnexpectedNodeType, ctx, "unexpected node type on the execution stack")
}

func NewRegisterNotFound(ctx ErrorContext, id int) *DecompileError {
	return newDecompileError(RegisterNotFound, ctx, fmt.Sprintf("register %d has no recorded value", id))
}

func NewStructureAnalysisError(sub StructureAnalysisSub, message string) *DecompileError {
	e := newDecompileError(StructureAnalysis, ErrorContext{}, message)
	e.Sub = sub
	return e
}

func NewOther(ctx ErrorContext, message string) *DecompileError {
	return newDecompileError(Other, ctx, message)
}
