package decompctx

import (
	"fmt"

	"gs2dc/internal/ast"
	"gs2dc/internal/function"
	"gs2dc/internal/gs2err"
)

// Context is the per-function decompiler context of §4.F. It is not safe
// for concurrent use by more than one function decompile at a time; §5's
// concurrency model gives each parallel function its own Context.
type Context struct {
	FunctionName string

	activeBlock  function.BasicBlockID
	activeRegion string
	frames       []Frame

	ssaCounters map[string]int
	registers   map[int]ast.Assignable
}

// New constructs an empty context for the named function.
func New(functionName string) *Context {
	return &Context{
		FunctionName: functionName,
		ssaCounters:  make(map[string]int),
		registers:    make(map[int]ast.Assignable),
	}
}

// StartBlockProcessing clears the active block's frame stack and records
// which region statements produced from this block should be appended to.
func (c *Context) StartBlockProcessing(block function.BasicBlockID, regionID string) {
	c.activeBlock = block
	c.activeRegion = regionID
	c.frames = nil
}

// ActiveRegion returns the region the current block's output is appended
// to.
func (c *Context) ActiveRegion() string { return c.activeRegion }

// NextSSA allocates the next generated name of the form `kind_N` for the
// per-function counter keyed by kind.
func (c *Context) NextSSA(kind string) string {
	n := c.ssaCounters[kind]
	c.ssaCounters[kind] = n + 1
	return fmt.Sprintf("%s_%d", kind, n)
}

func (c *Context) errCtx(opcode string) gs2err.ErrorContext {
	return gs2err.ErrorContext{
		FunctionName: c.FunctionName,
		BlockID:      fmt.Sprintf("%d", c.activeBlock),
		Opcode:       opcode,
	}
}

// PushOneNode pushes n into the top BuildingArray frame if one is open
// (kind-checking that n is an Expression), otherwise opens a new
// StandaloneNode frame, per §4.F.
func (c *Context) PushOneNode(n ast.Node, opcode string) error {
	if len(c.frames) > 0 && c.frames[len(c.frames)-1].Kind == BuildingArray {
		expr, ok := n.(ast.Expression)
		if !ok {
			return gs2err.NewInvalidNodeType(c.errCtx(opcode), "Expression", fmt.Sprintf("%T", n))
		}
		top := &c.frames[len(c.frames)-1]
		top.Elements = append(top.Elements, expr)
		return nil
	}
	c.frames = append(c.frames, standalone(n))
	return nil
}

// OpenBuildingArray pushes a fresh, empty BuildingArray frame.
func (c *Context) OpenBuildingArray() {
	c.frames = append(c.frames, buildingArray())
}

// popTop removes and returns the top frame, failing ExecutionStackEmpty if
// the stack is empty.
func (c *Context) popTop(opcode string) (Frame, error) {
	if len(c.frames) == 0 {
		return Frame{}, gs2err.NewExecutionStackEmpty(c.errCtx(opcode))
	}
	top := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	return top, nil
}

// PopOneNode pops one node. When the top frame is BuildingArray, it pops
// from that frame's element list instead, leaving the frame on the stack
// for subsequent pops (§4.F).
func (c *Context) PopOneNode(opcode string) (ast.Node, error) {
	if len(c.frames) == 0 {
		return nil, gs2err.NewExecutionStackEmpty(c.errCtx(opcode))
	}
	top := &c.frames[len(c.frames)-1]
	if top.Kind == BuildingArray {
		if len(top.Elements) == 0 {
			return nil, gs2err.NewCannotPopNode(c.errCtx(opcode))
		}
		n := top.Elements[len(top.Elements)-1]
		top.Elements = top.Elements[:len(top.Elements)-1]
		return n, nil
	}
	frame, err := c.popTop(opcode)
	if err != nil {
		return nil, err
	}
	return frame.Node, nil
}

// PopExpression pops one node and asserts it is an Expression.
func (c *Context) PopExpression(opcode string) (ast.Expression, error) {
	n, err := c.PopOneNode(opcode)
	if err != nil {
		return nil, err
	}
	expr, ok := n.(ast.Expression)
	if !ok {
		return nil, gs2err.NewInvalidNodeType(c.errCtx(opcode), "Expression", fmt.Sprintf("%T", n))
	}
	return expr, nil
}

// PopAssignable pops one node and asserts it is Assignable.
func (c *Context) PopAssignable(opcode string) (ast.Assignable, error) {
	n, err := c.PopOneNode(opcode)
	if err != nil {
		return nil, err
	}
	a, ok := n.(ast.Assignable)
	if !ok {
		return nil, gs2err.NewInvalidNodeType(c.errCtx(opcode), "Assignable", fmt.Sprintf("%T", n))
	}
	return a, nil
}

// PopIdentifier pops one node and asserts it is exactly an *ast.Identifier.
func (c *Context) PopIdentifier(opcode string) (*ast.Identifier, error) {
	n, err := c.PopOneNode(opcode)
	if err != nil {
		return nil, err
	}
	id, ok := n.(*ast.Identifier)
	if !ok {
		return nil, gs2err.NewInvalidNodeType(c.errCtx(opcode), "Identifier", fmt.Sprintf("%T", n))
	}
	return id, nil
}

// CloseBuildingArray pops the top frame, which must be BuildingArray,
// returning its elements in the order they were pushed (callers reverse
// when the opcode semantics require it).
func (c *Context) CloseBuildingArray(opcode string) ([]ast.Expression, error) {
	frame, err := c.popTop(opcode)
	if err != nil {
		return nil, err
	}
	if frame.Kind != BuildingArray {
		return nil, gs2err.NewUnexpectedNodeType(c.errCtx(opcode))
	}
	return frame.Elements, nil
}

// SetRegister records id -> value for later GetRegister lookups.
func (c *Context) SetRegister(id int, value ast.Assignable) {
	c.registers[id] = value
}

// GetRegister looks up id, failing RegisterNotFound if it was never set.
func (c *Context) GetRegister(id int, opcode string) (ast.Assignable, error) {
	v, ok := c.registers[id]
	if !ok {
		return nil, gs2err.NewRegisterNotFound(c.errCtx(opcode), id)
	}
	return v, nil
}
