package gs2err

import (
	"errors"
	"fmt"
	"testing"
)

func TestLoaderErrorUnwrapsCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := NewGraalIo(cause)
	if err.Kind != GraalIo {
		t.Fatalf("Kind = %v, want GraalIo", err.Kind)
	}
	if !errors.Is(err, cause) {
		t.Fatal("errors.Is(err, cause) = false, Unwrap should expose the wrapped cause")
	}
}

func TestLoaderErrorFields(t *testing.T) {
	err := NewUnreachableBlock(42)
	if err.Kind != UnreachableBlock || err.Address != 42 {
		t.Fatalf("NewUnreachableBlock = %+v", err)
	}
	if err.Error() == "" {
		t.Fatal("Error() must not be empty")
	}
}

func TestDecompileErrorContextRoundTrip(t *testing.T) {
	ctx := ErrorContext{FunctionName: "main", BlockID: "3", Opcode: "Ret"}
	err := NewRegisterNotFound(ctx, 7)
	if err.Kind != RegisterNotFound || err.Context != ctx {
		t.Fatalf("NewRegisterNotFound = %+v", err)
	}
	want := "function=main block=3 opcode=Ret"
	if got := ctx.String(); got != want {
		t.Fatalf("ErrorContext.String() = %q, want %q", got, want)
	}
}

func TestStructureAnalysisErrorCarriesSubKind(t *testing.T) {
	err := NewStructureAnalysisError(SubMaxIterationsReached, "gave up")
	if err.Kind != StructureAnalysis || err.Sub != SubMaxIterationsReached {
		t.Fatalf("NewStructureAnalysisError = %+v", err)
	}
}

func TestInvalidNodeTypeCarriesExpectedAndFound(t *testing.T) {
	err := NewInvalidNodeType(ErrorContext{}, "Expression", "*ast.Return")
	if err.Expected != "Expression" || err.Found != "*ast.Return" {
		t.Fatalf("NewInvalidNodeType = %+v", err)
	}
}
