package emit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jdbelanger/go-opensdl/pkg/sdl/ast"
)

func TestListingEmitterModuleLine(t *testing.T) {
	var buf bytes.Buffer
	l := NewListingEmitter(&buf)
	//
	mod := &ast.Module{}
	mod.Name = "M"
	//
	if err := l.Module(ModuleContext{Module: mod}); err != nil {
		t.Fatalf("Module() failed: %v", err)
	}
	//
	if got := buf.String(); !strings.Contains(got, "MODULE M") {
		t.Errorf("output = %q, want it to contain %q", got, "MODULE M")
	}
}

func TestListingEmitterConstantLine(t *testing.T) {
	var buf bytes.Buffer
	l := NewListingEmitter(&buf)
	//
	rec := &ast.Constant{IntValue: 42}
	rec.Name = "X"
	//
	_ = l.Constant(rec, ModuleContext{})
	//
	if got := buf.String(); !strings.Contains(got, "X") || !strings.Contains(got, "42") {
		t.Errorf("output = %q, want it to mention both the name and the value", got)
	}
}

func TestListingEmitterStringConstantIsQuoted(t *testing.T) {
	var buf bytes.Buffer
	l := NewListingEmitter(&buf)
	//
	rec := &ast.Constant{IsString: true, StrValue: "hi"}
	rec.Name = "S"
	//
	_ = l.Constant(rec, ModuleContext{})
	//
	if got := buf.String(); !strings.Contains(got, `"hi"`) {
		t.Errorf("output = %q, want the string value quoted", got)
	}
}

func TestListingEmitterAggregateIndentsByDepth(t *testing.T) {
	var buf bytes.Buffer
	l := NewListingEmitter(&buf)
	//
	agg := &ast.Aggregate{Style: ast.StyleStruct}
	agg.Name = "S"
	//
	_ = l.Aggregate(AggregateEvent{Kind: AggregateOpen, Agg: agg, Depth: 1}, ModuleContext{})
	//
	if got := buf.String(); !strings.HasPrefix(got, "    AGGREGATE") {
		t.Errorf("output = %q, want a depth-1 event indented by four spaces", got)
	}
}

func TestListingEmitterCloseIsANoOp(t *testing.T) {
	l := NewListingEmitter(nil)
	if err := l.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}
