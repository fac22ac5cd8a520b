package translator

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jdbelanger/go-opensdl/pkg/sdl/ast"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/emit"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/option"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/types"
)

// recordingEmitter captures every Item name it receives and a flat log of
// every Aggregate event (as "open:S", "member:a", "close:S"), for asserting
// both IFLANGUAGE target filtering and aggregate event ordering.
type recordingEmitter struct {
	name      string
	itemNames []string
	aggLog    []string
}

func (r *recordingEmitter) Name() string          { return r.name }
func (r *recordingEmitter) FileExtension() string { return "out" }
func (r *recordingEmitter) Stars() error          { return nil }
func (r *recordingEmitter) CreatedBy(time.Time) error { return nil }
func (r *recordingEmitter) FileInfo(time.Time, string) error { return nil }
func (r *recordingEmitter) Comment(string, emit.CommentPosition) error { return nil }
func (r *recordingEmitter) Module(emit.ModuleContext) error    { return nil }
func (r *recordingEmitter) ModuleEnd(emit.ModuleContext) error { return nil }
func (r *recordingEmitter) Constant(*ast.Constant, emit.ModuleContext) error { return nil }
func (r *recordingEmitter) Item(rec *ast.Item, ctx emit.ModuleContext) error {
	r.itemNames = append(r.itemNames, rec.TypeName())
	return nil
}
func (r *recordingEmitter) Enumerate(*ast.Enumerate, emit.ModuleContext) error { return nil }

func (r *recordingEmitter) Aggregate(ev emit.AggregateEvent, ctx emit.ModuleContext) error {
	switch ev.Kind {
	case emit.AggregateOpen:
		r.aggLog = append(r.aggLog, "open:"+ev.Agg.TypeName())
	case emit.AggregateClose:
		r.aggLog = append(r.aggLog, "close:"+ev.Agg.TypeName())
	default:
		r.aggLog = append(r.aggLog, "member:"+ev.Member.Name)
	}
	//
	return nil
}

func (r *recordingEmitter) Entry(*ast.Entry, emit.ModuleContext) error { return nil }
func (r *recordingEmitter) Literal(string) error { return nil }
func (r *recordingEmitter) Close() error         { return nil }

func testLog() *logrus.Entry {
	return logrus.NewEntry(logrus.New())
}

// S7: const series -- CONSTANT x, y, z EQUALS 10 INCREMENT 5
func TestConstantSeriesSharesValueAndIncrement(t *testing.T) {
	ctx := New(64, emit.NewGateway(testLog()), testLog())
	_ = ctx.OpenModule("M", "M")
	//
	if err := ctx.OpenConstant([]string{"x", "y", "z"}, nil); err != nil {
		t.Fatalf("OpenConstant failed: %v", err)
	}
	//
	ctx.AddOption(option.TagValue, option.IntValue(10))
	ctx.AddOption(option.TagIncrement, option.IntValue(5))
	//
	if err := ctx.CompleteConstant(); err != nil {
		t.Fatalf("CompleteConstant failed: %v", err)
	}
	//
	if len(ctx.Module.Constants) != 3 {
		t.Fatalf("len(Constants) = %d, want 3", len(ctx.Module.Constants))
	}
	//
	want := []int64{10, 15, 20}
	for i, c := range ctx.Module.Constants {
		if c.IntValue != want[i] {
			t.Errorf("Constants[%d] (%s) = %d, want %d", i, c.TypeName(), c.IntValue, want[i])
		}
	}
}

func TestDuplicateConstantNameIsAnError(t *testing.T) {
	ctx := New(64, emit.NewGateway(testLog()), testLog())
	_ = ctx.OpenModule("M", "M")
	//
	_ = ctx.OpenConstant([]string{"x"}, nil)
	_ = ctx.CompleteConstant()
	//
	_ = ctx.OpenConstant([]string{"x"}, nil)
	if err := ctx.CompleteConstant(); err == nil {
		t.Fatal("registering a constant name twice did not error")
	}
}

// S8: conditional -- IFLANGUAGE CC; ITEM foo LONG; END_IFLANGUAGE, with
// emitters CC and XX both registered: only CC should see the item event.
func TestIfLanguageEventsReachOnlyNamedTargets(t *testing.T) {
	gw := emit.NewGateway(testLog())
	cc := &recordingEmitter{name: "CC"}
	xx := &recordingEmitter{name: "XX"}
	gw.Register(cc)
	gw.Register(xx)
	//
	ctx := New(64, gw, testLog())
	_ = ctx.OpenModule("M", "M")
	//
	if err := ctx.IfLanguage([]string{"CC"}); err != nil {
		t.Fatalf("IfLanguage failed: %v", err)
	}
	//
	_ = ctx.OpenItem("foo")
	if err := ctx.CompleteItem(types.Long); err != nil {
		t.Fatalf("CompleteItem failed: %v", err)
	}
	//
	if err := ctx.EndConditional(nil); err != nil {
		t.Fatalf("EndConditional failed: %v", err)
	}
	//
	if len(cc.itemNames) != 1 || cc.itemNames[0] != "foo" {
		t.Errorf("CC received %v, want exactly one item event for foo", cc.itemNames)
	}
	//
	if len(xx.itemNames) != 0 {
		t.Errorf("XX received %v, want no item events", xx.itemNames)
	}
}

// S1 again, but asserting the emitted event *sequence* rather than just
// the resulting offsets: open(S), member(a), member(b), close(S), each
// exactly once and in lexical order (spec.md §6.2, §8 testable property 5).
func TestAggregateEventsOpenBeforeMembersEachExactlyOnce(t *testing.T) {
	gw := emit.NewGateway(testLog())
	rec := &recordingEmitter{name: "rec"}
	gw.Register(rec)
	//
	ctx := New(64, gw, testLog())
	_ = ctx.OpenModule("M", "M")
	//
	_ = ctx.OpenAggregate("S", ast.StyleStruct)
	_ = ctx.AddMember("a", types.Byte, types.NoneID, false, 0)
	_ = ctx.AddMember("b", types.Long, types.NoneID, false, 0)
	_ = ctx.CompleteAggregate()
	//
	want := []string{"open:S", "member:a", "member:b", "close:S"}
	if len(rec.aggLog) != len(want) {
		t.Fatalf("aggLog = %v, want %v", rec.aggLog, want)
	}
	//
	for i := range want {
		if rec.aggLog[i] != want[i] {
			t.Errorf("aggLog[%d] = %q, want %q", i, rec.aggLog[i], want[i])
		}
	}
}

// A nested SUBAGGREGATE must bracket its own body with an Open/Close pair
// in addition to the single member event that represents it within its
// parent (spec.md §6.2: "an opening call per aggregate and subaggregate").
func TestSubaggregateBracketsItsOwnBody(t *testing.T) {
	gw := emit.NewGateway(testLog())
	rec := &recordingEmitter{name: "rec"}
	gw.Register(rec)
	//
	ctx := New(64, gw, testLog())
	_ = ctx.OpenModule("M", "M")
	//
	_ = ctx.OpenAggregate("Outer", ast.StyleStruct)
	_ = ctx.OpenSubaggregate("inner", ast.StyleStruct)
	_ = ctx.AddMember("x", types.Long, types.NoneID, false, 0)
	_ = ctx.CompleteAggregate() // closes "inner"
	_ = ctx.CompleteAggregate() // closes "Outer"
	//
	want := []string{"open:Outer", "open:inner", "member:x", "close:inner", "member:inner", "close:Outer"}
	if len(rec.aggLog) != len(want) {
		t.Fatalf("aggLog = %v, want %v", rec.aggLog, want)
	}
	//
	for i := range want {
		if rec.aggLog[i] != want[i] {
			t.Errorf("aggLog[%d] = %q, want %q", i, rec.aggLog[i], want[i])
		}
	}
}

func TestIfLanguageRejectsUnknownTarget(t *testing.T) {
	ctx := New(64, emit.NewGateway(testLog()), testLog())
	_ = ctx.OpenModule("M", "M")
	//
	if err := ctx.IfLanguage([]string{"NOSUCHTARGET"}); err == nil {
		t.Fatal("IfLanguage with an unregistered target name did not error")
	}
}

func TestCircularDeclareIsReported(t *testing.T) {
	ctx := New(64, emit.NewGateway(testLog()), testLog())
	_ = ctx.OpenModule("M", "M")
	//
	_ = ctx.OpenDeclare("SELF")
	_ = ctx.CompleteDeclare(types.Long, "SELF")
	//
	found := false
	for _, m := range ctx.Errors.Messages() {
		if m.Mnemonic == "CIRCDEF" {
			found = true
		}
	}
	//
	if !found {
		t.Error("a DECLARE whose target names itself did not report CIRCDEF")
	}
}

func TestDimensionedItemSize(t *testing.T) {
	// S5: ITEM a WORD DIMENSION 0:3 -> a.size = 8 (4 elements * 2 bytes)
	ctx := New(64, emit.NewGateway(testLog()), testLog())
	_ = ctx.OpenModule("M", "M")
	//
	_ = ctx.OpenItem("a")
	idx, err := ctx.AllocateDimension(0, 3)
	if err != nil {
		t.Fatalf("AllocateDimension failed: %v", err)
	}
	//
	dim, err := ctx.BindDimension(idx)
	if err != nil {
		t.Fatalf("BindDimension failed: %v", err)
	}
	//
	ctx.pendingItem.Dimension = dim
	//
	if err := ctx.CompleteItem(types.Word); err != nil {
		t.Fatalf("CompleteItem failed: %v", err)
	}
	//
	if got := ctx.Module.Items[0].SizeOf(); got != 8 {
		t.Errorf("a.size = %d, want 8", got)
	}
}
