package layout

import (
	"testing"

	"github.com/jdbelanger/go-opensdl/pkg/sdl/ast"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/errvec"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/oracle"
	"github.com/jdbelanger/go-opensdl/pkg/sdl/types"
)

type stubRegistry struct{}

func (stubRegistry) LookupByID(types.ID) (types.Named, bool) { return nil, false }

func newEngine() (*Engine, *errvec.Vector) {
	errs := errvec.NewVector()
	o := oracle.New(stubRegistry{}, 64)
	return New(o, errs), errs
}

func item(name string, dataType types.ID) *ast.Item {
	it := &ast.Item{DataType: dataType}
	it.Name = name
	return it
}

func itemMember(name string, dataType types.ID) *ast.Member {
	return &ast.Member{Kind: ast.MemberItem, Name: name, Item: item(name, dataType)}
}

func placeAll(t *testing.T, e *Engine, agg *ast.Aggregate, members []*ast.Member) {
	t.Helper()
	//
	for _, m := range members {
		if err := e.PlaceMember(agg, m); err != nil {
			t.Fatalf("PlaceMember(%s) failed: %v", m.Name, err)
		}
	}
}

// S1: flat struct -- AGGREGATE S STRUCT; a BYTE; b LONG; END S
func TestFlatStructNaturalAlignment(t *testing.T) {
	e, errs := newEngine()
	agg := &ast.Aggregate{Style: ast.StyleStruct}
	agg.Name = "S"
	//
	placeAll(t, e, agg, []*ast.Member{
		itemMember("a", types.Byte),
		itemMember("b", types.Long),
	})
	//
	if err := e.Close(agg); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	//
	a, _ := agg.MemberByName("a")
	b, _ := agg.MemberByName("b")
	//
	if a.ByteOffset != 0 {
		t.Errorf("a.offset = %d, want 0", a.ByteOffset)
	}
	//
	if b.ByteOffset != 4 {
		t.Errorf("b.offset = %d, want 4 (natural LONG alignment)", b.ByteOffset)
	}
	//
	if agg.SizeOf() != 8 {
		t.Errorf("sizeof(S) = %d, want 8", agg.SizeOf())
	}
	//
	if len(errs.Messages()) != 0 {
		t.Errorf("unexpected diagnostics: %s", errs.Render())
	}
}

// S2: packed struct -- AGGREGATE S STRUCT NOALIGN; a BYTE; b LONG; END S
func TestPackedStructNoAlign(t *testing.T) {
	e, _ := newEngine()
	agg := &ast.Aggregate{Style: ast.StyleStruct, NoAlign: true}
	agg.Name = "S"
	//
	placeAll(t, e, agg, []*ast.Member{
		itemMember("a", types.Byte),
		itemMember("b", types.Long),
	})
	//
	_ = e.Close(agg)
	//
	a, _ := agg.MemberByName("a")
	b, _ := agg.MemberByName("b")
	//
	if a.ByteOffset != 0 || b.ByteOffset != 1 {
		t.Errorf("offsets = (a:%d, b:%d), want (0, 1) with NOALIGN", a.ByteOffset, b.ByteOffset)
	}
	//
	if agg.SizeOf() != 5 {
		t.Errorf("sizeof(S) = %d, want 5", agg.SizeOf())
	}
}

// S3: union -- AGGREGATE U UNION; w WORD; l LONG; END U
func TestUnionMembersShareOffsetZero(t *testing.T) {
	e, _ := newEngine()
	agg := &ast.Aggregate{Style: ast.StyleUnion}
	agg.Name = "U"
	//
	placeAll(t, e, agg, []*ast.Member{
		itemMember("w", types.Word),
		itemMember("l", types.Long),
	})
	//
	_ = e.Close(agg)
	//
	w, _ := agg.MemberByName("w")
	l, _ := agg.MemberByName("l")
	//
	if w.ByteOffset != 0 || l.ByteOffset != 0 {
		t.Errorf("union offsets = (w:%d, l:%d), want both 0", w.ByteOffset, l.ByteOffset)
	}
	//
	if agg.SizeOf() != 4 {
		t.Errorf("sizeof(U) = %d, want 4 (widest member)", agg.SizeOf())
	}
}

// S4: bitfield run -- f1 BITFIELD LENGTH 3; f2 BITFIELD LENGTH 5; f3
// BITFIELD LENGTH 1 over a BYTE-sized storage unit.
func TestBitfieldRunCrossesUnitBoundary(t *testing.T) {
	e, _ := newEngine()
	agg := &ast.Aggregate{Style: ast.StyleStruct}
	agg.Name = "S"
	//
	bit := func(name string, length int64) *ast.Member {
		it := item(name, types.Bitfield)
		it.SubType = types.Byte
		return &ast.Member{Kind: ast.MemberBitfield, Name: name, Item: it, BitLength: length}
	}
	//
	placeAll(t, e, agg, []*ast.Member{
		bit("f1", 3),
		bit("f2", 5),
		bit("f3", 1),
	})
	//
	_ = e.Close(agg)
	//
	f1, _ := agg.MemberByName("f1")
	f2, _ := agg.MemberByName("f2")
	f3, _ := agg.MemberByName("f3")
	//
	if f1.BitOffset != 0 || f2.BitOffset != 3 {
		t.Errorf("bit offsets = (f1:%d, f2:%d), want (0, 3)", f1.BitOffset, f2.BitOffset)
	}
	//
	if f3.BitOffset != 0 {
		t.Errorf("f3.BitOffset = %d, want 0 (new storage unit after f1+f2 fill the byte)", f3.BitOffset)
	}
	//
	if f3.ByteOffset != 1 {
		t.Errorf("f3.ByteOffset = %d, want 1 (second storage unit byte)", f3.ByteOffset)
	}
	//
	if agg.SizeOf() != 2 {
		t.Errorf("sizeof(S) = %d, want 2 (two one-byte storage units)", agg.SizeOf())
	}
}

// S6: ORIGIN -- AGGREGATE S STRUCT ORIGIN b; a LONG; b LONG; c LONG; END
func TestOriginRelocatesReportedOffsets(t *testing.T) {
	e, _ := newEngine()
	agg := &ast.Aggregate{Style: ast.StyleStruct, Origin: "b"}
	agg.Name = "S"
	//
	placeAll(t, e, agg, []*ast.Member{
		itemMember("a", types.Long),
		itemMember("b", types.Long),
		itemMember("c", types.Long),
	})
	//
	_ = e.Close(agg)
	//
	a, _ := agg.MemberByName("a")
	b, _ := agg.MemberByName("b")
	c, _ := agg.MemberByName("c")
	//
	if a.ByteOffset != -4 {
		t.Errorf("a.offset = %d, want -4", a.ByteOffset)
	}
	//
	if b.ByteOffset != 0 {
		t.Errorf("b.offset = %d, want 0 (the ORIGIN member itself)", b.ByteOffset)
	}
	//
	if c.ByteOffset != 4 {
		t.Errorf("c.offset = %d, want 4", c.ByteOffset)
	}
}

func TestZeroLengthDimensionReportsZerolen(t *testing.T) {
	e, errs := newEngine()
	agg := &ast.Aggregate{Style: ast.StyleStruct}
	agg.Name = "S"
	//
	m := itemMember("a", types.Byte)
	m.Item.Dimension = ast.Dimension{Low: 3, High: 1, InUse: true}
	//
	_ = e.PlaceMember(agg, m)
	//
	if !errs.HasError() {
		t.Error("a dimension with High < Low did not report a diagnostic")
	}
}

func TestUndefinedOriginReportsUndeforgButStillCloses(t *testing.T) {
	e, errs := newEngine()
	agg := &ast.Aggregate{Style: ast.StyleStruct, Origin: "missing"}
	agg.Name = "S"
	//
	placeAll(t, e, agg, []*ast.Member{itemMember("a", types.Long)})
	//
	if err := e.Close(agg); err != nil {
		t.Fatalf("Close should still succeed (best-effort) despite UNDEFORG: %v", err)
	}
	//
	if !errs.HasError() {
		t.Error("an unresolved ORIGIN member name did not report a diagnostic")
	}
}
