package oracle

import (
	"testing"

	"github.com/jdbelanger/go-opensdl/pkg/sdl/types"
)

type emptyRegistry struct{}

func (emptyRegistry) LookupByID(types.ID) (types.Named, bool) { return nil, false }

func TestSizeOfBaseTypes(t *testing.T) {
	o := New(emptyRegistry{}, 64)
	//
	cases := []struct {
		name string
		id   types.ID
		want int
	}{
		{"BYTE", types.Byte, 1},
		{"WORD", types.Word, 2},
		{"LONG", types.Long, 4},
		{"QUAD", types.Quad, 8},
		{"OCTA", types.Octa, 16},
	}
	//
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := o.SizeOf(c.id); got != c.want {
				t.Errorf("SizeOf(%s) = %d, want %d", c.name, got, c.want)
			}
		})
	}
}

func TestSizeOfWordSizedTypesTrack32Vs64(t *testing.T) {
	o32 := New(emptyRegistry{}, 32)
	o64 := New(emptyRegistry{}, 64)
	//
	if got := o32.SizeOf(types.Addr); got != 4 {
		t.Errorf("32-bit Oracle SizeOf(ADDR) = %d, want 4", got)
	}
	//
	if got := o64.SizeOf(types.Addr); got != 8 {
		t.Errorf("64-bit Oracle SizeOf(ADDR) = %d, want 8", got)
	}
}

func TestAlignmentOfIsLargestPowerOfTwoNotExceedingSize(t *testing.T) {
	o := New(emptyRegistry{}, 64)
	//
	if got := o.AlignmentOf(types.Byte); got != 1 {
		t.Errorf("AlignmentOf(BYTE) = %d, want 1", got)
	}
	//
	if got := o.AlignmentOf(types.Long); got != 4 {
		t.Errorf("AlignmentOf(LONG) = %d, want 4", got)
	}
	//
	if got := o.AlignmentOf(types.Octa); got != 8 {
		t.Errorf("AlignmentOf(OCTA) = %d, want 8 (capped at word size)", got)
	}
}

func TestIsAddressRecognizesAddressFamily(t *testing.T) {
	if !IsAddress(types.Addr) {
		t.Error("IsAddress(ADDR) = false, want true")
	}
	//
	if IsAddress(types.Long) {
		t.Error("IsAddress(LONG) = true, want false")
	}
}
