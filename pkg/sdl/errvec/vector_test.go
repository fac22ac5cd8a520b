package errvec

import "testing"

func TestAppendAndHasError(t *testing.T) {
	v := NewVector()
	if v.HasError() || v.HasFatal() {
		t.Fatal("an empty Vector reports an error or fatal")
	}
	//
	v.Append(New("UNDEFSYM", StringArg("x")))
	if !v.HasError() {
		t.Error("HasError false after an Error-severity message was appended")
	}
	//
	if v.HasFatal() {
		t.Error("HasFatal true for an Error-severity (non-Fatal) message")
	}
}

func TestFatalSeverityIsDistinguishedFromError(t *testing.T) {
	v := NewVector()
	v.Append(New("ALLOCFAIL"))
	//
	if !v.HasFatal() {
		t.Error("HasFatal false after a Fatal-severity message was appended")
	}
}

func TestRenderInterpolatesArgsAndNesting(t *testing.T) {
	v := NewVector()
	v.Append(New("UNDEFSYM", StringArg("widget")).WithNested(New("SYNTAXERR")))
	//
	rendered := v.Render()
	if rendered == "" {
		t.Fatal("Render() returned empty for a non-empty Vector")
	}
	//
	if want := "widget"; !contains(rendered, want) {
		t.Errorf("Render() = %q, want it to contain interpolated arg %q", rendered, want)
	}
}

func TestRingEvictsOldestPastCapacity(t *testing.T) {
	v := &Vector{capacity: 2}
	v.Append(New("UNDEFSYM", StringArg("a")))
	v.Append(New("UNDEFSYM", StringArg("b")))
	v.Append(New("UNDEFSYM", StringArg("c")))
	//
	msgs := v.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len(Messages()) = %d, want 2 (ring capacity)", len(msgs))
	}
	//
	if msgs[0].Args[0].str != "b" {
		t.Errorf("oldest surviving message arg = %q, want %q (the oldest entry should have been evicted)", msgs[0].Args[0].str, "b")
	}
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	//
	return false
}
