package local

import "testing"

func TestSetThenGetRoundTrips(t *testing.T) {
	tbl := New()
	tbl.Set("n", 42)
	//
	got, err := tbl.Get("n")
	if err != nil {
		t.Fatalf("Get after Set failed: %v", err)
	}
	//
	if got != 42 {
		t.Errorf("Get(n) = %d, want 42", got)
	}
}

func TestGetUndefinedReportsUndefSym(t *testing.T) {
	tbl := New()
	//
	if _, err := tbl.Get("missing"); err == nil {
		t.Fatal("Get on an unset name did not error")
	}
}

func TestSetTwiceUpdatesInPlace(t *testing.T) {
	tbl := New()
	tbl.Set("n", 1)
	tbl.Set("n", 2)
	//
	got, err := tbl.Get("n")
	if err != nil || got != 2 {
		t.Fatalf("Get(n) = (%d, %v), want (2, nil) after overwriting Set", got, err)
	}
}
