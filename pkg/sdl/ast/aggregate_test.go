package ast

import "testing"

func TestLastRealMemberSkipsTrailingComments(t *testing.T) {
	agg := &Aggregate{}
	a := &Member{Kind: MemberItem, Name: "a"}
	comment := &Member{Kind: MemberComment, CommentText: "note"}
	agg.Members = []*Member{a, comment}
	//
	if got := agg.LastRealMember(); got != a {
		t.Errorf("LastRealMember() = %v, want the item member preceding the trailing comment", got)
	}
}

func TestLastRealMemberDescendsIntoOpenSubaggregate(t *testing.T) {
	inner := &Aggregate{}
	innerMember := &Member{Kind: MemberItem, Name: "x"}
	inner.Members = []*Member{innerMember}
	// inner is deliberately left unclosed (no Close() call).
	//
	outer := &Aggregate{}
	sub := &Member{Kind: MemberSubaggregate, Name: "sub", Subaggregate: inner}
	outer.Members = []*Member{sub}
	//
	if got := outer.LastRealMember(); got != innerMember {
		t.Errorf("LastRealMember() = %v, want the still-open subaggregate's own last member", got)
	}
}

func TestLastRealMemberReturnsTheSubaggregateMemberItselfOnceClosed(t *testing.T) {
	inner := &Aggregate{}
	inner.Members = []*Member{{Kind: MemberItem, Name: "x"}}
	inner.Close()
	//
	outer := &Aggregate{}
	sub := &Member{Kind: MemberSubaggregate, Name: "sub", Subaggregate: inner}
	outer.Members = []*Member{sub}
	//
	if got := outer.LastRealMember(); got != sub {
		t.Errorf("LastRealMember() = %v, want the subaggregate member itself once closed", got)
	}
}

func TestMemberByNameMissReturnsFalse(t *testing.T) {
	agg := &Aggregate{}
	agg.Members = []*Member{{Kind: MemberItem, Name: "a"}}
	//
	if _, ok := agg.MemberByName("b"); ok {
		t.Error("MemberByName found a member that was never added")
	}
}

func TestSizeOfReflectsSetSize(t *testing.T) {
	agg := &Aggregate{}
	agg.SetSize(16)
	//
	if agg.SizeOf() != 16 {
		t.Errorf("SizeOf() = %d, want 16", agg.SizeOf())
	}
}
