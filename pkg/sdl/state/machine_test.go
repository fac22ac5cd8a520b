package state

import "testing"

func TestMachineStartsInInitial(t *testing.T) {
	m := New()
	if m.Current() != Initial {
		t.Fatalf("Current() = %s, want Initial", m.Current())
	}
}

func TestModuleDeclareItemEndRoundTrip(t *testing.T) {
	m := New()
	//
	steps := []struct {
		action Action
		want   State
	}{
		{ActionModule, Module},
		{ActionItem, Item},
		{ActionEnd, Module},
		{ActionEnd, Initial},
	}
	//
	for _, s := range steps {
		if err := m.Apply(s.action); err != nil {
			t.Fatalf("Apply(%v) in state %s failed: %v", s.action, m.Current(), err)
		}
		//
		if m.Current() != s.want {
			t.Fatalf("after Apply(%v), Current() = %s, want %s", s.action, m.Current(), s.want)
		}
	}
}

func TestInvalidActionInInitialStateIsAnError(t *testing.T) {
	m := New()
	if err := m.Apply(ActionItem); err == nil {
		t.Fatal("ActionItem in Initial state did not error")
	}
}

func TestConstantSeriesSelfTransitionsThenReturnsToCaller(t *testing.T) {
	m := New()
	_ = m.Apply(ActionModule)
	//
	if err := m.Apply(ActionConstant); err != nil {
		t.Fatalf("ActionConstant from Module failed: %v", err)
	}
	//
	if m.Current() != Constant {
		t.Fatalf("Current() = %s, want Constant", m.Current())
	}
	//
	if err := m.Apply(ActionConstant); err != nil {
		t.Fatalf("self-transition within a constant series failed: %v", err)
	}
	//
	if err := m.Apply(ActionEnd); err != nil {
		t.Fatalf("ActionEnd from Constant failed: %v", err)
	}
	//
	if m.Current() != Module {
		t.Fatalf("Current() after ending the constant series = %s, want Module (the caller it was pushed from)", m.Current())
	}
}

func TestAggregateNestsConstantAndReturnsToAggregate(t *testing.T) {
	m := New()
	_ = m.Apply(ActionModule)
	_ = m.Apply(ActionAggregate)
	//
	if err := m.Apply(ActionConstant); err != nil {
		t.Fatalf("ActionConstant from Aggregate failed: %v", err)
	}
	//
	if err := m.Apply(ActionEnd); err != nil {
		t.Fatalf("ending the nested constant failed: %v", err)
	}
	//
	if m.Current() != Aggregate {
		t.Fatalf("Current() after ending a CONSTANT nested in an AGGREGATE = %s, want Aggregate", m.Current())
	}
}

func TestSubaggregateSelfNestsAndTracksDepth(t *testing.T) {
	m := New()
	_ = m.Apply(ActionModule)
	_ = m.Apply(ActionAggregate)
	_ = m.Apply(ActionSubaggregate)
	//
	if m.Current() != Subaggregate {
		t.Fatalf("Current() = %s, want Subaggregate", m.Current())
	}
	//
	if err := m.Apply(ActionSubaggregate); err != nil {
		t.Fatalf("nested SUBAGGREGATE failed: %v", err)
	}
	//
	if m.Current() != Subaggregate {
		t.Fatalf("Current() after a second SUBAGGREGATE = %s, want Subaggregate (self-nesting)", m.Current())
	}
	//
	if err := m.Apply(ActionEnd); err != nil {
		t.Fatalf("closing the inner SUBAGGREGATE failed: %v", err)
	}
	//
	if m.Current() != Aggregate {
		t.Fatalf("Current() after closing one of two nested subaggregates = %s, want Aggregate", m.Current())
	}
}
