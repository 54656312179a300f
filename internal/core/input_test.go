package core

import "testing"

func TestInputFrameSetHas(t *testing.T) {
	var f InputFrame
	if f.Has(ActionFire) {
		t.Error("nil frame should report no actions")
	}

	f.Set(ActionFire)
	f.Set(ActionForward)
	if !f.Has(ActionFire) || !f.Has(ActionForward) {
		t.Error("actions set on a nil frame should be recorded")
	}
	if f.Has(ActionReverse) {
		t.Error("unset action reported")
	}

	g := Frame(ActionTurnStepLeft, ActionFire)
	if !g.Has(ActionTurnStepLeft) || !g.Has(ActionFire) || g.Has(ActionForward) {
		t.Errorf("Frame built %v", g.Actions)
	}
}

func TestMultiInputFrameMissingPlayer(t *testing.T) {
	m := NewMultiInputFrame()
	m.SetPlayer(Player1, Frame(ActionTurnLeft))

	if !m.Player(Player1).Has(ActionTurnLeft) {
		t.Error("Player1 input lost")
	}
	if m.Player(Player2).Has(ActionTurnLeft) {
		t.Error("missing player should get an empty frame")
	}

	var zero MultiInputFrame
	if zero.Player(Player1).Has(ActionFire) {
		t.Error("zero MultiInputFrame should yield empty frames")
	}
}

func TestPlayerOther(t *testing.T) {
	if Player1.Other() != Player2 || Player2.Other() != Player1 {
		t.Error("Other should swap sides")
	}
	if Player1.String() != "P1" || Player2.String() != "P2" {
		t.Errorf("unexpected names %q %q", Player1, Player2)
	}
}

func TestStepDuration(t *testing.T) {
	if d := (RuntimeConfig{TickRate: 50}).StepDuration(); d != 0.02 {
		t.Errorf("StepDuration() = %f, expected 0.02", d)
	}
	if d := (RuntimeConfig{}).StepDuration(); d != float32(1.0/60.0) {
		t.Errorf("zero tick rate should fall back to 60Hz, got %f", d)
	}
}
