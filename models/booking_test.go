package models

import "testing"

func TestCanTransitionLegalEdges(t *testing.T) {
	legal := [][2]string{
		{StatusPending, StatusAccepted},
		{StatusPending, StatusRejected},
		{StatusAccepted, StatusCompleted},
	}
	for _, edge := range legal {
		if !CanTransition(edge[0], edge[1]) {
			t.Errorf("expected %s -> %s to be legal", edge[0], edge[1])
		}
	}
}

func TestCanTransitionIllegalEdges(t *testing.T) {
	illegal := [][2]string{
		{StatusPending, StatusCompleted},
		{StatusAccepted, StatusRejected},
		{StatusAccepted, StatusPending},
		{StatusRejected, StatusAccepted},
		{StatusRejected, StatusPending},
		{StatusCompleted, StatusAccepted},
		{StatusCompleted, StatusPending},
		{StatusPending, StatusPending},
		{StatusPending, "cancelled"},
		{"", StatusAccepted},
	}
	for _, edge := range illegal {
		if CanTransition(edge[0], edge[1]) {
			t.Errorf("expected %s -> %s to be illegal", edge[0], edge[1])
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	all := []string{StatusPending, StatusAccepted, StatusRejected, StatusCompleted}
	for _, status := range []string{StatusRejected, StatusCompleted} {
		if !IsTerminalStatus(status) {
			t.Errorf("expected %s to be terminal", status)
		}
		for _, to := range all {
			if CanTransition(status, to) {
				t.Errorf("terminal status %s must not transition to %s", status, to)
			}
		}
	}
	for _, status := range []string{StatusPending, StatusAccepted} {
		if IsTerminalStatus(status) {
			t.Errorf("did not expect %s to be terminal", status)
		}
	}
}

func TestIsBookingActionType(t *testing.T) {
	for _, action := range BookingActionTypes {
		if !IsBookingActionType(action) {
			t.Errorf("catalog action %q rejected", action)
		}
	}
	for _, action := range []string{"", "emergency request", "Tow"} {
		if IsBookingActionType(action) {
			t.Errorf("unknown action %q accepted", action)
		}
	}
}

func TestIsCatalogService(t *testing.T) {
	if !IsCatalogService("Engine Repair") {
		t.Error("catalog service rejected")
	}
	if IsCatalogService("engine repair") {
		t.Error("service matching must be exact")
	}
	if IsCatalogService("Window Tinting") {
		t.Error("unknown service accepted")
	}
}
