package cart

import (
	"testing"

	pkgerrors "github.com/angelmondragon/bestprice-backend/pkg/errors"
)

func TestCartMutationsCopyThenReplace(t *testing.T) {
	t.Parallel()

	base := New("s1")
	withOne, err := base.Add(Line{ID: "l1", ItemID: "P1", Qty: 1})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !base.IsEmpty() {
		t.Fatalf("add mutated the receiver: %+v", base)
	}

	withTwo, err := withOne.Add(Line{ID: "l2", ItemID: "P2", Qty: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	edited, err := withTwo.SetQty("l1", 5)
	if err != nil {
		t.Fatalf("set qty: %v", err)
	}
	if withTwo.Lines[0].Qty != 1 {
		t.Fatalf("set qty mutated the receiver: %+v", withTwo.Lines[0])
	}
	if edited.Lines[0].Qty != 5 {
		t.Fatalf("expected qty 5, got %d", edited.Lines[0].Qty)
	}

	removed, err := edited.Remove("l1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(edited.Lines) != 2 || edited.Lines[0].ID != "l1" {
		t.Fatalf("remove mutated the receiver: %+v", edited.Lines)
	}
	if len(removed.Lines) != 1 || removed.Lines[0].ID != "l2" {
		t.Fatalf("unexpected lines after remove: %+v", removed.Lines)
	}

	cleared := removed.Clear()
	if !cleared.IsEmpty() || cleared.SessionID != "s1" {
		t.Fatalf("unexpected cleared cart: %+v", cleared)
	}
	if removed.IsEmpty() {
		t.Fatalf("clear mutated the receiver")
	}
}

func TestCartRejectsInvalidEdits(t *testing.T) {
	t.Parallel()

	c, err := New("s1").Add(Line{ID: "l1", Qty: 1})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := c.Add(Line{ID: "l2", Qty: 0}); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for qty 0, got %v", err)
	}
	if _, err := c.SetQty("l1", -1); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for negative qty, got %v", err)
	}
	if _, err := c.SetQty("nope", 2); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for unknown line, got %v", err)
	}
	if _, err := c.Remove("nope"); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for unknown line, got %v", err)
	}
}
