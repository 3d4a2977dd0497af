package ui

import (
	"context"
	"testing"
)

func TestDoWithoutJournal(t *testing.T) {
	u := &UI{}
	if err := u.Do(context.Background()); err == nil {
		t.Fatalf("expected an error without a journal")
	}
}
