// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestValuesOrderedById(t *testing.T) {
	vals := Values()
	if len(vals) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(vals), len(issues))
	}
	for i := 1; i < len(vals); i++ {
		if vals[i-1].Id() >= vals[i].Id() {
			t.Errorf("Values() out of order at %d: %d then %d", i, vals[i-1].Id(), vals[i].Id())
		}
	}
}

func TestGet(t *testing.T) {
	for _, id := range []Id{ConfigNotFoundId, ConfigInvalidId, MapLoadFailedId, DefinitionsNotFoundId, HostNotFoundId} {
		got := Get(id)
		if got == nil {
			t.Errorf("Get(%d) = nil", id)
			continue
		}
		if got.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, got.Id())
		}
		if strings.TrimSpace(got.MarkdownMsg()) == "" {
			t.Errorf("Get(%d) has an empty card", id)
		}
	}

	if got := Get(Id(999)); got != nil {
		t.Errorf("Get(999) = %v, want nil", got)
	}
}

func TestRenderUsesMarkdownRenderer(t *testing.T) {
	original := render
	defer func() { render = original }()

	var gotMsg string
	render = func(in string, _ string) (string, error) {
		gotMsg = in
		return "rendered", nil
	}

	out, err := Get(MapLoadFailedId).Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "rendered" {
		t.Errorf("Render() = %q", out)
	}
	if gotMsg != Get(MapLoadFailedId).MarkdownMsg() {
		t.Error("Render() did not pass the card's markdown through")
	}
}
