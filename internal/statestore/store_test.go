// Package statestore
package statestore

import (
	"path/filepath"
	"testing"

	"github.com/flybg-dev/flyingsites/internal/interfaces/operation"
)

func site(id uint, bg string, directions ...string) *operation.FlyingSite {
	return &operation.FlyingSite{
		ID:            id,
		Title:         operation.LocalizedText{Bg: bg},
		WindDirection: directions,
	}
}

func TestFilteredSites(t *testing.T) {
	store := NewStore(nil)
	store.Dispatch(SetSites([]*operation.FlyingSite{
		site(1, "Витоша", "N", "NE"),
		site(2, "Сопот", "S", "SW"),
	}))

	store.Dispatch(SetWindFilter("N"))
	filtered := store.FilteredSites()
	if len(filtered) != 1 || filtered[0].ID != 1 {
		t.Errorf("filter N = %d sites; expected only the northern one", len(filtered))
	}

	// applying the same filter twice changes nothing
	again := store.FilteredSites()
	if len(again) != len(filtered) || again[0].ID != filtered[0].ID {
		t.Errorf("filter is not idempotent: %v vs %v", again, filtered)
	}

	store.Dispatch(SetWindFilter("WNW"))
	if empty := store.FilteredSites(); len(empty) != 0 {
		t.Errorf("filter WNW = %d sites; expected none", len(empty))
	}

	store.Dispatch(SetWindFilter(""))
	if all := store.FilteredSites(); len(all) != 2 {
		t.Errorf("no filter = %d sites; expected all", len(all))
	}
}

func TestLocalMutations(t *testing.T) {
	store := NewStore(nil)
	store.Dispatch(SetSites([]*operation.FlyingSite{site(1, "Витоша", "N")}))

	store.AddLocally(site(2, "Сопот", "S"))
	if state := store.State(); len(state.Sites) != 2 {
		t.Fatalf("sites = %d; expected 2 after AddLocally", len(state.Sites))
	}

	updated := site(2, "Сопот", "S", "SW")
	store.Dispatch(FocusSite(store.State().Sites[1]))
	store.UpdateLocally(updated)
	state := store.State()
	if len(state.Sites[1].WindDirection) != 2 {
		t.Errorf("update not reflected: %+v", state.Sites[1])
	}
	if state.FocusedSite == nil || len(state.FocusedSite.WindDirection) != 2 {
		t.Errorf("focused site not refreshed: %+v", state.FocusedSite)
	}

	store.DeleteLocally(2)
	state = store.State()
	if len(state.Sites) != 1 || state.Sites[0].ID != 1 {
		t.Errorf("delete not reflected: %+v", state.Sites)
	}
	if state.FocusedSite != nil {
		t.Errorf("focus survives deletion: %+v", state.FocusedSite)
	}
}

func TestFocusSiteById(t *testing.T) {
	store := NewStore(nil)
	store.Dispatch(SetSites([]*operation.FlyingSite{
		site(1, "Витоша", "N"),
		site(2, "Сопот", "S"),
	}))

	if !store.FocusSiteById(2) {
		t.Fatal("FocusSiteById(2) = false for a cached site")
	}
	if focused := store.State().FocusedSite; focused == nil || focused.ID != 2 {
		t.Errorf("focused = %+v; expected site 2", focused)
	}

	if store.FocusSiteById(9) {
		t.Error("FocusSiteById(9) = true for an unknown id")
	}
	if focused := store.State().FocusedSite; focused == nil || focused.ID != 2 {
		t.Errorf("unknown id moved the focus: %+v", focused)
	}
}

func TestReducerDoesNotMutatePrevious(t *testing.T) {
	store := NewStore(nil)
	store.Dispatch(SetSites([]*operation.FlyingSite{site(1, "Витоша", "N")}))
	before := store.State()

	store.AddLocally(site(2, "Сопот", "S"))

	if len(before.Sites) != 1 {
		t.Errorf("previous state mutated: %d sites", len(before.Sites))
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	storage := NewFileStorage(path)

	store := NewStore(storage)
	store.Dispatch(SetViewMode(ViewModeList))
	store.Dispatch(SetWindFilter("NE"))
	store.Dispatch(SetSession("token-value", &operation.User{ID: 4, Email: "pilot@example.com"}))

	reloaded := NewStore(storage)
	state := reloaded.State()
	if state.ViewMode != ViewModeList {
		t.Errorf("view mode = %q; expected persisted list", state.ViewMode)
	}
	if state.WindFilter != "NE" {
		t.Errorf("wind filter = %q; expected persisted NE", state.WindFilter)
	}
	if state.SessionToken != "token-value" || state.Profile == nil || state.Profile.Email != "pilot@example.com" {
		t.Errorf("session not persisted: %+v", state)
	}
	if len(state.Sites) != 0 {
		t.Errorf("sites cache persisted: %d; expected in-memory only", len(state.Sites))
	}
}

func TestLoadMissingFile(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "missing.json"))
	state, err := storage.Load()
	if err != nil || state != nil {
		t.Errorf("Load missing = (%v, %v); expected (nil, nil)", state, err)
	}

	store := NewStore(storage)
	if store.State().ViewMode != ViewModeMap {
		t.Errorf("default view mode = %q; expected map", store.State().ViewMode)
	}
}
