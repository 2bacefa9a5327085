// Package statestore is the client-side state container: a normalized cache
// of sites, the focused site, the session, and the view preferences. All
// changes flow through Dispatch with a typed action; filtered views are
// derived on every read and never cached.
package statestore

import (
	"slices"
	"sync"

	"github.com/flybg-dev/flyingsites/internal/interfaces/operation"
	"github.com/flybg-dev/flyingsites/internal/utils"
)

type ViewMode string

const (
	ViewModeMap  ViewMode = "map"
	ViewModeList ViewMode = "list"
)

// State is the full client state. Values are treated as immutable once
// stored; the reducer replaces, never mutates in place.
type State struct {
	Sites        []*operation.FlyingSite `json:"-"`
	FocusedSite  *operation.FlyingSite   `json:"-"`
	ViewMode     ViewMode                `json:"viewMode"`
	WindFilter   string                  `json:"windFilter"`
	SessionToken string                  `json:"sessionToken"`
	Profile      *operation.User         `json:"profile"`
}

type actionType int

const (
	actionSetSites actionType = iota
	actionFocusSite
	actionClearFocus
	actionSetViewMode
	actionSetWindFilter
	actionAddSite
	actionUpdateSite
	actionDeleteSite
	actionSetSession
	actionClearSession
)

// Action is a typed state transition request. Only the fields relevant to
// its type are read by the reducer.
type Action struct {
	actionType actionType
	sites      []*operation.FlyingSite
	site       *operation.FlyingSite
	siteId     uint
	viewMode   ViewMode
	windFilter string
	token      string
	profile    *operation.User
}

func SetSites(sites []*operation.FlyingSite) Action {
	return Action{actionType: actionSetSites, sites: sites}
}

func FocusSite(site *operation.FlyingSite) Action {
	return Action{actionType: actionFocusSite, site: site}
}

func ClearFocus() Action {
	return Action{actionType: actionClearFocus}
}

func SetViewMode(viewMode ViewMode) Action {
	return Action{actionType: actionSetViewMode, viewMode: viewMode}
}

func SetWindFilter(windFilter string) Action {
	return Action{actionType: actionSetWindFilter, windFilter: windFilter}
}

func addSite(site *operation.FlyingSite) Action {
	return Action{actionType: actionAddSite, site: site}
}

func updateSite(site *operation.FlyingSite) Action {
	return Action{actionType: actionUpdateSite, site: site}
}

func deleteSite(siteId uint) Action {
	return Action{actionType: actionDeleteSite, siteId: siteId}
}

func SetSession(token string, profile *operation.User) Action {
	return Action{actionType: actionSetSession, token: token, profile: profile}
}

func ClearSession() Action {
	return Action{actionType: actionClearSession}
}

// reduce computes the next state from the previous one. It is pure: no IO,
// no mutation of the previous state.
func reduce(state State, action Action) State {
	switch action.actionType {
	case actionSetSites:
		state.Sites = action.sites
	case actionFocusSite:
		state.FocusedSite = action.site
	case actionClearFocus:
		state.FocusedSite = nil
	case actionSetViewMode:
		state.ViewMode = action.viewMode
	case actionSetWindFilter:
		state.WindFilter = action.windFilter
	case actionAddSite:
		sites := make([]*operation.FlyingSite, 0, len(state.Sites)+1)
		sites = append(sites, state.Sites...)
		state.Sites = append(sites, action.site)
	case actionUpdateSite:
		sites := slices.Clone(state.Sites)
		for index, site := range sites {
			if site.ID == action.site.ID {
				sites[index] = action.site
			}
		}
		state.Sites = sites
		if state.FocusedSite != nil && state.FocusedSite.ID == action.site.ID {
			state.FocusedSite = action.site
		}
	case actionDeleteSite:
		state.Sites = utils.Filter(state.Sites, func(site *operation.FlyingSite) bool {
			return site.ID != action.siteId
		})
		if state.FocusedSite != nil && state.FocusedSite.ID == action.siteId {
			state.FocusedSite = nil
		}
	case actionSetSession:
		state.SessionToken = action.token
		state.Profile = action.profile
	case actionClearSession:
		state.SessionToken = ""
		state.Profile = nil
	}
	return state
}

type Store struct {
	mu      sync.RWMutex
	state   State
	storage StorageInterface
}

// NewStore loads the persisted slice of the state from storage once; the
// rest starts zeroed. A nil storage keeps everything in memory.
func NewStore(storage StorageInterface) *Store {
	store := &Store{
		state:   State{ViewMode: ViewModeMap},
		storage: storage,
	}
	if storage != nil {
		if persisted, err := storage.Load(); err == nil && persisted != nil {
			store.state.ViewMode = persisted.ViewMode
			store.state.WindFilter = persisted.WindFilter
			store.state.SessionToken = persisted.SessionToken
			store.state.Profile = persisted.Profile
		}
		if store.state.ViewMode == "" {
			store.state.ViewMode = ViewModeMap
		}
	}
	return store
}

// Dispatch applies one action and persists the durable slice of the result.
func (store *Store) Dispatch(action Action) {
	store.mu.Lock()
	store.state = reduce(store.state, action)
	state := store.state
	store.mu.Unlock()

	if store.storage != nil {
		_ = store.storage.Save(&state)
	}
}

func (store *Store) State() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

// AddLocally reflects a server-confirmed creation without a re-fetch.
func (store *Store) AddLocally(site *operation.FlyingSite) {
	store.Dispatch(addSite(site))
}

// UpdateLocally reflects a server-confirmed update without a re-fetch.
func (store *Store) UpdateLocally(site *operation.FlyingSite) {
	store.Dispatch(updateSite(site))
}

// DeleteLocally reflects a server-confirmed deletion without a re-fetch.
func (store *Store) DeleteLocally(siteId uint) {
	store.Dispatch(deleteSite(siteId))
}

// FocusSiteById focuses the cached site with the given id and reports
// whether it was found. An unknown id leaves the focus untouched.
func (store *Store) FocusSiteById(siteId uint) bool {
	store.mu.RLock()
	site := utils.Find(store.state.Sites, func(site *operation.FlyingSite) bool {
		return site.ID == siteId
	})
	store.mu.RUnlock()

	if site == nil {
		return false
	}
	store.Dispatch(FocusSite(site))
	return true
}

// FilteredSites recomputes the active wind filter on every call.
func (store *Store) FilteredSites() []*operation.FlyingSite {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if store.state.WindFilter == "" {
		return store.state.Sites
	}
	return utils.Filter(store.state.Sites, func(site *operation.FlyingSite) bool {
		return slices.Contains(site.WindDirection, store.state.WindFilter)
	})
}
