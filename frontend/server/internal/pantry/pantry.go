// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package pantry keeps the pantry inventory of each user in memory, along with
// the item the user is currently editing.
package pantry

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/curioswitch/larder/common/larderdb"
)

// ErrItemNotFound is returned when an item ID is not in the pantry.
var ErrItemNotFound = errors.New("pantry: item not found")

// State is the pantry of one user. The item list is replaced on every change,
// so a slice returned by Items or sent to subscribers is never modified.
type State struct {
	mu sync.Mutex

	items []larderdb.PantryItem

	// editingID is the ID of the item being edited, empty for a new item.
	editingID string
	draft     larderdb.PantryItem

	subscribers map[chan []larderdb.PantryItem]struct{}
}

// NewState returns an empty pantry.
func NewState() *State {
	s := &State{
		items:       []larderdb.PantryItem{},
		subscribers: map[chan []larderdb.PantryItem]struct{}{},
	}
	s.resetDraft()
	return s
}

func newDraft() larderdb.PantryItem {
	return larderdb.PantryItem{
		ID:       uuid.NewString(),
		Location: larderdb.LocationPantry,
		Quantity: 1,
	}
}

func (s *State) resetDraft() {
	s.editingID = ""
	s.draft = newDraft()
}

// Items returns a snapshot of the pantry.
func (s *State) Items() []larderdb.PantryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

// Subscribe returns a channel receiving the current items and then every new
// snapshot. A slow reader only sees the latest snapshot. The channel is closed
// when ctx is done.
func (s *State) Subscribe(ctx context.Context) <-chan []larderdb.PantryItem {
	ch := make(chan []larderdb.PantryItem, 1)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	ch <- s.items
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subscribers, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch
}

// setItems replaces the item list and notifies subscribers. mu must be held.
func (s *State) setItems(items []larderdb.PantryItem) {
	s.items = items
	for ch := range s.subscribers {
		// Drop a snapshot the subscriber has not read yet.
		select {
		case <-ch:
		default:
		}
		ch <- items
	}
}

// Load starts editing the item with the ID, or a new item when id is empty.
func (s *State) Load(id string) (larderdb.PantryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		s.resetDraft()
		return s.draft, nil
	}
	i := s.indexOf(id)
	if i < 0 {
		return larderdb.PantryItem{}, ErrItemNotFound
	}
	s.editingID = id
	s.draft = s.items[i]
	return s.draft, nil
}

// Draft returns the item being edited.
func (s *State) Draft() larderdb.PantryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Editing returns the ID of the item being edited, empty for a new item.
func (s *State) Editing() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

func (s *State) updateDraft(f func(d *larderdb.PantryItem)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.draft)
}

func (s *State) UpdateTitle(title string) {
	s.updateDraft(func(d *larderdb.PantryItem) { d.Title = title })
}

func (s *State) UpdateDescription(description string) {
	s.updateDraft(func(d *larderdb.PantryItem) { d.Description = description })
}

// UpdateExpiryDate sets the expiry in epoch milliseconds, 0 to clear it.
func (s *State) UpdateExpiryDate(expiry int64) {
	s.updateDraft(func(d *larderdb.PantryItem) { d.ExpiryDate = expiry })
}

func (s *State) UpdateQuantity(quantity int) {
	s.updateDraft(func(d *larderdb.PantryItem) { d.Quantity = quantity })
}

func (s *State) UpdateCategory(category string) {
	s.updateDraft(func(d *larderdb.PantryItem) { d.Category = category })
}

func (s *State) UpdateLocation(location larderdb.Location) {
	s.updateDraft(func(d *larderdb.PantryItem) { d.Location = location })
}

func (s *State) UpdateImageURL(url string) {
	s.updateDraft(func(d *larderdb.PantryItem) { d.ImageURL = url })
}

func (s *State) UpdateFavorite(favorite bool) {
	s.updateDraft(func(d *larderdb.PantryItem) { d.Favorite = favorite })
}

// SaveCurrentItem writes the draft to the pantry, replacing the item being
// edited or appending a new one, and starts a new draft. It returns the saved
// item.
func (s *State) SaveCurrentItem() larderdb.PantryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.draft
	i := -1
	if s.editingID != "" {
		saved.ID = s.editingID
		i = s.indexOf(s.editingID)
	}

	items := slices.Clone(s.items)
	if i >= 0 {
		items[i] = saved
	} else {
		items = append(items, saved)
	}
	s.setItems(items)
	s.resetDraft()
	return saved
}

// Remove deletes the item with the ID.
func (s *State) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrItemNotFound
	}
	s.setItems(slices.Delete(slices.Clone(s.items), i, i+1))
	if s.editingID == id {
		s.resetDraft()
	}
	return nil
}

// ToggleFavorite flips the favorite flag of the item and returns the new value.
func (s *State) ToggleFavorite(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, ErrItemNotFound
	}
	items := slices.Clone(s.items)
	items[i].Favorite = !items[i].Favorite
	s.setItems(items)
	return items[i].Favorite, nil
}

// ItemsAt returns the items stored in the location.
func (s *State) ItemsAt(location larderdb.Location) []larderdb.PantryItem {
	return s.filter(func(item larderdb.PantryItem) bool {
		return item.Location == location
	})
}

// Search returns the items whose title or category contains query, ignoring
// case. An empty query matches every item.
func (s *State) Search(query string) []larderdb.PantryItem {
	query = strings.ToLower(strings.TrimSpace(query))
	return s.filter(func(item larderdb.PantryItem) bool {
		return strings.Contains(strings.ToLower(item.Title), query) ||
			strings.Contains(strings.ToLower(item.Category), query)
	})
}

// ExpiringWithin returns the items with an expiry before now+d, soonest first.
// Already expired items are included.
func (s *State) ExpiringWithin(now time.Time, d time.Duration) []larderdb.PantryItem {
	deadline := now.Add(d)
	res := s.filter(func(item larderdb.PantryItem) bool {
		expiry, ok := item.Expiry()
		return ok && expiry.Before(deadline)
	})
	slices.SortStableFunc(res, func(a, b larderdb.PantryItem) int {
		return cmp.Compare(a.ExpiryDate, b.ExpiryDate)
	})
	return res
}

func (s *State) filter(keep func(larderdb.PantryItem) bool) []larderdb.PantryItem {
	res := []larderdb.PantryItem{}
	for _, item := range s.Items() {
		if keep(item) {
			res = append(res, item)
		}
	}
	return res
}

func (s *State) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(item larderdb.PantryItem) bool {
		return item.ID == id
	})
}

// Registry holds the pantry of every user seen by the process.
type Registry struct {
	mu     sync.Mutex
	states map[string]*State
}

func NewRegistry() *Registry {
	return &Registry{
		states: map[string]*State{},
	}
}

// For returns the pantry of the user, creating an empty one on first use.
func (r *Registry) For(uid string) *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.states[uid]
	if !ok {
		s = NewState()
		r.states[uid] = s
	}
	return s
}

// Drop forgets the pantry of the user.
func (r *Registry) Drop(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, uid)
}
