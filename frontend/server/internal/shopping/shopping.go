// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package shopping keeps the shopping lists of each user in memory.
package shopping

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/curioswitch/larder/common/larderdb"
)

var (
	// ErrEmptyName is returned when creating a list without a name.
	ErrEmptyName = errors.New("shopping: list name is empty")
	// ErrListNotFound is returned for an unknown list ID.
	ErrListNotFound = errors.New("shopping: list not found")
	// ErrItemNotFound is returned for an unknown item ID.
	ErrItemNotFound = errors.New("shopping: item not found")
)

// Lists are the shopping lists of one user. Lists returned to callers are
// copies and never change.
type Lists struct {
	mu    sync.Mutex
	lists []larderdb.ShoppingList
}

// NewLists returns an empty set of lists.
func NewLists() *Lists {
	return &Lists{}
}

// Create adds an empty list with the name.
func (l *Lists) Create(name string, now time.Time) (larderdb.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return larderdb.ShoppingList{}, ErrEmptyName
	}
	return l.Add(larderdb.ShoppingList{
		ListName:  name,
		CreatedAt: now,
	}), nil
}

// Add stores a list built elsewhere, assigning IDs to it and its items.
func (l *Lists) Add(list larderdb.ShoppingList) larderdb.ShoppingList {
	list.ListID = uuid.NewString()
	list.Items = slices.Clone(list.Items)
	if list.Items == nil {
		list.Items = []larderdb.ShoppingItem{}
	}
	for i := range list.Items {
		if list.Items[i].ItemID == "" {
			list.Items[i].ItemID = uuid.NewString()
		}
	}
	list.Recount()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.lists = append(l.lists, list)
	return cloneList(list)
}

// All returns every list in creation order.
func (l *Lists) All() []larderdb.ShoppingList {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := make([]larderdb.ShoppingList, len(l.lists))
	for i, list := range l.lists {
		res[i] = cloneList(list)
	}
	return res
}

// Get returns the list with the ID.
func (l *Lists) Get(listID string) (larderdb.ShoppingList, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(listID)
	if i < 0 {
		return larderdb.ShoppingList{}, ErrListNotFound
	}
	return cloneList(l.lists[i]), nil
}

// Delete removes the list with the ID.
func (l *Lists) Delete(listID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(listID)
	if i < 0 {
		return ErrListNotFound
	}
	l.lists = slices.Delete(l.lists, i, i+1)
	return nil
}

// AddItem appends an unchecked item to the list and returns the updated list.
func (l *Lists) AddItem(listID string, item larderdb.ShoppingItem) (larderdb.ShoppingList, error) {
	item.ItemID = uuid.NewString()
	item.Checked = false
	item.CheckedAt = nil
	return l.modify(listID, func(list *larderdb.ShoppingList) error {
		list.Items = append(list.Items, item)
		return nil
	})
}

// RemoveItem removes the item from the list and returns the updated list.
func (l *Lists) RemoveItem(listID string, itemID string) (larderdb.ShoppingList, error) {
	return l.modify(listID, func(list *larderdb.ShoppingList) error {
		i := itemIndex(list, itemID)
		if i < 0 {
			return ErrItemNotFound
		}
		list.Items = slices.Delete(list.Items, i, i+1)
		return nil
	})
}

// ToggleItemChecked flips the checked state of the item, recording now as the
// check time, and returns the updated list.
func (l *Lists) ToggleItemChecked(listID string, itemID string, now time.Time) (larderdb.ShoppingList, error) {
	return l.modify(listID, func(list *larderdb.ShoppingList) error {
		i := itemIndex(list, itemID)
		if i < 0 {
			return ErrItemNotFound
		}
		item := &list.Items[i]
		item.Checked = !item.Checked
		if item.Checked {
			at := now
			item.CheckedAt = &at
		} else {
			item.CheckedAt = nil
		}
		return nil
	})
}

// modify applies f to a copy of the list and stores it with fresh counters.
func (l *Lists) modify(listID string, f func(list *larderdb.ShoppingList) error) (larderdb.ShoppingList, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(listID)
	if i < 0 {
		return larderdb.ShoppingList{}, ErrListNotFound
	}
	list := cloneList(l.lists[i])
	if err := f(&list); err != nil {
		return larderdb.ShoppingList{}, err
	}
	list.Recount()
	l.lists[i] = list
	return cloneList(list), nil
}

func (l *Lists) indexOf(listID string) int {
	return slices.IndexFunc(l.lists, func(list larderdb.ShoppingList) bool {
		return list.ListID == listID
	})
}

func itemIndex(list *larderdb.ShoppingList, itemID string) int {
	return slices.IndexFunc(list.Items, func(item larderdb.ShoppingItem) bool {
		return item.ItemID == itemID
	})
}

func cloneList(list larderdb.ShoppingList) larderdb.ShoppingList {
	list.Items = slices.Clone(list.Items)
	if list.Items == nil {
		list.Items = []larderdb.ShoppingItem{}
	}
	return list
}

// Registry holds the shopping lists of every user seen by the process.
type Registry struct {
	mu    sync.Mutex
	lists map[string]*Lists
}

func NewRegistry() *Registry {
	return &Registry{
		lists: map[string]*Lists{},
	}
}

// For returns the lists of the user, creating an empty set on first use.
func (r *Registry) For(uid string) *Lists {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lists[uid]
	if !ok {
		l = NewLists()
		r.lists[uid] = l
	}
	return l
}

// Drop forgets the lists of the user.
func (r *Registry) Drop(uid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lists, uid)
}
