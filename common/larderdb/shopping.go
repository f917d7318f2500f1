// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package larderdb

import "time"

// ShoppingItem is an entry of a shopping list.
type ShoppingItem struct {
	ItemID    string     `json:"itemId"`
	Name      string     `json:"name"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	Checked   bool       `json:"checked"`
	CheckedAt *time.Time `json:"checkedAt,omitempty"`
}

// ShoppingList is a named list of items to buy. The counters are derived from
// Items and must be refreshed with Recount after any change.
type ShoppingList struct {
	ListID       string         `json:"listId"`
	ListName     string         `json:"listName"`
	CreatedAt    time.Time      `json:"createdAt"`
	Items        []ShoppingItem `json:"items"`
	TotalItems   int            `json:"totalItems"`
	CheckedItems int            `json:"checkedItems"`
	IsCompleted  bool           `json:"isCompleted"`
}

// Recount recomputes the derived counters from Items. A list is completed
// exactly when every item is checked, which includes an empty list.
func (l *ShoppingList) Recount() {
	checked := 0
	for _, item := range l.Items {
		if item.Checked {
			checked++
		}
	}
	l.TotalItems = len(l.Items)
	l.CheckedItems = checked
	l.IsCompleted = checked == l.TotalItems
}
