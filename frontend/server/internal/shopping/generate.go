// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package shopping

import (
	"strings"
	"time"

	"github.com/curioswitch/larder/common/larderdb"
)

type ingredientKey struct {
	name string
	unit string
}

// Generate builds a list with the ingredients of recipes that are not already
// in the pantry. Ingredients with the same name and unit are merged with their
// quantities summed. Items keep the order ingredients are first seen in.
func Generate(name string, now time.Time, recipes []larderdb.Recipe, pantry []larderdb.PantryItem) larderdb.ShoppingList {
	have := make(map[string]struct{}, len(pantry))
	for _, item := range pantry {
		have[normalizeName(item.Title)] = struct{}{}
	}

	var items []larderdb.ShoppingItem
	index := map[ingredientKey]int{}
	for _, recipe := range recipes {
		for _, ing := range recipe.Ingredients {
			n := normalizeName(ing.Name)
			if n == "" {
				continue
			}
			if _, ok := have[n]; ok {
				continue
			}
			key := ingredientKey{name: n, unit: strings.ToLower(strings.TrimSpace(ing.Unit))}
			if i, ok := index[key]; ok {
				items[i].Quantity += ing.Quantity
				continue
			}
			index[key] = len(items)
			items = append(items, larderdb.ShoppingItem{
				Name:     strings.TrimSpace(ing.Name),
				Quantity: ing.Quantity,
				Unit:     strings.TrimSpace(ing.Unit),
			})
		}
	}

	return larderdb.ShoppingList{
		ListName:  name,
		CreatedAt: now,
		Items:     items,
	}
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
