// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package larderdb

import (
	"fmt"
	"time"
)

// UserProfile is the profile document stored at users/{uid}, alongside the
// Firebase auth record of the user.
type UserProfile struct {
	// ID is the Firebase UID of the user.
	ID string `firestore:"id" json:"id"`

	// Email is the email address of the user.
	Email string `firestore:"email" json:"email"`

	// DisplayName is the name shown in the app.
	DisplayName string `firestore:"displayName" json:"displayName"`

	// PhotoURL is the public URL of the profile image.
	PhotoURL string `firestore:"photoUrl" json:"photoUrl"`

	// AuthProvider is the sign-in provider, e.g. "password" or "google.com".
	AuthProvider string `firestore:"authProvider" json:"authProvider"`

	// CreatedAt is set by the server when the profile is registered.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`

	// Onboarded is whether the user finished onboarding.
	Onboarded bool `firestore:"onboarded" json:"onboarded"`

	// Preferences are the settings collected during onboarding.
	Preferences Preferences `firestore:"preferences" json:"preferences"`
}

// Preferences groups the user's settings.
type Preferences struct {
	Dietary       DietaryPreferences      `firestore:"dietary" json:"dietary"`
	Allergies     AllergyPreferences      `firestore:"allergies" json:"allergies"`
	Notifications NotificationPreferences `firestore:"notifications" json:"notifications"`
}

// Validate checks the preference values.
func (p *Preferences) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPreferences, err)
	}
	return nil
}

type DietaryPreferences struct {
	Vegetarian  bool `firestore:"vegetarian" json:"vegetarian"`
	Vegan       bool `firestore:"vegan" json:"vegan"`
	Pescatarian bool `firestore:"pescatarian" json:"pescatarian"`
	GlutenFree  bool `firestore:"glutenFree" json:"glutenFree"`
	DairyFree   bool `firestore:"dairyFree" json:"dairyFree"`
	Keto        bool `firestore:"keto" json:"keto"`
	Halal       bool `firestore:"halal" json:"halal"`
	Kosher      bool `firestore:"kosher" json:"kosher"`
}

type AllergyPreferences struct {
	Nuts      bool `firestore:"nuts" json:"nuts"`
	Peanuts   bool `firestore:"peanuts" json:"peanuts"`
	Shellfish bool `firestore:"shellfish" json:"shellfish"`
	Fish      bool `firestore:"fish" json:"fish"`
	Eggs      bool `firestore:"eggs" json:"eggs"`
	Dairy     bool `firestore:"dairy" json:"dairy"`
	Soy       bool `firestore:"soy" json:"soy"`
	Gluten    bool `firestore:"gluten" json:"gluten"`
	Sesame    bool `firestore:"sesame" json:"sesame"`

	// Other lists allergies not covered by the fields above.
	Other []string `firestore:"other" json:"other" validate:"max=20,dive,required,max=50"`
}

type NotificationPreferences struct {
	// ExpiryReminders enables reminders for pantry items about to expire.
	ExpiryReminders bool `firestore:"expiryReminders" json:"expiryReminders"`

	// ReminderDaysBefore is how many days before expiry to remind.
	ReminderDaysBefore int `firestore:"reminderDaysBefore" json:"reminderDaysBefore" validate:"gte=0,lte=30"`

	RecipeSuggestions bool `firestore:"recipeSuggestions" json:"recipeSuggestions"`
	ShoppingReminders bool `firestore:"shoppingReminders" json:"shoppingReminders"`
}
