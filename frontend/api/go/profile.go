// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package frontendapi

import "github.com/curioswitch/larder/common/larderdb"

type RegisterProfileRequest struct {
	DisplayName string `json:"displayName"`
}

type RegisterProfileResponse struct {
	Profile larderdb.UserProfile `json:"profile"`
}

type GetProfileRequest struct{}

type GetProfileResponse struct {
	// Profile is nil for a user that has not registered.
	Profile *larderdb.UserProfile `json:"profile"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"displayName"`

	// PhotoDataURL replaces the profile image when set.
	PhotoDataURL string `json:"photoDataUrl"`
}

type UpdateProfileResponse struct {
	Profile *larderdb.UserProfile `json:"profile"`
}

type UpdatePreferencesRequest struct {
	Preferences        larderdb.Preferences `json:"preferences"`
	CompleteOnboarding bool                 `json:"completeOnboarding"`
}

type UpdatePreferencesResponse struct{}

type DeleteAccountRequest struct{}

type DeleteAccountResponse struct{}
