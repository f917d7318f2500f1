// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package frontendapi defines the messages of the FrontendService, the API the
// mobile app calls. Messages are encoded as JSON with camelCase field names.
package frontendapi
