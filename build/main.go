// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"flag"

	"github.com/curioswitch/go-build"
	"github.com/goyek/goyek/v3"
	"github.com/goyek/x/boot"
	"github.com/goyek/x/cmd"
)

var firestoreEmulator = flag.String("firestore-emulator", "localhost:8080", "host:port of the Firestore emulator used by store tests")

func main() {
	goyek.Define(goyek.Task{
		Name:  "test-store",
		Usage: "Runs the Firestore store tests against the emulator.",
		Action: func(a *goyek.A) {
			cmd.Exec(a, "go test ./frontend/server/internal/store/...",
				cmd.Env("FIRESTORE_EMULATOR_HOST", *firestoreEmulator))
		},
	})

	build.DefineTasks()
	boot.Main()
}
