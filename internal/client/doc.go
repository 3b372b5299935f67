// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the identity service.
//
// Each invocation runs one subcommand (register, login, me, follow, ...)
// against the server through the client services. The session token
// obtained at login is remembered in a local SQLite file so that later
// invocations are authenticated without logging in again.
package client
