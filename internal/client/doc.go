// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client-side runtime of the account service.
//
// It wires the typed API adapter, the in-memory session cache, and the
// background session refresh job into a single process lifecycle.
package client
