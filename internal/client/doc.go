// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client process runtime.
//
// It wires the local data-access API, client services and the periodic
// document sync into a single process lifecycle.
package client
