// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive terminal client runtime.
//
// It alternates between the login flow and the chat screen of the terminal
// UI until the user quits.
package client
