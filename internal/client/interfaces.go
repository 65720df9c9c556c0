// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/lumina/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the part of the terminal UI the runtime drives.
type UI interface {
	LoginFlow(ctx context.Context) (models.UserResponse, error)
	ChatLoop(ctx context.Context, user models.UserResponse) (logout bool, err error)
}
