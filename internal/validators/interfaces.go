// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks inbound request models before they reach the
// service layer.
package validators

import "context"

// Validator validates a request model.
type Validator interface {
	// Validate checks obj. When fields is empty every rule for the type is
	// applied; otherwise only the named fields are checked, in order. The
	// first violation is returned.
	Validate(context.Context, any, ...string) error
}
