// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors raised by the transport layer itself. They are mapped to
// status codes by [statusFromError] like service errors are.
var (
	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidMultipart is returned when a multipart chat request cannot be
	// parsed or its image part cannot be read.
	ErrInvalidMultipart = errors.New("invalid multipart form")

	// ErrUnsupportedMediaType is returned for chat requests that are neither
	// JSON nor multipart.
	ErrUnsupportedMediaType = errors.New("unsupported content type")

	// ErrPayloadTooLarge is returned when the request body exceeds the
	// attachment limit plus form overhead.
	ErrPayloadTooLarge = errors.New("request body is too large")

	// ErrNoIdentity is returned when a protected handler runs without the
	// session middleware having stored an identity.
	ErrNoIdentity = errors.New("no identity in request context")
)
