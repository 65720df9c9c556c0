// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound collaborators of the Lumina server.
//
// Three abstractions decouple the service layer from the wire:
//
//   - [RetrievalAgent] answers text questions through the RAG agent, either
//     over loopback HTTP or by spawning the agent process ([NewRetrievalAgent]);
//   - [VisionClient] runs a multimodal chat completion against an
//     OpenAI-compatible endpoint or Gemini ([NewVisionClient]);
//   - [FeedbackSink] forwards user ratings to a tracing service or a broker
//     ([NewFeedbackSink]).
//
// Transport failures are mapped to the sentinel values in errors.go so that
// callers can use [errors.Is] regardless of the selected implementation.
package adapter

import (
	"context"

	"github.com/MKhiriev/lumina/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RetrievalAgent is the RPC boundary to the retrieval agent. The request is
// {query} and the response is {output, error?, run_id?}.
type RetrievalAgent interface {
	// Ask sends query to the agent and returns its decoded answer. An answer
	// whose Error field is set, a non-2xx status, a non-zero exit or a timeout
	// is returned as [ErrAgentFailed] (wrapped).
	Ask(ctx context.Context, query string) (models.AgentAnswer, error)
}

// VisionClient runs one chat completion that may carry an inline image.
type VisionClient interface {
	// Complete returns the text of the first choice. An empty choice list is
	// reported as [ErrEmptyCompletion].
	Complete(ctx context.Context, req models.VisionRequest) (string, error)
}

// FeedbackSink forwards a stored rating to an external collector.
type FeedbackSink interface {
	Send(ctx context.Context, feedback models.Feedback) error
}
