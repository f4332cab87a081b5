package gateway

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// ErrCommunicationFailure means every endpoint exhausted its retry budget
// without producing a decodable response.
var ErrCommunicationFailure = errors.New("unable to communicate with payment gateway")

// Poster abstracts the transport client so the submitter can be exercised
// without a live gateway.
type Poster interface {
	Post(ctx context.Context, endpoint Endpoint, req TransactionRequest) (*RawResponse, error)
}

// Submitter drives one transaction through the endpoint list: endpoints in
// ascending priority order, each attempted up to its retry budget. Retries
// cover transport-level non-responses only. The first decoded response of
// any kind, decline included, ends the submission immediately; retrying a
// decoded decline risks a double charge.
type Submitter struct {
	client Poster
}

// NewSubmitter returns a submitter backed by the given transport client.
func NewSubmitter(client Poster) *Submitter {
	return &Submitter{client: client}
}

// Submit sends req via the ordered endpoints and returns the first decoded
// response, or ErrCommunicationFailure once every endpoint is exhausted.
func (s *Submitter) Submit(ctx context.Context, req TransactionRequest, endpoints []Endpoint) (*RawResponse, error) {
	for _, ep := range endpoints {
		for attempt := 1; attempt <= ep.Retries; attempt++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			resp, err := s.client.Post(ctx, ep, req)
			if err == nil {
				return resp, nil
			}

			log.Warn().
				Err(err).
				Str("endpoint", ep.BaseURL).
				Int("attempt", attempt).
				Int("budget", ep.Retries).
				Str("order_id", req.OrderID).
				Msg("gateway attempt failed")
		}
	}
	return nil, ErrCommunicationFailure
}
