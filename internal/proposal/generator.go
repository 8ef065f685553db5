// Package proposal generates AI business proposals for instant quotations.
package proposal

import "context"

// ServiceLine describes one selected service for the proposal prompt.
type ServiceLine struct {
	ServiceName    string
	SubServiceName string
	Quantity       int64
	Unit           string
	LineTotalCents int64
}

// Request carries the inquiry context the generator needs.
type Request struct {
	AgencyName    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Country       string
	Message       string
	Urgent        bool
	Services      []ServiceLine
	TotalCents    int64
}

// Result is the generated proposal.
type Result struct {
	// ProposalHTML is a self-contained HTML document fragment.
	ProposalHTML string
	// TotalCents echoes the estimate the proposal was built from.
	TotalCents int64
}

// Generator produces a proposal for an inquiry.
type Generator interface {
	Generate(ctx context.Context, req Request) (Result, error)
}

// NoopGenerator is used when no AI key is configured. It reports itself as
// unavailable so callers fall back to the standard email flow.
type NoopGenerator struct{}

// ErrDisabled is returned by NoopGenerator for every request.
type disabledError struct{}

func (disabledError) Error() string { return "proposal generation is disabled" }

// ErrDisabled signals that no generator is configured.
var ErrDisabled error = disabledError{}

func (NoopGenerator) Generate(ctx context.Context, req Request) (Result, error) {
	return Result{}, ErrDisabled
}

var _ Generator = NoopGenerator{}
