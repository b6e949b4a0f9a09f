// Package inbound defines the interfaces for inbound ports: the
// operations the outside world drives the application through.
package inbound

import "context"

// ChatService answers a conversational cooking request: it ranks the
// catalog against the current pantry and grounds a generation call on
// the evidence. The reply is always a user-facing string; "no feasible
// recipe" is a valid reply, not an error.
type ChatService interface {
	Chat(ctx context.Context, userInput string) (string, error)
}
