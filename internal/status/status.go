package status

import "errors"

var (
	ErrOrderNotFound      = errors.New("payment: order not found")
	ErrInvalidTransition  = errors.New("payment: invalid status transition")
	ErrTerminalState      = errors.New("payment: order is in a terminal state")
	ErrTransitionInFlight = errors.New("payment: another transition is in flight")
	ErrUpstreamPending    = errors.New("payment: upstream payment not settled yet")
	ErrNotMember          = errors.New("card: person is not a member")
	ErrTokenNotFound      = errors.New("token: access token not found")
)
