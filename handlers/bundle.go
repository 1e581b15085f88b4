package handlers

import (
	"patitas/services/user"
)

// HandlerBundle aggregates the HTTP handlers and the token cache the auth
// middleware checks against.
type HandlerBundle struct {
	User    *UserHandler
	Store   *StoreHandler
	Booking *BookingHandler
	Tokens  user.TokenCache
}
