package core

// Messages carried by user-facing auth/connect failure events. Matched
// by web clients, so the exact strings are part of the protocol.
const (
	msgUserExists       = "User exists."
	msgUserNotFound     = "User not found."
	msgWrongPassword    = "Wrong password"
	msgServerNotAllowed = "Server not allowed. Server name should be in: "
)
