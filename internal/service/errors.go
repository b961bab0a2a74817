package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Authentication Errors =====
var (
	ErrMissingAuthCode = errors.New("authorization code is required")
	ErrUpstreamAuth    = errors.New("identity provider request failed")
	ErrInvalidSession  = errors.New("invalid or expired session token")
	ErrGuildNotAllowed = errors.New("no authorized guild membership")
)

// ===== Event Errors =====
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrCannotCreateEvents = errors.New("not authorized to create events")
	ErrRoleRequired       = errors.New("missing a required role for this event")
)

// ===== Crafting Errors =====
var (
	ErrCraftRequestNotFound  = errors.New("craft request not found")
	ErrRequestAlreadyClaimed = errors.New("craft request already claimed")
	ErrRequestNotAccepted    = errors.New("craft request has not been accepted")
	ErrRequestClosed         = errors.New("craft request is already closed")
	ErrNotRequestParticipant = errors.New("not the requester or assigned crafter")
	ErrItemNameRequired      = errors.New("item name is required")
	ErrQuantityInvalid       = errors.New("quantity must be at least 1")
	ErrLocationRequired      = errors.New("location is required")
)
