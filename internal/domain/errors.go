package domain

import "errors"

// Recoverable domain errors. Every one is surfaced to the submitting
// form for retry; none is fatal to the process.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIncompleteRoster   = errors.New("incomplete roster")
	ErrTiedSet            = errors.New("set scores cannot be tied")
	ErrNoMajorityWinner   = errors.New("no team won a majority of sets")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrPostNotFound       = errors.New("blog post not found")
	ErrNotPostAuthor      = errors.New("only the author can delete a post")
	ErrEventNotFound      = errors.New("calendar event not found")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrInvalidInput       = errors.New("invalid input")
)
