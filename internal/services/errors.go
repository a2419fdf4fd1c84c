package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the not-found / conflict / auth classes. Handlers map
// them to HTTP statuses with errors.Is. Owner-scoped lookups return the same
// not-found error whether the row is absent or belongs to someone else.
var (
	// ErrUserNotFound is returned when the acting user id does not resolve
	// to an existing user.
	ErrUserNotFound = errors.New("user not found")

	// ErrBookNotFound is returned when the referenced book is not in the
	// caller's library.
	ErrBookNotFound = errors.New("book not found in your library")

	// ErrGoalNotFound is returned when no goal matches both id and owner.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrClubNotFound is returned when no club matches the given slug.
	ErrClubNotFound = errors.New("club not found")

	// ErrPostNotFound is returned when the referenced post does not exist.
	ErrPostNotFound = errors.New("post not found")

	// ErrDuplicateLibraryEntry is returned when the (user, book) pair
	// already exists.
	ErrDuplicateLibraryEntry = errors.New("book already in your library")

	// ErrRatingNotAllowed is returned when a rating is set on a book whose
	// derived status is not "read".
	ErrRatingNotAllowed = errors.New("can only rate books with 'read' status")

	// ErrNotClubMember is returned when a non-member posts or reads a
	// member-only club surface.
	ErrNotClubMember = errors.New("must be a club member")

	// ErrUserExists is returned on registration when the username or email
	// is already taken.
	ErrUserExists = errors.New("username or email already taken")

	// ErrInvalidCredentials is returned on login failure. Unknown user and
	// wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError carries a user-correctable message for malformed, missing
// or out-of-range input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
