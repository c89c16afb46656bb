package book

import "errors"

var (
	ErrBookNotFound = errors.New("book not found")

	// ErrNotBookOwner: identity is known, mutation is allowed in
	// general, but not on this particular book.
	ErrNotBookOwner = errors.New("you are not the author of this book")

	// ErrAuthorForbidden: the forbidden-author rule.
	ErrAuthorForbidden = errors.New("this author is not allowed to publish books")

	ErrUnsupportedCoverType = errors.New("unsupported cover image type")
)
