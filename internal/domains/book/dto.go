package book

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// CreateBookRequest creates a new book owned by the authenticated user.
// There is no author field: the author always comes from the token.
type CreateBookRequest struct {
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	CoverImage  *string         `json:"cover_image,omitempty"`
	Price       decimal.Decimal `json:"price"`
	// Published defaults to true when absent.
	Published *bool `json:"published,omitempty"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 5000),
		),
	)
}

// UpdateBookRequest is a partial update; nil fields stay untouched.
// The author is not mutable through this path.
type UpdateBookRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	CoverImage  *string          `json:"cover_image,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Published   *bool            `json:"published,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 5000),
		),
	)
}

// Filter composes the public listing predicates. Each predicate is
// applied only when its field is set; with no fields set the listing
// returns every row, published or not.
type Filter struct {
	Title           *string
	AuthorPseudonym *string
	Published       *bool

	// The price window applies only when both bounds are present;
	// a single bound is ignored.
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// HasPriceRange reports whether both bounds are set.
func (f Filter) HasPriceRange() bool {
	return f.MinPrice != nil && f.MaxPrice != nil
}

// Empty reports whether no predicate is set.
func (f Filter) Empty() bool {
	return f.Title == nil && f.AuthorPseudonym == nil && f.Published == nil &&
		f.MinPrice == nil && f.MaxPrice == nil
}
