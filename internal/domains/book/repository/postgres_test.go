package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wookie-books-backend/internal/domains/book"
)

func strPtr(s string) *string                   { return &s }
func boolPtr(b bool) *bool                      { return &b }
func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestBuildWhereClauseEmptyFilter(t *testing.T) {
	clause, args := buildWhereClause(book.Filter{})

	// No predicates means no WHERE at all: the listing returns every
	// row, unpublished ones included.
	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestBuildWhereClauseSinglePredicates(t *testing.T) {
	tests := []struct {
		name   string
		filter book.Filter
		clause string
		args   []interface{}
	}{
		{
			name:   "title substring",
			filter: book.Filter{Title: strPtr("Hyperdrive")},
			clause: "WHERE b.title LIKE $1",
			args:   []interface{}{"%Hyperdrive%"},
		},
		{
			name:   "author pseudonym substring",
			filter: book.Filter{AuthorPseudonym: strPtr("Wookiee")},
			clause: "WHERE (b.author_id IS NOT NULL AND u.author_pseudonym LIKE $1)",
			args:   []interface{}{"%Wookiee%"},
		},
		{
			name:   "published true",
			filter: book.Filter{Published: boolPtr(true)},
			clause: "WHERE b.published = $1",
			args:   []interface{}{true},
		},
		{
			name:   "published false",
			filter: book.Filter{Published: boolPtr(false)},
			clause: "WHERE b.published = $1",
			args:   []interface{}{false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := buildWhereClause(tt.filter)
			assert.Equal(t, tt.clause, clause)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestBuildWhereClausePriceWindow(t *testing.T) {
	min := decimal.NewFromInt(10)
	max := decimal.NewFromInt(50)

	t.Run("both bounds", func(t *testing.T) {
		clause, args := buildWhereClause(book.Filter{
			MinPrice: decPtr(min),
			MaxPrice: decPtr(max),
		})
		assert.Equal(t, "WHERE b.price >= $1 AND b.price <= $2", clause)
		require.Len(t, args, 2)
		assert.True(t, args[0].(decimal.Decimal).Equal(min))
		assert.True(t, args[1].(decimal.Decimal).Equal(max))
	})

	// A single bound is not a window; it is ignored entirely.
	t.Run("min only", func(t *testing.T) {
		clause, args := buildWhereClause(book.Filter{MinPrice: decPtr(min)})
		assert.Empty(t, clause)
		assert.Nil(t, args)
	})

	t.Run("max only", func(t *testing.T) {
		clause, args := buildWhereClause(book.Filter{MaxPrice: decPtr(max)})
		assert.Empty(t, clause)
		assert.Nil(t, args)
	})
}

func TestBuildWhereClauseConjunction(t *testing.T) {
	min := decimal.NewFromInt(5)
	max := decimal.NewFromInt(25)

	clause, args := buildWhereClause(book.Filter{
		Title:           strPtr("Guide"),
		AuthorPseudonym: strPtr("Wookiee"),
		Published:       boolPtr(true),
		MinPrice:        decPtr(min),
		MaxPrice:        decPtr(max),
	})

	assert.Equal(t,
		"WHERE b.title LIKE $1 AND (b.author_id IS NOT NULL AND u.author_pseudonym LIKE $2)"+
			" AND b.published = $3 AND b.price >= $4 AND b.price <= $5",
		clause,
	)
	require.Len(t, args, 5)
	assert.Equal(t, "%Guide%", args[0])
	assert.Equal(t, "%Wookiee%", args[1])
	assert.Equal(t, true, args[2])
}
