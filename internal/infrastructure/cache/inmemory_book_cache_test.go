package cache

import (
	"context"
	"testing"
	"time"

	"github.com/inmogest/backend/internal/domain/fiscal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBookCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss returns nil without error", func(t *testing.T) {
		c := NewInMemoryBookCache(time.Minute)

		book, err := c.GetBook(ctx, "vatbook:IVA_SOPORTADO:2024-Q1")

		assert.NoError(t, err)
		assert.Nil(t, book)
	})

	t.Run("stores and returns a book", func(t *testing.T) {
		c := NewInMemoryBookCache(time.Minute)
		stored := &fiscal.VATBookResult{BookType: fiscal.BookIVASoportado, Year: 2024}

		require.NoError(t, c.SetBook(ctx, "vatbook:IVA_SOPORTADO:2024-Q1", stored))

		book, err := c.GetBook(ctx, "vatbook:IVA_SOPORTADO:2024-Q1")
		assert.NoError(t, err)
		require.NotNil(t, book)
		assert.Equal(t, fiscal.BookIVASoportado, book.BookType)
		assert.Equal(t, 2024, book.Year)
	})

	t.Run("expired entries read as misses", func(t *testing.T) {
		c := NewInMemoryBookCache(-time.Second)

		require.NoError(t, c.SetBook(ctx, "k", &fiscal.VATBookResult{}))

		book, err := c.GetBook(ctx, "k")
		assert.NoError(t, err)
		assert.Nil(t, book)
	})

	t.Run("invalidate drops everything", func(t *testing.T) {
		c := NewInMemoryBookCache(time.Minute)
		require.NoError(t, c.SetBook(ctx, "a", &fiscal.VATBookResult{Year: 2023}))
		require.NoError(t, c.SetBook(ctx, "b", &fiscal.VATBookResult{Year: 2024}))

		require.NoError(t, c.InvalidateBooks(ctx))

		for _, key := range []string{"a", "b"} {
			book, err := c.GetBook(ctx, key)
			assert.NoError(t, err)
			assert.Nil(t, book)
		}
	})
}
