package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnavailableStorage(t *testing.T) {
	s := Unavailable()
	ctx := context.Background()

	_, err := s.Put(ctx, "notes/key", strings.NewReader("x"), PutObjectOptions{Size: 1})
	assert.ErrorIs(t, err, ErrUnavailable)

	rc, _, err := s.Get(ctx, "notes/key")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Nil(t, rc)

	assert.ErrorIs(t, s.Delete(ctx, "notes/key"), ErrUnavailable)

	u, err := s.PresignGet(ctx, "notes/key", time.Hour)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, u)
}
