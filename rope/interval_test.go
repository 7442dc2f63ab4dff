package rope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterval(t *testing.T) {
	assert := assert.New(t)

	iv := IV(2, 5)
	assert.Equal(3, iv.Len())
	assert.False(iv.IsEmpty())
	assert.True(IV(4, 4).IsEmpty())
	assert.Equal("[2, 5)", iv.String())

	assert.True(iv.Contains(2))
	assert.True(iv.Contains(4))
	assert.False(iv.Contains(5))
	assert.False(iv.Contains(1))

	assert.Equal(IV(3, 5), iv.Intersection(IV(3, 9)))
	assert.Equal(IV(2, 5), iv.Intersection(IV(0, 10)))
	assert.True(iv.Intersection(IV(7, 9)).IsEmpty())
	assert.True(iv.Intersection(IV(0, 1)).IsEmpty())

	assert.ErrorIs(IV(0, 6).within(5), ErrIndexOutOfBounds)
	assert.NoError(IV(5, 5).within(5))
}
