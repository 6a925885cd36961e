package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetLastWriteWins(t *testing.T) {
	b := New()
	_, ok := b.Get(KeyMoney)
	assert.False(t, ok)

	b.Set(KeyMoney, 100)
	b.Set(KeyMoney, 80)
	assert.Equal(t, 80, b.GetInt(KeyMoney))
	assert.True(t, b.Has(KeyMoney))
}

func TestOnChangeIsSynchronous(t *testing.T) {
	b := New()
	var seen []Key
	b.OnChange(func(key Key, _ any) { seen = append(seen, key) })

	b.Set(KeyHint, "hello")
	require.Equal(t, []Key{KeyHint}, seen, "subscriber must run before Set returns")

	b.Set(KeyLocation, "Hall")
	assert.Equal(t, []Key{KeyHint, KeyLocation}, seen)
}

func TestSubscribeFiltersByKey(t *testing.T) {
	b := New()
	calls := 0
	var last any
	b.Subscribe(KeyMoney, func(_ Key, v any) {
		calls++
		last = v
	})

	b.Set(KeyHint, "x")
	b.Set(KeyMoney, 42)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 42, last)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	calls := 0
	off := b.OnChange(func(Key, any) { calls++ })
	b.Set(KeyHint, "a")
	off()
	b.Set(KeyHint, "b")
	assert.Equal(t, 1, calls)
}

func TestSubscriberMayUnsubscribeDuringNotify(t *testing.T) {
	b := New()
	var off func()
	calls := 0
	off = b.OnChange(func(Key, any) {
		calls++
		off()
	})
	other := 0
	b.OnChange(func(Key, any) { other++ })

	b.Set(KeyHint, "a")
	b.Set(KeyHint, "b")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
}

func TestTypedAccessors(t *testing.T) {
	b := New()
	b.Set(KeyTimeRemaining, 12.5)
	b.Set(KeyMovementLocked, true)
	b.Set(KeyLocation, "A")

	assert.Equal(t, 12.5, b.GetFloat(KeyTimeRemaining))
	assert.True(t, b.GetBool(KeyMovementLocked))
	assert.Equal(t, "A", b.GetString(KeyLocation))

	// wrong type reads as zero value
	assert.Equal(t, 0, b.GetInt(KeyLocation))
	_, ok := Value[[]string](b, KeyLocation)
	assert.False(t, ok)
}
