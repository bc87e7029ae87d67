package buffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/exst/internal/buffer"
)

func TestPushPopNetZero(t *testing.T) {
	var b buffer.Buffer[int]
	b.Push(1)
	b.Push(2)
	b.Push(3)
	before := snapshot(&b)

	v, err := b.Pop()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	b.Push(v)

	assert.Equal(t, before, snapshot(&b))
	assert.Equal(t, uint(3), b.Here())
}

func TestPickRollNetZero(t *testing.T) {
	var b buffer.Buffer[int]
	b.Push(1)
	b.Push(2)
	b.Push(3)
	before := snapshot(&b)

	require.NoError(t, b.Pick(1))
	assert.Equal(t, []int{1, 2, 3, 2}, snapshot(&b))
	_, err := b.Pop()
	require.NoError(t, err)
	assert.Equal(t, before, snapshot(&b))
}

// RollTwiceIsNotIdentity encodes property 3: roll(n) applied twice to n+1
// items is not the identity for n>=2, but roll(0) and roll(1) applied twice
// are.
func TestRollTwiceIsNotIdentity(t *testing.T) {
	fresh := func() *buffer.Buffer[int] {
		var b buffer.Buffer[int]
		b.Push(1)
		b.Push(2)
		b.Push(3)
		return &b
	}

	b0 := fresh()
	require.NoError(t, b0.Roll(0))
	require.NoError(t, b0.Roll(0))
	assert.Equal(t, []int{1, 2, 3}, snapshot(b0))

	b1 := fresh()
	require.NoError(t, b1.Roll(1))
	require.NoError(t, b1.Roll(1))
	assert.Equal(t, []int{1, 2, 3}, snapshot(b1))

	b2 := fresh()
	require.NoError(t, b2.Roll(2))
	require.NoError(t, b2.Roll(2))
	assert.NotEqual(t, []int{1, 2, 3}, snapshot(b2))
}

func TestRollPreservesOrderOfOthers(t *testing.T) {
	var b buffer.Buffer[int]
	b.Push(1)
	b.Push(2)
	b.Push(3)
	b.Push(4)
	require.NoError(t, b.Roll(2))
	assert.Equal(t, []int{1, 3, 4, 2}, snapshot(&b))
}

func TestRollbackBoundaries(t *testing.T) {
	var b buffer.Buffer[int]
	b.Push(1)
	b.Push(2)
	b.Push(3)

	require.NoError(t, b.Rollback(b.Here()))
	assert.Equal(t, []int{1, 2, 3}, snapshot(&b))

	require.NoError(t, b.Rollback(0))
	assert.Equal(t, uint(0), b.Here())
	assert.Empty(t, snapshot(&b))

	assert.Error(t, b.Rollback(1))
}

func TestUnderflowErrors(t *testing.T) {
	var b buffer.Buffer[int]
	_, err := b.Pop()
	assert.Error(t, err)
	_, err = b.Peek()
	assert.Error(t, err)
	assert.Error(t, b.Remove(1))
}

func TestOutOfRangeErrors(t *testing.T) {
	var b buffer.Buffer[int]
	b.Push(1)
	_, err := b.Get(1)
	assert.Error(t, err)
	_, err = b.Set(5, 9)
	assert.Error(t, err)
}

func snapshot(b *buffer.Buffer[int]) []int {
	out := make([]int, b.Here())
	for i := range out {
		v, _ := b.Get(uint(i))
		out[i] = v
	}
	return out
}
