package dict_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/exst/internal/addr"
	"github.com/jcorbin/exst/internal/dict"
)

func TestCompleteRequiresReservation(t *testing.T) {
	var d dict.Dict
	err := d.Complete()
	assert.Error(t, err)
}

func TestFindAndGuessName(t *testing.T) {
	var d dict.Dict
	d.Reserve("foo", dict.Word{CodeEntry: addr.Code(10)})
	require.NoError(t, d.Complete())
	d.Reserve("bar", dict.Word{CodeEntry: addr.Code(20)})
	require.NoError(t, d.Complete())

	w, err := d.Find("foo")
	require.NoError(t, err)
	assert.Equal(t, addr.Code(10), w.CodeEntry)

	_, err = d.Find("baz")
	assert.Error(t, err)

	name, ok := d.GuessName(addr.Code(15))
	require.True(t, ok)
	assert.Equal(t, "foo", name)

	name, ok = d.GuessName(addr.Code(25))
	require.True(t, ok)
	assert.Equal(t, "bar", name)

	_, ok = d.GuessName(addr.Code(5))
	assert.False(t, ok)
}

func TestFindWithReservationSeesSelf(t *testing.T) {
	var d dict.Dict
	d.Reserve("recur", dict.Word{CodeEntry: addr.Code(1)})

	_, err := d.Find("recur")
	assert.Error(t, err, "uncommitted word must not be visible to plain Find")

	w, err := d.FindWithReservation("recur")
	require.NoError(t, err)
	assert.Equal(t, addr.Code(1), w.CodeEntry)
}

func TestLastWordMutators(t *testing.T) {
	var d dict.Dict
	d.Reserve("imm", dict.Word{CodeEntry: addr.Code(1)})
	d.LastWordChangeImmediate()
	d.LastWordSetDocument("docs")
	require.NoError(t, d.Complete())

	w, err := d.Find("imm")
	require.NoError(t, err)
	assert.True(t, w.Immediate)
	assert.Equal(t, "docs", w.Doc)
}

func TestReservationOverwritesPreviousOne(t *testing.T) {
	var d dict.Dict
	d.Reserve("a", dict.Word{CodeEntry: addr.Code(1)})
	d.Reserve("b", dict.Word{CodeEntry: addr.Code(2)})
	require.NoError(t, d.Complete())

	_, err := d.Find("a")
	assert.Error(t, err)
	w, err := d.Find("b")
	require.NoError(t, err)
	assert.Equal(t, addr.Code(2), w.CodeEntry)
}

func TestLocalPushFindClear(t *testing.T) {
	var l dict.Local
	rel0 := l.Push("x")
	rel1 := l.Push("y")
	assert.NotEqual(t, rel0, rel1)

	got, ok := l.Find("x")
	require.True(t, ok)
	assert.Equal(t, rel0, got)

	l.Clear()
	_, ok = l.Find("x")
	assert.False(t, ok)
}
