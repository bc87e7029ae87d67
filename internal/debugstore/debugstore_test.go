package debugstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/exst/internal/addr"
	"github.com/jcorbin/exst/internal/debugstore"
)

func TestRecordAndLookup(t *testing.T) {
	var s debugstore.Store
	s.Record(addr.Code(3), debugstore.Coord{Line: 1, Column: 2})

	c, ok := s.Lookup(addr.Code(3))
	require.True(t, ok)
	assert.Equal(t, 1, c.Line)
	assert.Equal(t, 2, c.Column)

	_, ok = s.Lookup(addr.Code(99))
	assert.False(t, ok)
}

func TestScriptChain(t *testing.T) {
	var s debugstore.Store
	main := s.InternScript("main.ex")
	util := s.InternScript("util.ex")

	s.PushScript(main)
	s.PushScript(util)
	assert.Equal(t, "main.ex > util.ex", s.ChainString())
	assert.Equal(t, []int{main, util}, s.Chain())

	s.PopScript()
	assert.Equal(t, "main.ex", s.ChainString())

	s.PopScript()
	assert.Equal(t, "", s.ChainString())

	s.PopScript() // popping past empty must not panic
	assert.Equal(t, "", s.ChainString())
}

func TestScriptNameForUnknownHandle(t *testing.T) {
	var s debugstore.Store
	assert.Equal(t, "", s.ScriptName(42))
}
