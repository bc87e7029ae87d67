package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/exst/internal/addr"
	"github.com/jcorbin/exst/internal/compiler"
	"github.com/jcorbin/exst/internal/dict"
	"github.com/jcorbin/exst/internal/token"
	"github.com/jcorbin/exst/internal/value"
)

type ext = struct{}

func TestCompileIntLiteral(t *testing.T) {
	var locals dict.Local
	var words dict.Dict
	ins, immediate, err := compiler.Compile[ext](token.Token{Kind: token.KindInt, Int: 42}, &locals, &words, false)
	require.NoError(t, err)
	assert.False(t, immediate)
	assert.Equal(t, value.Push, ins.Kind)
	n, ok := ins.Value.Int()
	require.True(t, ok)
	assert.Equal(t, int32(42), n)
}

func TestCompileStringLiteral(t *testing.T) {
	var locals dict.Local
	var words dict.Dict
	ins, _, err := compiler.Compile[ext](token.Token{Kind: token.KindString, Str: "hi"}, &locals, &words, false)
	require.NoError(t, err)
	s, ok := ins.Value.Str()
	require.True(t, ok)
	assert.Equal(t, "hi", s)
}

func TestCompileLocalRef(t *testing.T) {
	var locals dict.Local
	var words dict.Dict
	rel := locals.Push("x")

	ins, immediate, err := compiler.Compile[ext](token.Token{Kind: token.KindSymbol, Str: "x"}, &locals, &words, false)
	require.NoError(t, err)
	assert.False(t, immediate)
	assert.Equal(t, value.LocalRef, ins.Kind)
	assert.Equal(t, rel, ins.Local)
}

func TestCompileCallToCommittedWord(t *testing.T) {
	var locals dict.Local
	var words dict.Dict
	words.Reserve("foo", dict.Word{CodeEntry: addr.Code(3), Immediate: true})
	require.NoError(t, words.Complete())

	ins, immediate, err := compiler.Compile[ext](token.Token{Kind: token.KindSymbol, Str: "foo"}, &locals, &words, false)
	require.NoError(t, err)
	assert.True(t, immediate)
	assert.Equal(t, value.Call, ins.Kind)
	assert.Equal(t, addr.Code(3), ins.Code)
}

func TestCompileUndefinedWordErrors(t *testing.T) {
	var locals dict.Local
	var words dict.Dict
	_, _, err := compiler.Compile[ext](token.Token{Kind: token.KindSymbol, Str: "missing"}, &locals, &words, false)
	assert.Error(t, err)
}

func TestCompileRecursibleSeesReservation(t *testing.T) {
	var locals dict.Local
	var words dict.Dict
	words.Reserve("self", dict.Word{CodeEntry: addr.Code(9)})

	_, _, err := compiler.Compile[ext](token.Token{Kind: token.KindSymbol, Str: "self"}, &locals, &words, false)
	assert.Error(t, err, "non-recursible compile must not see the reservation")

	ins, _, err := compiler.Compile[ext](token.Token{Kind: token.KindSymbol, Str: "self"}, &locals, &words, true)
	require.NoError(t, err)
	assert.Equal(t, addr.Code(9), ins.Code)
}
