package resource_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/exst/internal/resource"
	"github.com/jcorbin/exst/internal/vmerr"
)

func TestStdinSigil(t *testing.T) {
	p := resource.NewStandard("", strings.NewReader("hello"), io.Discard, io.Discard, nil)
	s, err := p.GetString("%STDIN")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

func TestStringSigil(t *testing.T) {
	p := resource.NewStandard("", strings.NewReader(""), io.Discard, io.Discard, map[string]string{"$main": "1 2 +"})
	s, err := p.GetString("$main")
	require.NoError(t, err)
	assert.Equal(t, "1 2 +", s)
}

func TestStringSigilNotFound(t *testing.T) {
	p := resource.NewStandard("", strings.NewReader(""), io.Discard, io.Discard, nil)
	_, err := p.GetString("$missing")
	var want vmerr.ResourceNotFound
	assert.ErrorAs(t, err, &want)
}

func TestEnvSigil(t *testing.T) {
	t.Setenv("EXST_TEST_VAR", "value")
	p := resource.NewStandard("", strings.NewReader(""), io.Discard, io.Discard, nil)
	s, err := p.GetString("&EXST_TEST_VAR")
	require.NoError(t, err)
	assert.Equal(t, "value", s)
}

func TestSetStringSeedsResource(t *testing.T) {
	p := resource.NewStandard("", strings.NewReader(""), io.Discard, io.Discard, nil)
	p.SetString("$x", "seeded")
	s, err := p.GetString("$x")
	require.NoError(t, err)
	assert.Equal(t, "seeded", s)
}

func TestWriteStdoutStderr(t *testing.T) {
	var out, errOut strings.Builder
	p := resource.NewStandard("", strings.NewReader(""), &out, &errOut, nil)
	require.NoError(t, p.WriteStdout("hi"))
	require.NoError(t, p.WriteStderr("oops"))
	assert.Equal(t, "hi", out.String())
	assert.Equal(t, "oops", errOut.String())
}

func TestGetTokenIterator(t *testing.T) {
	p := resource.NewStandard("", strings.NewReader(""), io.Discard, io.Discard, map[string]string{"$main": "42"})
	rr, err := p.GetTokenIterator("$main")
	require.NoError(t, err)
	r, _, err := rr.ReadRune()
	require.NoError(t, err)
	assert.Equal(t, '4', r)
}
