package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/exst/internal/addr"
	"github.com/jcorbin/exst/internal/value"
)

type ext = struct{}

func TestZeroValueIsEmpty(t *testing.T) {
	var v value.Value[ext]
	assert.True(t, v.IsEmpty())
	assert.False(t, v.IsZero())
}

func TestIsZeroOnlyForIntZero(t *testing.T) {
	assert.True(t, value.NewInt[ext](0).IsZero())
	assert.False(t, value.NewInt[ext](1).IsZero())
	assert.False(t, value.NewStr[ext]("0").IsZero(), "Str(\"0\") must not inhibit Branch")
}

func TestAccessorsRejectWrongKind(t *testing.T) {
	v := value.NewInt[ext](5)
	_, ok := v.Str()
	assert.False(t, ok)
	_, ok = v.CodeAddress()
	assert.False(t, ok)

	i, ok := v.Int()
	assert.True(t, ok)
	assert.Equal(t, int32(5), i)
}

func TestCodeAddressRoundTrip(t *testing.T) {
	v := value.NewCodeAddress[ext](addr.Code(7))
	a, ok := v.CodeAddress()
	assert.True(t, ok)
	assert.Equal(t, addr.Code(7), a)
}

func TestExtensionRoundTrip(t *testing.T) {
	type payload struct{ N int }
	v := value.NewExtension[payload](payload{N: 3})
	p, ok := v.Extension()
	assert.True(t, ok)
	assert.Equal(t, 3, p.N)

	_, ok = v.Int()
	assert.False(t, ok)
}
