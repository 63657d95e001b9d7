package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewULID(t *testing.T) {
	a := NewULID()
	b := NewULID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.True(t, IsULID(a))
}

func TestIsULID(t *testing.T) {
	assert.True(t, IsULID("01HGZ8VNRYXS8QKNJV5GRWPWDQ"))
	assert.False(t, IsULID(""))
	assert.False(t, IsULID("not-a-ulid"))
	assert.False(t, IsULID("01HGZ8VNRYXS8QKNJV5GRWPWDU")) // U is outside Crockford base32
}

func TestSHA256Hex(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", SHA256Hex(""))
	assert.Equal(t, SHA256Hex("The sky is blue."), SHA256Hex("The sky is blue."))
	assert.NotEqual(t, SHA256Hex("a"), SHA256Hex("b"))
}

func TestNullStringHelpers(t *testing.T) {
	assert.False(t, NullStringFromPtr(nil).Valid)
	assert.Nil(t, PtrFromNullString(NullStringFromPtr(nil)))

	empty := ""
	ns := NullStringFromPtr(&empty)
	assert.True(t, ns.Valid)
	if assert.NotNil(t, PtrFromNullString(ns)) {
		assert.Equal(t, "", *PtrFromNullString(ns))
	}

	v := "Paris"
	assert.Equal(t, "Paris", *PtrFromNullString(NullStringFromPtr(&v)))
}
