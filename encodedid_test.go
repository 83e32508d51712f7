// Copyright (c) 2025 Kasane-Logic contributors
// SPDX-License-Identifier: MIT

package voxtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodedIdEqual(t *testing.T) {
	id, err := NewSingleId(4, 2, 3, 5)
	require.NoError(t, err)
	a := id.ToEncodedId()
	b := id.ToEncodedId()
	assert.True(t, a.Equal(b))

	other, err := NewSingleId(4, 2, 3, 6)
	require.NoError(t, err)
	assert.False(t, a.Equal(other.ToEncodedId()))
}

func TestEncodedIdHashStableAndDiscriminating(t *testing.T) {
	id, err := NewSingleId(5, -1, 7, 9)
	require.NoError(t, err)
	enc := id.ToEncodedId()
	h1 := enc.Hash()
	h2 := enc.Hash()
	assert.Equal(t, h1, h2)

	other, err := NewSingleId(5, -1, 7, 10)
	require.NoError(t, err)
	assert.NotEqual(t, h1, other.ToEncodedId().Hash())
}
