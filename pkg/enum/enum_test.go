package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToEnum(t *testing.T) {
	type Fruit string

	apple := New(Fruit("apple"))
	require.Equal(t, Fruit("apple"), apple)

	v, err := ToEnum[Fruit]("apple")
	require.NoError(t, err)
	require.Equal(t, apple, v)

	_, err = ToEnum[Fruit]("banana")
	require.Error(t, err)

	// Values of another type never leak between registries.
	type Color string
	New(Color("red"))
	_, err = ToEnum[Fruit]("red")
	require.Error(t, err)
}
