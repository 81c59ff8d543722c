package fn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnyAll(t *testing.T) {
	t.Parallel()

	xs := []string{"FOO", "BAR", "baz"}

	require.True(t, Any(xs, func(s string) bool {
		return s == "BAR"
	}))
	require.False(t, Any(nil, func(s string) bool {
		return true
	}))

	upper := func(s string) bool {
		return s == strings.ToUpper(s)
	}
	require.False(t, All(xs, upper))
	require.True(t, All(xs[:2], upper))
	require.True(t, All(nil, upper))
}

func TestMapFilter(t *testing.T) {
	t.Parallel()

	xs := []int{1, 2, 3, 4}

	doubled := Map(xs, func(x int) int { return x * 2 })
	require.Equal(t, []int{2, 4, 6, 8}, doubled)

	even := Filter(xs, func(x int) bool { return x%2 == 0 })
	require.Equal(t, []int{2, 4}, even)

	require.Nil(t, Filter(xs, func(x int) bool { return x > 4 }))
}
