package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{}, SplitList(""))
	assert.Equal(t, []string{}, SplitList(" , "))
	assert.Equal(t, []string{"all", "mocks"}, SplitList("all, mocks,"))
}

func TestIntersects(t *testing.T) {
	assert.True(t, Intersects([]string{"all", "mocks"}, []string{"mocks"}))
	assert.False(t, Intersects([]string{"all", "mocks"}, []string{"frontend"}))
	assert.False(t, Intersects(nil, []string{"all"}))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("RAFFLE_TEST_FLAG", "true")
	v, ok := GetEnvBool("RAFFLE_TEST_FLAG")
	assert.True(t, ok)
	assert.True(t, v)

	_, ok = GetEnvBool("RAFFLE_TEST_FLAG_UNSET")
	assert.False(t, ok)
}
