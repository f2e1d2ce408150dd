package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvString(t *testing.T) {
	t.Setenv("WAITLIST_TEST_VALUE", "  waitlist  ")
	assert.Equal(t, "waitlist", EnvString("WAITLIST_TEST_VALUE", "fallback"))

	t.Setenv("WAITLIST_TEST_VALUE", "   ")
	assert.Equal(t, "fallback", EnvString("WAITLIST_TEST_VALUE", "fallback"))
}

func TestEnvBool(t *testing.T) {
	cases := []struct {
		raw      string
		fallback bool
		want     bool
	}{
		{"", true, true},
		{"false", true, false},
		{" TRUE ", false, true},
		{"0", true, false},
		{"maybe", true, true},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			t.Setenv("WAITLIST_TEST_BOOL", tc.raw)
			assert.Equal(t, tc.want, EnvBool("WAITLIST_TEST_BOOL", tc.fallback))
		})
	}
}

func TestEnvPositiveNumbers(t *testing.T) {
	t.Setenv("WAITLIST_TEST_INT", " 3 ")
	assert.Equal(t, 3, EnvPositiveInt("WAITLIST_TEST_INT", 5))
	assert.Equal(t, int64(3), EnvPositiveInt64("WAITLIST_TEST_INT", 5))

	for _, raw := range []string{"0", "-2", "many", ""} {
		t.Setenv("WAITLIST_TEST_INT", raw)
		assert.Equal(t, 5, EnvPositiveInt("WAITLIST_TEST_INT", 5), raw)
		assert.Equal(t, int64(5), EnvPositiveInt64("WAITLIST_TEST_INT", 5), raw)
	}
}

func TestEnvPositiveDuration(t *testing.T) {
	t.Setenv("WAITLIST_TEST_DURATION", "5s")
	assert.Equal(t, 5*time.Second, EnvPositiveDuration("WAITLIST_TEST_DURATION", time.Minute))

	t.Setenv("WAITLIST_TEST_DURATION", "-1s")
	assert.Equal(t, time.Minute, EnvPositiveDuration("WAITLIST_TEST_DURATION", time.Minute))

	t.Setenv("WAITLIST_TEST_DURATION", "soon")
	assert.Equal(t, time.Minute, EnvPositiveDuration("WAITLIST_TEST_DURATION", time.Minute))
}

func TestEnvRatio(t *testing.T) {
	t.Setenv("WAITLIST_TEST_RATIO", "0.25")
	assert.Equal(t, 0.25, EnvRatio("WAITLIST_TEST_RATIO", 0))

	for _, raw := range []string{"2", "-0.1", "abc", ""} {
		t.Setenv("WAITLIST_TEST_RATIO", raw)
		assert.Equal(t, 0.1, EnvRatio("WAITLIST_TEST_RATIO", 0.1), raw)
	}
}

func TestEnvList(t *testing.T) {
	t.Setenv("WAITLIST_TEST_LIST", " a.example.com, ,b.example.com ")
	assert.Equal(t, []string{"a.example.com", "b.example.com"}, EnvList("WAITLIST_TEST_LIST"))

	t.Setenv("WAITLIST_TEST_LIST", " , ")
	assert.Nil(t, EnvList("WAITLIST_TEST_LIST"))
}
