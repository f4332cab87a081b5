package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TwinDots/tdcardsave/internal/model"
)

func TestSign(t *testing.T) {
	body := []byte(`{"amount":1999}`)
	key := "topsecret"

	tests := []struct {
		method model.HashMethod
		want   string
	}{
		{model.HashSHA1, "c2f73386ac399b8d705f9887b92c64efb010dfad"},
		{model.HashMD5, "4883d850641fb9d5b2b9f53e0266bcaf"},
		{model.HashHMACSHA1, "815981755ac96956df8395bbc3f757b9302589b9"},
		{model.HashHMACMD5, "37a69138f88a28d87f71ea26f644bcb3"},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			got, err := Sign(tt.method, key, body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("bad: unknown method is rejected", func(t *testing.T) {
		_, err := Sign(model.HashMethod("ROT13"), key, body)
		assert.Error(t, err)
	})

	t.Run("happy: signature depends on the body", func(t *testing.T) {
		a, err := Sign(model.HashHMACSHA1, key, []byte("one"))
		require.NoError(t, err)
		b, err := Sign(model.HashHMACSHA1, key, []byte("two"))
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}
