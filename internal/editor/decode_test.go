package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeActions(t *testing.T) {
	t.Run("wrapped document", func(t *testing.T) {
		actions, err := DecodeActions([]byte(`{"actions":[{"kind":"lock_channel","target":"general"}]}`))
		require.NoError(t, err)
		require.Len(t, actions, 1)
		assert.Equal(t, KindLockChannel, actions[0].Kind)
		assert.Equal(t, "general", actions[0].Target)
	})

	t.Run("bare array", func(t *testing.T) {
		actions, err := DecodeActions([]byte(`[{"kind":"rename_role","target":"Helpers","newName":"Guides"}]`))
		require.NoError(t, err)
		require.Len(t, actions, 1)
		assert.Equal(t, "Guides", actions[0].NewName)
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := DecodeActions([]byte(`not json`))
		assert.Error(t, err)
	})
}
