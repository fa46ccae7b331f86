package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmer_SinglePromptAtATime(t *testing.T) {
	confirmer := NewConfirmer()

	require.NoError(t, confirmer.Show(Prompt{Title: "Delete property", Kind: PromptDanger}))
	err := confirmer.Show(Prompt{Title: "Cancel reservation"})
	require.Error(t, err)

	// The first prompt is still the live one.
	assert.Equal(t, "Delete property", confirmer.Active().Title)
}

func TestConfirmer_ConfirmRunsCallbackAndCloses(t *testing.T) {
	confirmer := NewConfirmer()

	ran := false
	require.NoError(t, confirmer.Show(Prompt{
		Title:     "Confirm reservation",
		Kind:      PromptSuccess,
		OnConfirm: func() { ran = true },
	}))

	confirmer.Confirm()

	assert.True(t, ran)
	assert.Nil(t, confirmer.Active())
}

func TestConfirmer_CancelSkipsCallback(t *testing.T) {
	confirmer := NewConfirmer()

	ran := false
	require.NoError(t, confirmer.Show(Prompt{
		Title:     "Delete user",
		Kind:      PromptDanger,
		OnConfirm: func() { ran = true },
	}))

	confirmer.Cancel()

	assert.False(t, ran)
	assert.Nil(t, confirmer.Active())

	// A new prompt can go live after the cancel.
	assert.NoError(t, confirmer.Show(Prompt{Title: "Next"}))
}

func TestConfirmer_DefaultsToInfoKind(t *testing.T) {
	confirmer := NewConfirmer()

	require.NoError(t, confirmer.Show(Prompt{Title: "Become a host"}))
	assert.Equal(t, PromptInfo, confirmer.Active().Kind)
}

func TestConfirmer_ConfirmWithoutPromptIsNoop(t *testing.T) {
	confirmer := NewConfirmer()
	confirmer.Confirm()
	confirmer.Cancel()
	assert.Nil(t, confirmer.Active())
}
