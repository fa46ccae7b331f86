package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToastCenter_InsertionOrderAndDuplicates(t *testing.T) {
	center := NewToastCenter(WithTTL(time.Minute))

	center.Success("reservation confirmed")
	center.Error("something went wrong")
	center.Success("reservation confirmed")

	active := center.Active()
	require.Len(t, active, 3)
	assert.Equal(t, "reservation confirmed", active[0].Message)
	assert.Equal(t, ToastSuccess, active[0].Kind)
	assert.Equal(t, ToastError, active[1].Kind)
	assert.Equal(t, active[0].Message, active[2].Message)
	assert.NotEqual(t, active[0].ID, active[2].ID, "identical messages stay distinct entries")
}

func TestToastCenter_AutoExpiry(t *testing.T) {
	center := NewToastCenter(WithTTL(20 * time.Millisecond))

	center.Info("saved")
	require.Len(t, center.Active(), 1)

	assert.Eventually(t, func() bool {
		return len(center.Active()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestToastCenter_ManualDismiss(t *testing.T) {
	center := NewToastCenter(WithTTL(time.Minute))

	first := center.Success("one")
	center.Success("two")

	center.Dismiss(first)

	active := center.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "two", active[0].Message)
}

func TestToastCenter_DismissUnknownID(t *testing.T) {
	center := NewToastCenter(WithTTL(time.Minute))
	center.Success("one")

	center.Dismiss("no-such-id")
	assert.Len(t, center.Active(), 1)
}

func TestToastCenter_ListenerReceivesEveryToast(t *testing.T) {
	var seen []Toast
	center := NewToastCenter(
		WithTTL(time.Minute),
		WithListener(func(toast Toast) { seen = append(seen, toast) }),
	)

	center.Success("ok")
	center.Warning("careful")

	require.Len(t, seen, 2)
	assert.Equal(t, ToastSuccess, seen[0].Kind)
	assert.Equal(t, ToastWarning, seen[1].Kind)
}
