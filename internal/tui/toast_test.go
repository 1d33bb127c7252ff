package tui

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToastController_PushEvictsOldest(t *testing.T) {
	c := NewToastController()

	for i := range defaultMaxToasts + 2 {
		c.Push(Notice{Message: fmt.Sprint(i)})
	}

	notices := c.Notices()
	require.Len(t, notices, defaultMaxToasts)
	assert.Equal(t, "2", notices[0].Message)
}

func TestToastController_TickRemovesExpired(t *testing.T) {
	c := NewToastController()
	c.Push(Notice{Message: "expires"})
	c.Push(Notice{Message: "survives"})

	c.toasts[0].remaining = 50 * time.Millisecond
	c.Tick(100 * time.Millisecond)

	require.Len(t, c.Notices(), 1)
	assert.Equal(t, "survives", c.Notices()[0].Message)
	assert.Equal(t, defaultToastTTL-100*time.Millisecond, c.toasts[0].remaining)
}

func TestToastController_Ticking(t *testing.T) {
	c := NewToastController()
	assert.Nil(t, c.StartTicking(), "nothing to tick")

	c.Push(Notice{Message: "hi"})
	require.NotNil(t, c.StartTicking())
	assert.Nil(t, c.StartTicking(), "already ticking")

	c.toasts[0].remaining = toastTickInterval
	assert.Nil(t, c.HandleTick())
	assert.False(t, c.HasToasts())
	assert.False(t, c.ticking)
}

func TestToastController_Dismiss(t *testing.T) {
	c := NewToastController()
	c.Push(Notice{Message: "a"})
	c.Push(Notice{Message: "b"})

	c.Dismiss()
	require.Len(t, c.Notices(), 1)
	assert.Equal(t, "a", c.Notices()[0].Message)
}

func TestToastController_View(t *testing.T) {
	c := NewToastController()
	assert.Empty(t, c.View())
	assert.Equal(t, "bg", c.Overlay("bg", 80, 24))

	c.Push(Notice{Level: LevelError, Message: "save failed"})
	c.Push(Notice{Level: LevelInfo, Message: "saved"})

	view := c.View()
	assert.Contains(t, view, "✘ save failed")
	assert.Contains(t, view, "✔ saved")
}
