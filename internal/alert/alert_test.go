package alert

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChannel_ShowAndAutoHide(t *testing.T) {
	c := NewChannel(30*time.Millisecond, nil)

	c.Show(context.Background(), "trade registered", KindSuccess)
	state := c.Current()
	assert.True(t, state.Visible)
	assert.Equal(t, "trade registered", state.Message)
	assert.Equal(t, KindSuccess, state.Kind)

	time.Sleep(80 * time.Millisecond)
	assert.False(t, c.Current().Visible)
	assert.Empty(t, c.Current().Message)
}

func TestChannel_NewShowPreemptsAndRestartsTimer(t *testing.T) {
	c := NewChannel(60*time.Millisecond, nil)

	c.Show(context.Background(), "first", KindSuccess)
	time.Sleep(40 * time.Millisecond)
	c.Show(context.Background(), "second", KindError)

	// The first alert's timer would have fired around now; the second
	// alert must survive it and stay visible for its own full TTL.
	time.Sleep(40 * time.Millisecond)
	state := c.Current()
	assert.True(t, state.Visible)
	assert.Equal(t, "second", state.Message)
	assert.Equal(t, KindError, state.Kind)

	time.Sleep(60 * time.Millisecond)
	assert.False(t, c.Current().Visible)
}

func TestChannel_RapidShowsLeaveOneVisibleAlert(t *testing.T) {
	c := NewChannel(40*time.Millisecond, nil)

	for i := 0; i < 10; i++ {
		c.Show(context.Background(), "msg", KindSuccess)
	}
	assert.True(t, c.Current().Visible)

	time.Sleep(100 * time.Millisecond)
	assert.False(t, c.Current().Visible)
}

func TestChannel_DefaultTTL(t *testing.T) {
	c := NewChannel(0, nil)
	assert.Equal(t, DefaultTTL, c.ttl)
}
