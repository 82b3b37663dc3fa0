package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestVirtual_RunsInDueOrder(t *testing.T) {
	v := NewVirtual(epoch)
	var got []string
	v.AfterFunc(300*time.Millisecond, func() { got = append(got, "c") })
	v.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
	v.AfterFunc(200*time.Millisecond, func() { got = append(got, "b") })

	v.Advance(250 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, epoch.Add(250*time.Millisecond), v.Now())

	v.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, v.Pending())
}

func TestVirtual_SameInstantKeepsArmingOrder(t *testing.T) {
	v := NewVirtual(epoch)
	var got []int
	for i := 0; i < 5; i++ {
		v.AfterFunc(time.Second, func() { got = append(got, i) })
	}
	v.Advance(time.Second)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestVirtual_NowInsideCallback(t *testing.T) {
	v := NewVirtual(epoch)
	var at time.Time
	v.AfterFunc(400*time.Millisecond, func() { at = v.Now() })
	v.Advance(time.Second)
	assert.Equal(t, epoch.Add(400*time.Millisecond), at)
}

func TestVirtual_ChainedCallbacksWithinWindow(t *testing.T) {
	v := NewVirtual(epoch)
	count := 0
	var tick func()
	tick = func() {
		count++
		v.AfterFunc(100*time.Millisecond, tick)
	}
	v.AfterFunc(100*time.Millisecond, tick)

	v.Advance(time.Second)
	assert.Equal(t, 10, count)
	assert.Equal(t, 1, v.Pending())
}

func TestVirtual_Stop(t *testing.T) {
	v := NewVirtual(epoch)
	ran := false
	tm := v.AfterFunc(time.Second, func() { ran = true })
	require.Equal(t, 1, v.Pending())

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	assert.Equal(t, 0, v.Pending())

	v.Advance(2 * time.Second)
	assert.False(t, ran)
}

func TestVirtual_StopAfterRun(t *testing.T) {
	v := NewVirtual(epoch)
	tm := v.AfterFunc(time.Millisecond, func() {})
	v.Advance(time.Millisecond)
	assert.False(t, tm.Stop())
}

func TestVirtual_StopFromSiblingCallback(t *testing.T) {
	v := NewVirtual(epoch)
	ran := false
	var second Timer
	v.AfterFunc(time.Second, func() { second.Stop() })
	second = v.AfterFunc(time.Second, func() { ran = true })

	v.Advance(time.Second)
	assert.False(t, ran)
}
