package chip8

import (
	"sync"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTimersSaturate(t *testing.T) {
	var timers Timers

	timers.Tick()
	assert.Equal(t, byte(0), timers.Delay())
	assert.Equal(t, byte(0), timers.Sound())

	timers.SetDelay(2)
	timers.SetSound(1)
	timers.Tick()
	assert.Equal(t, byte(1), timers.Delay())
	assert.Equal(t, byte(0), timers.Sound())

	timers.Tick()
	timers.Tick()
	assert.Equal(t, byte(0), timers.Delay())

	timers.SetSound(5)
	timers.Reset()
	assert.Equal(t, byte(0), timers.Sound())
}

func TestTimersConcurrentTick(t *testing.T) {
	var timers Timers
	var wg sync.WaitGroup

	timers.SetDelay(200)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < 25; j++ {
				timers.Tick()
				_ = timers.Delay()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, byte(100), timers.Delay())
}
