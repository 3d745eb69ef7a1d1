package teams

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameMutexConcurrentAcquireRelease(t *testing.T) {
	names := []string{"alpha", "beta", "gamma", "delta"}

	// Each counter is only ever written under its name's mutex; if the
	// mutex map itself isn't safe for concurrent acquire/release the race
	// detector flags this test, and lost increments show up in the counts.
	counts := make([]int, len(names))

	const perName = 200

	var wg sync.WaitGroup
	for i := 0; i < perName*len(names); i++ {
		slot := i % len(names)
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_ = withNameMutex(names[slot], func() error {
				counts[slot]++
				return nil
			})
		}(slot)
	}

	wg.Wait()

	for slot := range names {
		assert.Equal(t, perName, counts[slot])
	}
}
