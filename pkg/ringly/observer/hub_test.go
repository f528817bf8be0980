package observer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifyDeliversToAllLiveSubscribersInOrder(t *testing.T) {
	h := NewHub[int]()
	var got []int
	h.Subscribe(func(v int) { got = append(got, v*10) })
	h.Subscribe(func(v int) { got = append(got, v*100) })

	h.Notify(1)

	assert.Equal(t, []int{10, 100}, got)
}

func TestUnsubscribeStopsFutureDelivery(t *testing.T) {
	h := NewHub[string]()
	var got []string
	handle := h.Subscribe(func(v string) { got = append(got, v) })

	h.Notify("first")
	h.Unsubscribe(handle)
	h.Notify("second")

	assert.Equal(t, []string{"first"}, got)
	assert.Equal(t, 0, h.Len())
}

func TestSubscribeDuringNotifyDoesNotReceiveThatEvent(t *testing.T) {
	h := NewHub[int]()
	var got []int
	h.Subscribe(func(v int) {
		got = append(got, v)
		h.Subscribe(func(v int) { got = append(got, -v) })
	})

	h.Notify(1)
	assert.Equal(t, []int{1}, got)

	h.Notify(2)
	assert.ElementsMatch(t, []int{1, 2, -2}, got)
}

func TestNotifyIsSafeForConcurrentSubscribersAndDispatch(t *testing.T) {
	h := NewHub[int]()
	var mu sync.Mutex
	sum := 0
	for i := 0; i < 20; i++ {
		h.Subscribe(func(v int) {
			mu.Lock()
			sum += v
			mu.Unlock()
		})
	}

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			h.Notify(v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20*55, sum)
}
