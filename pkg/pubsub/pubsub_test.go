package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesSubscribers(t *testing.T) {
	ps := NewPubSub[string]()
	ch := ps.Subscribe("updates")

	ps.Publish("updates", "refresh")
	assert.Equal(t, "refresh", <-ch)
}

func TestPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	ps := NewPubSub[int]()
	_ = ps.Subscribe("updates")

	// nobody drains; both publishes must return
	ps.Publish("updates", 1)
	ps.Publish("updates", 2)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	ps := NewPubSub[int]()
	ch := ps.Subscribe("updates")
	ps.Unsubscribe("updates", ch)

	_, open := <-ch
	assert.False(t, open)

	ps.Publish("updates", 3)
}
