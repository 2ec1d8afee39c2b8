package kafka

import (
	"sync"
	"testing"
)

// Workers resolve partition locks concurrently, so the lazy map fills must
// be safe under contention and every (topic, partition) must keep mapping
// to the same lock.
func TestPartitionLockConcurrentResolution(t *testing.T) {
	c, err := NewConsumer(
		WithConsumerBrokers([]string{"localhost:9092"}),
		WithConsumerWorkers(4),
	)
	if err != nil {
		t.Fatalf("new consumer: %v", err)
	}

	topics := []string{"uk.energy.price-ticks", "uk.energy.carbon"}
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				c.getPartitionLock(topics[(w+i)%len(topics)], i%4)
			}
		}(w)
	}
	wg.Wait()

	if c.getPartitionLock("uk.energy.price-ticks", 0) != c.getPartitionLock("uk.energy.price-ticks", 0) {
		t.Fatalf("same topic and partition must resolve to one lock")
	}
	if c.getPartitionLock("uk.energy.price-ticks", 0) == c.getPartitionLock("uk.energy.price-ticks", 1) {
		t.Fatalf("different partitions must not share a lock")
	}
	if c.getPartitionLock("uk.energy.price-ticks", 0) == c.getPartitionLock("uk.energy.carbon", 0) {
		t.Fatalf("different topics must not share a lock")
	}
}
