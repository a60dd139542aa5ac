package loading

import "sync/atomic"

// IDAllocator hands out shipment ids for one Load call.
type IDAllocator struct {
	next atomic.Int64
}

// Reserve returns the first id of a block of n consecutive ids.
func (a *IDAllocator) Reserve(n int) int64 {
	return a.next.Add(int64(n)) - int64(n) + 1
}

// idBlock is a private range handed to one trial fill.
type idBlock struct {
	next, end int64
}

func (b *idBlock) take() int64 {
	if b.next >= b.end {
		panic("loading: id block exhausted")
	}
	id := b.next
	b.next++
	return id
}
