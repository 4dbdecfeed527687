package network

import (
	"sort"
	"sync"
)

type contacts struct {
	sync.RWMutex
	data map[int32]string
}

func (c *contacts) addresses(exclude int32) []string {
	c.RLock()
	ids := make([]int32, 0, len(c.data))
	for id := range c.data {
		if id != exclude {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	addrs := make([]string, len(ids))
	for i, id := range ids {
		addrs[i] = c.data[id]
	}
	c.RUnlock()
	return addrs
}

func (c *contacts) get(nodeID int32) string {
	c.RLock()
	addr := c.data[nodeID]
	c.RUnlock()
	return addr
}

func (c *contacts) set(nodeID int32, address string) {
	c.Lock()
	c.data[nodeID] = address
	c.Unlock()
}

func newContacts() *contacts {
	return &contacts{data: map[int32]string{}}
}
