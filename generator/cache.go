package generator

import (
	"sync"

	datacontract "github.com/aws/smithy-datacontract"
)

// writerCache maps contracts to the outcome of generating their writer.
// Entries are never replaced once stored.
type writerCache struct {
	cache sync.Map
}

type cachedWriter struct {
	proc Procedure
	err  error
}

func (c *writerCache) Load(contract *datacontract.Contract) (*cachedWriter, bool) {
	if v, ok := c.cache.Load(contract); ok {
		return v.(*cachedWriter), true
	}
	return nil, false
}

func (c *writerCache) LoadOrStore(contract *datacontract.Contract, w *cachedWriter) (*cachedWriter, bool) {
	v, ok := c.cache.LoadOrStore(contract, w)
	return v.(*cachedWriter), ok
}
