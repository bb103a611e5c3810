package operator

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/kiosk-host/internal/host"
)

// Delegator manages the queue, starts/stops Operators (workers), and
// enqueues call envelopes. Callers suspend only at this boundary; once a
// worker picks an envelope up the host processes it without blocking.
type Delegator struct {
	host       *host.Host
	logger     *logrus.Logger
	queue      chan Item
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

func NewDelegator(h *host.Host, logger *logrus.Logger, numWorkers int) *Delegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Delegator{
		host:       h,
		logger:     logger,
		queue:      make(chan Item, 1000),
		numWorkers: numWorkers,
	}
}

func (d *Delegator) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.host, d.logger, d.queue)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

func (d *Delegator) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}

// Process enqueues one envelope and waits for its response envelope. The
// caller's context is only honoured while waiting; a ledger call is never
// cancelled mid-operation.
func (d *Delegator) Process(ctx context.Context, req *host.Request) (*host.Response, error) {
	respCh := make(chan *host.Response, 1)
	item := Item{
		ctx:      ctx,
		request:  req,
		response: respCh,
	}

	d.queue <- item

	select {
	case resp := <-respCh:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
