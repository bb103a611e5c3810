package operator

import (
	"context"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/kiosk-host/internal/host"
)

// Operator is the worker that processes call envelopes from the queue.
type Operator struct {
	host   *host.Host
	logger *logrus.Logger
	queue  chan Item
}

func NewOperator(h *host.Host, logger *logrus.Logger, queue chan Item) *Operator {
	return &Operator{
		host:   h,
		logger: logger,
		queue:  queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item Item) {
	if o.logger.IsLevelEnabled(logrus.DebugLevel) {
		o.logger.Debugf("Operator.processItem %s", spew.Sdump(item.request))
	}
	item.response <- o.host.Handle(item.ctx, item.request)
}

type Item struct {
	ctx      context.Context
	request  *host.Request
	response chan *host.Response
}
