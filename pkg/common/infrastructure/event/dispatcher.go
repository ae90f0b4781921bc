package event

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"storefront/pkg/common/domain"
)

// Dispatcher records every domain event in the structured log under a fresh
// event ID.
type Dispatcher struct {
	logger *log.Entry
}

func NewDispatcher(logger *log.Entry) *Dispatcher {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Dispatcher{logger: logger}
}

func (d *Dispatcher) Dispatch(event domain.Event) error {
	d.logger.WithFields(log.Fields{
		"eventID":   uuid.NewString(),
		"eventType": event.Type(),
		"event":     event,
	}).Info("domain event")
	return nil
}
