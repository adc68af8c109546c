package uuid

import (
	"github.com/google/uuid"
	"github.com/lukasz-zimnoch/dexly/history"
)

// IDService hands out random (version 4) identifiers for fetch runs. The
// same value keys the run log fields and the fetch_run archive row.
type IDService struct{}

func (ids *IDService) NewID() history.ID {
	return uuid.New()
}
