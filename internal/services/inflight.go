package services

import (
	"errors"
	"sync"

	model "taskdesk.com/taskdesk/pkg/models"
)

// ErrRecordBusy is returned when a mutation is started on a task that
// already has one outstanding.
var ErrRecordBusy = errors.New("another change to this task is still in progress")

type inFlight struct {
	ids sync.Map
}

func (f *inFlight) track(id model.ID) bool {
	_, loaded := f.ids.LoadOrStore(id, struct{}{})
	return !loaded
}

func (f *inFlight) untrack(id model.ID) {
	f.ids.Delete(id)
}

func (f *inFlight) busy(id model.ID) bool {
	_, ok := f.ids.Load(id)
	return ok
}
