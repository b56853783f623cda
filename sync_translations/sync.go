package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

type runState int

const (
	stateIdle runState = iota
	stateAuthorizing
	stateFetching
	stateReading
	stateTransforming
	stateWriting
	stateDone
	stateFailed
)

var runStates = map[runState]string{
	stateIdle:         "idle",
	stateAuthorizing:  "authorizing",
	stateFetching:     "fetching",
	stateReading:      "reading",
	stateTransforming: "transforming",
	stateWriting:      "writing",
	stateDone:         "done",
	stateFailed:       "failed",
}

func (s runState) String() string {
	return runStates[s]
}

// run is a single pull or push. Nothing is rolled back on failure: files written
// before the error stay written.
type run struct {
	name  string
	state runState
	log   *log.Entry
}

func newRun(name string) *run {
	return &run{
		name:  name,
		state: stateIdle,
		log:   log.WithField("run", name),
	}
}

func (r *run) enter(s runState) {
	r.state = s
	r.log.WithField("state", s).Debug("state changed")
}

func (r *run) finish(err error) error {
	if err != nil {
		r.enter(stateFailed)
		return fmt.Errorf("%s failed: %w", r.name, err)
	}
	r.enter(stateDone)
	return nil
}
