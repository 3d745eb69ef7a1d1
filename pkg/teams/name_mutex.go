package teams

import (
	"sync"

	"github.com/apex/log"
)

// Creation is serialized per requested team name so two in-flight creates
// for the same name can't both pass the existence check. The unique index on
// the name column remains the authority; this just keeps the common race out
// of the database.

var mapMutex sync.Mutex
var nameMutexes = make(map[string]*sync.Mutex)

func acquireNameMutex(name string) {
	mapMutex.Lock()
	defer mapMutex.Unlock()
	var m sync.Mutex
	nameMutex, ok := nameMutexes[name]
	if !ok {
		nameMutex = &m
		nameMutexes[name] = nameMutex
	}
	nameMutex.Lock()
}

func releaseNameMutex(name string) {
	mapMutex.Lock()
	m, ok := nameMutexes[name]
	mapMutex.Unlock()

	if !ok {
		log.Errorf("releaseNameMutex called on name (%s) with no mutex", name)
		return
	}

	m.Unlock()
}

func withNameMutex(name string, f func() error) error {
	acquireNameMutex(name)
	defer releaseNameMutex(name)
	return f()
}
