package memory

import (
	"sync"

	"gridraid/internal/app/ports"
	"gridraid/internal/domain/battle"
)

type Store struct {
	mu     sync.Mutex
	runs   map[string]ports.RunRecord
	events map[string][]battle.Event
}

func NewStore() *Store {
	return &Store{
		runs:   make(map[string]ports.RunRecord),
		events: make(map[string][]battle.Event),
	}
}
