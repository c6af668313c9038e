package sim

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gridraid/internal/app/ports"
	"gridraid/internal/domain/battle"
)

// ScenarioStore serves scenarios from a directory of YAML files, one file per
// scenario, keyed by base name. Loaded scenarios are cached until invalidated.
type ScenarioStore struct {
	root  string
	mu    sync.RWMutex
	cache map[string]battle.Scenario
}

func NewScenarioStore(root string) *ScenarioStore {
	return &ScenarioStore{
		root:  root,
		cache: make(map[string]battle.Scenario),
	}
}

func (s *ScenarioStore) Get(_ context.Context, name string) (battle.Scenario, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return battle.Scenario{}, fmt.Errorf("%w: scenario %q", ports.ErrNotFound, name)
	}

	s.mu.RLock()
	sc, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return sc, nil
	}

	sc, err := LoadScenario(filepath.Join(s.root, name+".yaml"))
	if os.IsNotExist(err) {
		return battle.Scenario{}, fmt.Errorf("%w: scenario %q", ports.ErrNotFound, name)
	}
	if err != nil {
		return battle.Scenario{}, err
	}
	if sc.Name == "" {
		sc.Name = name
	}

	s.mu.Lock()
	s.cache[name] = sc
	s.mu.Unlock()
	return sc, nil
}

func (s *ScenarioStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *ScenarioStore) invalidate(name string) {
	s.mu.Lock()
	delete(s.cache, name)
	s.mu.Unlock()
}
