package run

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gridraid/internal/app/ports"
	"gridraid/internal/domain/battle"
	"gridraid/internal/domain/grid"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubRunRepo struct {
	mu      sync.Mutex
	records map[string]ports.RunRecord
	saveErr error
}

func newStubRunRepo() *stubRunRepo {
	return &stubRunRepo{records: map[string]ports.RunRecord{}}
}

func (r *stubRunRepo) GetByRunID(_ context.Context, runID string) (ports.RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[runID]
	if !ok {
		return ports.RunRecord{}, fmt.Errorf("%w: run %q", ports.ErrNotFound, runID)
	}
	return record, nil
}

func (r *stubRunRepo) SaveWithVersion(_ context.Context, record ports.RunRecord, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	current, ok := r.records[record.RunID]
	if expectedVersion == 0 {
		if ok {
			return ports.ErrConflict
		}
	} else if !ok || current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.records[record.RunID] = record
	return nil
}

type stubEventRepo struct {
	mu     sync.Mutex
	events map[string][]battle.Event
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{events: map[string][]battle.Event{}}
}

func (r *stubEventRepo) Append(_ context.Context, runID string, events []battle.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[runID] = append(r.events[runID], events...)
	return nil
}

func (r *stubEventRepo) ListByRunID(_ context.Context, runID string, limit int) ([]battle.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.events[runID]
	out := make([]battle.Event, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, stored[i])
	}
	return out, nil
}

func (r *stubEventRepo) types(runID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events[runID] {
		out = append(out, e.Type)
	}
	return out
}

type stubScenarioProvider struct {
	scenarios map[string]battle.Scenario
}

func (p stubScenarioProvider) Get(_ context.Context, name string) (battle.Scenario, error) {
	sc, ok := p.scenarios[name]
	if !ok {
		return battle.Scenario{}, fmt.Errorf("%w: scenario %q", ports.ErrNotFound, name)
	}
	return sc, nil
}

func (p stubScenarioProvider) List(_ context.Context) ([]string, error) {
	var out []string
	for name := range p.scenarios {
		out = append(out, name)
	}
	return out, nil
}

type stubMetrics struct {
	mu       sync.Mutex
	commands int
	replans  int
	failures int
	finished map[string]int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{finished: map[string]int{}}
}

func (m *stubMetrics) RecordCommand(battle.CommandKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands++
}

func (m *stubMetrics) RecordReplan() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replans++
}

func (m *stubMetrics) RecordFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

func (m *stubMetrics) RecordRunFinished(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished[status]++
}

// fakeField is a deliberately permissive battlefield: every command applies as
// asked, with no hostile turn of its own. Legality is the live engine's
// concern, not this package's.
type fakeField struct {
	mu        sync.Mutex
	turn      int
	bounds    grid.Bounds
	obstacles []grid.Cell
	units     map[battle.UnitID]*battle.Unit
	order     []battle.UnitID
	execErr   error
}

func newFakeField(sc battle.Scenario) (*fakeField, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	f := &fakeField{
		bounds:    sc.Bounds(),
		obstacles: append([]grid.Cell(nil), sc.Obstacles...),
		units:     map[battle.UnitID]*battle.Unit{},
	}
	for i, su := range sc.Units {
		hp := su.HP
		if hp <= 0 {
			hp = 1
		}
		id := battle.UnitID(i + 1)
		f.units[id] = &battle.Unit{ID: id, Player: su.Player, Name: su.Name, Pos: su.Pos, HP: hp}
		f.order = append(f.order, id)
	}
	return f, nil
}

func (f *fakeField) Snapshot(context.Context) (battle.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := battle.Snapshot{
		Turn:      f.turn,
		Bounds:    f.bounds,
		Obstacles: append([]grid.Cell(nil), f.obstacles...),
	}
	for _, id := range f.order {
		if u, ok := f.units[id]; ok {
			snap.Units = append(snap.Units, *u)
		}
	}
	return snap, nil
}

func (f *fakeField) Execute(_ context.Context, cmd battle.Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.execErr != nil {
		return f.execErr
	}
	switch cmd.Kind {
	case battle.CommandMove:
		if u, ok := f.units[cmd.Actor]; ok {
			u.Pos = u.Pos.Step(cmd.Dir)
		}
	case battle.CommandAttack:
		if target, ok := f.units[cmd.Target]; ok {
			target.HP--
			if target.HP <= 0 {
				delete(f.units, cmd.Target)
			}
		}
	}
	f.turn++
	return nil
}

// walledScenario is the 5x3 fixture whose single wall gap forces a five-move
// route and three attacks to level the townhall.
func walledScenario() battle.Scenario {
	return battle.Scenario{
		Name:   "walled",
		Width:  5,
		Height: 3,
		Obstacles: []grid.Cell{
			{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 4, Y: 1},
		},
		Units: []battle.ScenarioUnit{
			{Name: battle.UnitFootman, Player: 0, Pos: grid.Cell{X: 0, Y: 0}, HP: 10},
			{Name: battle.UnitTownhall, Player: 1, Pos: grid.Cell{X: 0, Y: 2}, HP: 3},
		},
	}
}

// sealedScenario walls the townhall in completely.
func sealedScenario() battle.Scenario {
	return battle.Scenario{
		Name:   "sealed",
		Width:  7,
		Height: 7,
		Obstacles: []grid.Cell{
			{X: 4, Y: 4}, {X: 5, Y: 4}, {X: 6, Y: 4},
			{X: 4, Y: 5}, {X: 6, Y: 5},
			{X: 4, Y: 6}, {X: 5, Y: 6}, {X: 6, Y: 6},
		},
		Units: []battle.ScenarioUnit{
			{Name: battle.UnitFootman, Player: 0, Pos: grid.Cell{X: 0, Y: 0}, HP: 10},
			{Name: battle.UnitTownhall, Player: 1, Pos: grid.Cell{X: 5, Y: 5}, HP: 3},
		},
	}
}

type fixture struct {
	uc      UseCase
	runs    *stubRunRepo
	events  *stubEventRepo
	metrics *stubMetrics
	fields  []*fakeField
}

func newFixture(scenarios ...battle.Scenario) *fixture {
	f := &fixture{
		runs:    newStubRunRepo(),
		events:  newStubEventRepo(),
		metrics: newStubMetrics(),
	}
	provider := stubScenarioProvider{scenarios: map[string]battle.Scenario{}}
	for _, sc := range scenarios {
		provider.scenarios[sc.Name] = sc
	}
	seq := 0
	f.uc = UseCase{
		TxManager: stubTxManager{},
		Runs:      f.runs,
		Events:    f.events,
		Scenarios: provider,
		Metrics:   f.metrics,
		Sessions:  NewSessionStore(),
		Player:    0,
		Now:       func() time.Time { return time.Unix(1700000000, 0) },
		NewRunID: func() string {
			seq++
			return fmt.Sprintf("run-%03d", seq)
		},
		Fields: func(sc battle.Scenario) (ports.Battlefield, error) {
			field, err := newFakeField(sc)
			if err != nil {
				return nil, err
			}
			f.fields = append(f.fields, field)
			return field, nil
		},
	}
	return f
}
