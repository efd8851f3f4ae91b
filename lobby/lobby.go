package lobby

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"card-crawl-server/config"
	"card-crawl-server/game"
	"card-crawl-server/runerrors"
	"card-crawl-server/storage"
	"card-crawl-server/telemetry"
)

const persistTimeout = 5 * time.Second

// Lobby creates tables and keeps track of the runs in progress.
type Lobby struct {
	ctx       context.Context
	config    *config.Config
	abilities game.AbilityProvider
	store     storage.RunStore
	telemetry *telemetry.Publisher

	mu     sync.Mutex
	tables map[string]*Table
}

// New returns a lobby whose tables stop when ctx is cancelled. store and pub may be nil.
func New(ctx context.Context, cfg *config.Config, abilities game.AbilityProvider, store storage.RunStore, pub *telemetry.Publisher) *Lobby {
	return &Lobby{
		ctx:       ctx,
		config:    cfg,
		abilities: abilities,
		store:     store,
		telemetry: pub,
		tables:    make(map[string]*Table),
	}
}

// NewRun deals a fresh run for p and starts its table goroutine.
func (l *Lobby) NewRun(p *Player) *Table {
	seed := l.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session := game.NewSession(l.config, l.abilities, game.NewRand(seed))
	t := NewTable(uuid.New().String(), seed, p, session)
	t.OnRunEnd = l.persist
	t.Telemetry = l.telemetry

	l.mu.Lock()
	l.tables[t.ID] = t
	l.mu.Unlock()

	go t.Run(l.ctx)
	go func() {
		<-t.Done
		l.mu.Lock()
		delete(l.tables, t.ID)
		l.mu.Unlock()
	}()
	return t
}

// Get returns the live table for id.
func (l *Lobby) Get(id string) (*Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.tables[id]
	if !ok {
		return nil, runerrors.ErrRunNotFound
	}
	return t, nil
}

// Active returns the number of runs in progress.
func (l *Lobby) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tables)
}

// persist stores a finished run. Runs by anonymous players are not kept.
func (l *Lobby) persist(rec storage.RunRecord, uses []storage.AbilityUse) {
	if l.store == nil || rec.UserID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := l.store.InsertRunResult(ctx, rec); err != nil {
		slog.Error("failed to save run", "tag", "lobby", "run", rec.ID, "err", err)
		return
	}
	if err := l.store.InsertAbilityUses(ctx, rec.ID, uses); err != nil {
		slog.Error("failed to save ability uses", "tag", "lobby", "run", rec.ID, "err", err)
	}
}
