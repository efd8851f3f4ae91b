package lobby

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"

	"card-crawl-server/autoplay"
	"card-crawl-server/game"
	"card-crawl-server/runerrors"
	"card-crawl-server/storage"
	"card-crawl-server/telemetry"
	"card-crawl-server/wsutil"
)

// ActionType identifies a player request routed to a table.
type ActionType int

const (
	ActionMove ActionType = iota
	ActionDiscard
	ActionHint
	ActionState
	ActionAbandon
	ActionDisconnect
)

// End reasons stored with a finished run.
const (
	ReasonWon       = "won"
	ReasonLost      = "lost"
	ReasonAbandoned = "abandoned"
	// ReasonStuck ends a live run that offers no legal action.
	ReasonStuck = "stuck"
)

// Action is a request processed by the table goroutine. Discard uses From only.
type Action struct {
	Type ActionType
	From game.Slot
	To   game.Slot
}

// Player is the person behind a table.
type Player struct {
	UserID string
	Name   string
	Send   chan []byte
}

// Table owns one run. Its session is only touched by the Run goroutine.
type Table struct {
	ID     string
	Seed   int64
	Player *Player

	Actions chan Action
	Done    chan struct{}

	// OnRunEnd is called once with the result when the run ends for any reason.
	OnRunEnd func(rec storage.RunRecord, uses []storage.AbilityUse)
	// Telemetry receives run events; nil drops them.
	Telemetry *telemetry.Publisher

	session  *game.Session
	hintRand *rand.Rand
	uses     []storage.AbilityUse
	finished bool
	ended    chan struct{}
}

// NewTable wraps session as run id for p.
func NewTable(id string, seed int64, p *Player, session *game.Session) *Table {
	return &Table{
		ID:       id,
		Seed:     seed,
		Player:   p,
		Actions:  make(chan Action, 16),
		Done:     make(chan struct{}),
		ended:    make(chan struct{}),
		session:  session,
		hintRand: rand.New(rand.NewSource(seed)),
	}
}

// Over reports whether the run has ended. It turns true before run_over is sent.
func (t *Table) Over() bool {
	select {
	case <-t.ended:
		return true
	default:
		return false
	}
}

// Submit queues a for the table, failing once the run has ended.
func (t *Table) Submit(a Action) error {
	if t.Over() {
		return runerrors.ErrRunFinished
	}
	select {
	case t.Actions <- a:
		return nil
	case <-t.Done:
		return runerrors.ErrRunFinished
	}
}

// Run is the table's loop. It processes actions sequentially until the run
// ends or ctx is cancelled, and should be run as a goroutine.
func (t *Table) Run(ctx context.Context) {
	defer close(t.Done)

	slog.Info("run started", "tag", "lobby", "run", t.ID, "player", t.Player.Name, "seed", t.Seed)
	t.publish(telemetry.Event{Type: telemetry.EventRunStarted, Seed: t.Seed})
	t.send(RunStartedMsg{Type: MsgRunStarted, RunID: t.ID, Seed: t.Seed})
	t.sendState()

	for {
		select {
		case <-ctx.Done():
			t.finish(ReasonAbandoned)
			return
		case a, ok := <-t.Actions:
			if !ok {
				t.finish(ReasonAbandoned)
				return
			}
			t.handle(a)
		}
		if t.finished {
			return
		}
	}
}

func (t *Table) handle(a Action) {
	switch a.Type {
	case ActionMove:
		t.recordAbilityUse(a.From, a.To)
		log, err := t.session.ApplyMove(a.From, a.To)
		t.afterAction(log, err)
	case ActionDiscard:
		log, err := t.session.ApplyDiscard(a.From)
		t.afterAction(log, err)
	case ActionHint:
		t.sendHint()
	case ActionState:
		t.sendState()
	case ActionAbandon, ActionDisconnect:
		t.finish(ReasonAbandoned)
	}
}

// recordAbilityUse notes a legal ability play before it resolves.
func (t *Table) recordAbilityUse(src, dst game.Slot) {
	c := t.session.Card(src)
	if c == nil || c.Kind != game.KindAbility || t.session.Card(dst) == nil || !t.session.CanReceive(src, dst) {
		return
	}
	t.uses = append(t.uses, storage.AbilityUse{
		Move:    t.session.Moves() + 1,
		Ability: c.Ability.String(),
		Target:  dst.String(),
	})
	t.publish(telemetry.Event{
		Type:    telemetry.EventAbilityUsed,
		Move:    t.session.Moves() + 1,
		Ability: c.Ability.String(),
		Target:  dst.String(),
	})
}

func (t *Table) afterAction(log game.EffectLog, err error) {
	if err != nil {
		if errors.Is(err, game.ErrIllegalMove) || errors.Is(err, game.ErrGameOver) {
			slog.Debug("rejected action", "tag", "lobby", "run", t.ID, "err", err)
		} else {
			slog.Error("action failed", "tag", "lobby", "run", t.ID, "err", err)
		}
		t.sendError(err.Error())
		return
	}
	t.send(EffectsMsg{Type: MsgEffects, RunID: t.ID, Effects: game.BuildEffectViews(log)})
	t.sendState()
	if over, ok := log.GameOver(); ok {
		if over.Won {
			t.finish(ReasonWon)
		} else {
			t.finish(ReasonLost)
		}
		return
	}
	if len(autoplay.LegalActions(t.session)) == 0 {
		t.finish(ReasonStuck)
	}
}

func (t *Table) sendHint() {
	a, reason, ok := autoplay.Suggest(t.session, t.hintRand)
	if !ok {
		t.send(HintMsg{Type: MsgHint, None: true})
		return
	}
	msg := HintMsg{Type: MsgHint, From: a.Source.String(), Discard: a.Discard, Reason: reason}
	if !a.Discard {
		msg.To = a.Target.String()
	}
	t.send(msg)
}

// finish ends the run once: it reports the result to the player, the store and telemetry.
func (t *Table) finish(reason string) {
	if t.finished {
		return
	}
	t.finished = true
	close(t.ended)
	s := t.session
	won := reason == ReasonWon
	rec := storage.RunRecord{
		ID:         t.ID,
		UserID:     t.Player.UserID,
		PlayerName: t.Player.Name,
		Seed:       t.Seed,
		Won:        won,
		EndReason:  reason,
		Coins:      s.Coins(),
		HeroHealth: s.HeroHealth(),
		MaxHealth:  s.MaxHealth(),
		Moves:      s.Moves(),
		Score:      storage.RunScore(won, s.Coins(), s.HeroHealth()),
	}
	slog.Info("run finished", "tag", "lobby", "run", t.ID, "reason", reason, "score", rec.Score, "moves", rec.Moves)

	t.send(RunOverMsg{
		Type:       MsgRunOver,
		RunID:      t.ID,
		Won:        won,
		Reason:     reason,
		Score:      rec.Score,
		Coins:      rec.Coins,
		HeroHealth: rec.HeroHealth,
		Moves:      rec.Moves,
	})
	t.publish(telemetry.Event{Type: telemetry.EventRunFinished, Won: won, Reason: reason, Score: rec.Score})
	if t.OnRunEnd != nil {
		t.OnRunEnd(rec, t.uses)
	}
}

func (t *Table) publish(ev telemetry.Event) {
	ev.RunID = t.ID
	ev.UserID = t.Player.UserID
	if err := t.Telemetry.Publish(ev); err != nil {
		slog.Warn("telemetry publish failed", "tag", "lobby", "run", t.ID, "err", err)
	}
}

func (t *Table) sendState() {
	t.send(RunStateMsg{Type: MsgRunState, RunID: t.ID, State: t.session.Snapshot()})
}

func (t *Table) sendError(message string) {
	t.send(ErrorMsg{Type: MsgError, Message: message})
}

func (t *Table) send(msg any) {
	if t.Player == nil || t.Player.Send == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "tag", "lobby", "run", t.ID, "err", err)
		return
	}
	wsutil.SafeSend(t.Player.Send, data)
}
