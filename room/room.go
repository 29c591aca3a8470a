package room

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"graphio/game"
	"graphio/protocol"
)

var ErrStopped = errors.New("room stopped")

type Options struct {
	Tuning      game.Tuning
	Seed        uint64
	TickHz      int
	BroadcastHz int
	Logger      *log.Logger
}

func DefaultOptions() Options {
	return Options{
		Tuning:      game.DefaultTuning(),
		Seed:        uint64(time.Now().UnixNano()),
		TickHz:      protocol.SimTickHz,
		BroadcastHz: protocol.BroadcastHz,
	}
}

// Room owns the simulation. All state is touched only from the Run
// goroutine; everything else talks to it through Inbox.
type Room struct {
	Inbox          chan any
	tickHz         int
	broadcastEvery int
	state          *game.State
	clients        map[game.PlayerID]Conn
	sessions       map[game.PlayerID]string
	nextID         game.PlayerID
	logger         *log.Logger
	quit           chan struct{}
	stopOnce       sync.Once
}

func New(opts Options) *Room {
	if opts.TickHz <= 0 {
		opts.TickHz = protocol.SimTickHz
	}
	if opts.BroadcastHz <= 0 {
		opts.BroadcastHz = opts.TickHz
	}
	broadcastEvery := opts.TickHz / opts.BroadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Room{
		Inbox:          make(chan any, 256),
		tickHz:         opts.TickHz,
		broadcastEvery: broadcastEvery,
		state:          game.NewState(opts.Tuning, opts.Seed),
		clients:        make(map[game.PlayerID]Conn),
		sessions:       make(map[game.PlayerID]string),
		nextID:         1,
		logger:         logger,
		quit:           make(chan struct{}),
	}
}

func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.quit) })
}

// Done is closed as soon as Stop is called. Run may still be removing
// players at that point; it returns once they are gone.
func (r *Room) Done() <-chan struct{} {
	return r.quit
}

// Status asks the running room for its current counters.
func (r *Room) Status(ctx context.Context) (Status, error) {
	reply := make(chan Status, 1)
	select {
	case r.Inbox <- StatusRequest{Reply: reply}:
	case <-r.quit:
		return Status{}, ErrStopped
	case <-ctx.Done():
		return Status{}, ctx.Err()
	}
	select {
	case <-r.quit:
		return Status{}, ErrStopped
	case st := <-reply:
		return st, nil
	case <-ctx.Done():
		return Status{}, ctx.Err()
	}
}

func (r *Room) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(r.tickHz))
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			for id := range r.clients {
				r.removePlayer(id)
			}
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			r.tick()
		}
	}
}

func (r *Room) tick() {
	res := game.Step(r.state)
	for _, id := range res.Respawned {
		if c, ok := r.clients[id]; ok {
			r.logger.Printf("player %d [%s] lost all territory, respawned", id, r.sessions[id])
			r.sendTo(id, c, protocol.MsgRespawn, protocol.Respawn{})
		}
	}
	if r.state.Tick%r.broadcastEvery == 0 {
		r.broadcastState()
	}
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		id := r.nextID
		r.nextID++
		r.clients[id] = c.Conn
		r.sessions[id] = c.Session
		game.AddPlayer(r.state, id)
		r.logger.Printf("player %d joined [%s], %d connected", id, c.Session, len(r.clients))

		t := r.state.Tuning
		r.sendTo(id, c.Conn, protocol.MsgInit, protocol.Init{
			ID:         uint32(id),
			MapWidth:   t.MapWidth,
			MapHeight:  t.MapHeight,
			ClickRange: t.ClickRange,
		})
		c.Reply <- JoinResult{PlayerID: id}
	case Click:
		if _, ok := r.clients[c.PlayerID]; !ok {
			return
		}
		r.handleClick(c)
	case Leave:
		r.handleLeave(c.PlayerID)
	case StatusRequest:
		c.Reply <- Status{
			Tick:    r.state.Tick,
			Players: len(r.clients),
			Dots:    len(r.state.Dots),
		}
	}
}

func (r *Room) handleClick(c Click) {
	if err := c.Click.Validate(); err != nil {
		r.logger.Printf("click from player %d dropped: %v", c.PlayerID, err)
		return
	}
	gc := game.Click{Player: c.PlayerID, X: *c.Click.X, Y: *c.Click.Y}
	if c.Click.IsDrag() {
		gc.Drag = true
		gc.PX, gc.PY = *c.Click.PX, *c.Click.PY
	}
	res, ok := game.ApplyClick(r.state, gc)
	if !ok {
		return
	}
	msg := protocol.ClickBroadcast{
		ID:   uint32(c.PlayerID),
		X:    res.X,
		Y:    res.Y,
		Stam: res.Stamina,
	}
	if res.Drag {
		msg.PX, msg.PY = &res.PX, &res.PY
	}
	for id, conn := range r.clients {
		if id == c.PlayerID {
			continue
		}
		r.sendTo(id, conn, protocol.MsgClick, msg)
	}
}

func (r *Room) handleLeave(playerID game.PlayerID) {
	if _, ok := r.clients[playerID]; !ok {
		return
	}
	r.removePlayer(playerID)
	r.logger.Printf("player %d left, %d connected", playerID, len(r.clients))
}

func (r *Room) removePlayer(playerID game.PlayerID) {
	if c, ok := r.clients[playerID]; ok {
		_ = c.Close()
	}
	delete(r.clients, playerID)
	delete(r.sessions, playerID)
	game.RemovePlayer(r.state, playerID)
}

// sendTo drops a player whose connection refuses a frame. Such failures are
// reported by the transport later as a Leave as well; removal is idempotent.
func (r *Room) sendTo(id game.PlayerID, c Conn, t string, payload any) {
	if !r.send(id, c, t, payload) {
		r.removePlayer(id)
	}
}

// send reports false only when the connection refused the frame.
func (r *Room) send(id game.PlayerID, c Conn, t string, payload any) bool {
	b, err := c.Codec().Encode(t, payload)
	if err != nil {
		r.logger.Printf("encode %s for player %d: %v", t, id, err)
		return true
	}
	if err := c.Send(b); err != nil {
		r.logger.Printf("send %s to player %d failed: %v", t, id, err)
		return false
	}
	return true
}

// broadcastState sends every client the same snapshot. Clients whose
// connection refuses it are removed after the loop, so the state does not
// change under the snapshot; their dots go neutral in the next one.
func (r *Room) broadcastState() {
	snapshot := r.buildSnapshot()
	var failed []game.PlayerID
	for id, c := range r.clients {
		if p, ok := r.state.Players[id]; ok {
			snapshot.Stamina = p.Stamina
		}
		if !r.send(id, c, protocol.MsgState, snapshot) {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.removePlayer(id)
	}
}

func (r *Room) buildSnapshot() protocol.State {
	snapshot := protocol.State{
		Tick:        r.state.Tick,
		Dots:        make([]protocol.DotSnapshot, len(r.state.Dots)),
		Connections: make([][2]int, len(r.state.Edges)),
	}
	for i, d := range r.state.Dots {
		snapshot.Dots[i] = protocol.DotSnapshot{X: d.X, Y: d.Y, Owner: uint32(d.Owner)}
	}
	for i, e := range r.state.Edges {
		snapshot.Connections[i] = [2]int{e.I, e.J}
	}
	return snapshot
}
