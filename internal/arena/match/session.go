package match

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/codeclash-games/codeclash/internal/arena/problems"
	"github.com/codeclash-games/codeclash/internal/arena/resource"
	"github.com/codeclash-games/codeclash/internal/hashutil"
	"github.com/codeclash-games/codeclash/internal/logging"
	"github.com/codeclash-games/codeclash/internal/util"
	"github.com/google/uuid"
)

type Phase string

const (
	PhaseLobby  Phase = "lobby"
	PhaseWarmup Phase = "warmup"
	PhaseMain   Phase = "main"
	PhaseEnded  Phase = "ended"
)

const (
	maxUsernameLen = 16
	maxBotsPerAdd  = 8
)

// envelope pairs a command with its originating connection; internal events
// travel with an empty connID.
type envelope struct {
	connID string
	cmd    Command
}

// internal command variants, part of the same closed set

type judgeDone struct {
	playerID  string
	problemID string
	submit    bool
	verdict   Verdict
	err       error
	matchGen  uint64
	playerGen uint64
}

type joinReq struct {
	username string
	reply    chan joinReply
}

type joinReply struct {
	res JoinResult
	err error
}

type snapshotReq struct {
	reply chan RoomSummary
}

func (judgeDone) isCommand()   {}
func (joinReq) isCommand()     {}
func (snapshotReq) isCommand() {}

// JoinResult carries the credentials a joining client stores for the
// websocket resume.
type JoinResult struct {
	PlayerID string `json:"playerId"`
	Token    string `json:"playerToken"`
	RoomCode int64  `json:"roomCode"`
	Role     Role   `json:"role"`
}

// RoomSummary is the synchronous read-side view served over REST.
type RoomSummary struct {
	RoomCode   int64    `json:"roomCode"`
	Phase      Phase    `json:"phase"`
	Players    int      `json:"players"`
	MaxPlayers int      `json:"maxPlayers"`
	Settings   Settings `json:"settings"`
}

type Config struct {
	Code     int64
	Settings Settings
	Bank     *problems.Bank
	Judge    Judge
	Store    MatchStore
	Emitter  Emitter
	DoneFn   func(session *Session) error
	Timeout  time.Duration
}

func NewSession(config Config) *Session {
	return &Session{
		config:    config,
		Code:      config.Code,
		settings:  config.Settings,
		phase:     PhaseLobby,
		inbox:     make(chan envelope, 256),
		limiters:  map[string]*limiter{},
		now:       time.Now,
		CreatedAt: time.Now(),
	}
}

// Session is the room actor: the single writer over one room's state. Every
// mutation flows through the loop goroutine, whether it came from a client
// command or an armed timer, giving a total order over state changes.
type Session struct {
	config    Config
	Code      int64
	CreatedAt time.Time

	phase         Phase
	matchID       string
	startAt       time.Time
	endAt         time.Time
	endReason     string
	settings      Settings // lobby settings
	matchSettings Settings // immutable snapshot while a match runs
	startersCount int

	players     []*Player // join order
	joinCounter int
	botCounter  int

	chat   []ChatEntry
	events []EventEntry

	limiters map[string]*limiter // keyed by connID
	sched    scheduler
	inbox    chan envelope

	// matchGen invalidates match-scoped timers when bumped
	matchGen uint64

	now    func() time.Time
	ctx    context.Context
	cancel func()
	sema   sync.Once
}

func (r *Session) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Session) Run(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	r.ctx = ctx
	r.cancel = cancel
	r.sema.Do(func() {
		go r.loop(ctx)
	})
}

// Execute posts a client command to the actor.
func (r *Session) Execute(connID string, cmd Command) {
	r.post(envelope{connID: connID, cmd: cmd})
}

// Join registers a new participant and mints their credentials. Joins during a
// running match come in as spectators until the room returns to the lobby.
func (r *Session) Join(username string) (JoinResult, error) {
	req := joinReq{username: username, reply: make(chan joinReply, 1)}
	r.post(envelope{cmd: req})
	rep := <-req.reply
	return rep.res, rep.err
}

// Summary is the synchronous room accessor; external reads never touch state
// directly.
func (r *Session) Summary() RoomSummary {
	req := snapshotReq{reply: make(chan RoomSummary, 1)}
	r.post(envelope{cmd: req})
	return <-req.reply
}

func (r *Session) post(env envelope) {
	r.inbox <- env
}

func (r *Session) loop(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("match.loop")
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		if at, ok := r.sched.nextAt(); ok {
			d := at.Sub(r.now())
			if d < 0 {
				d = 0
			}
			timer.Reset(d)
		} else {
			timer.Reset(time.Hour)
		}

		select {
		case <-ctx.Done():
			r.sched.reset()
			if r.config.DoneFn != nil {
				if err := r.config.DoneFn(r); err != nil {
					logger.Errorf("done function: %v", err)
				}
			}
			return
		case env := <-r.inbox:
			r.step(env)
		case <-timer.C:
			// a stale wake between rearms drains nothing and is harmless
			r.fireDue()
		}
	}
}

// step runs one command to completion. Validation happens before any mutation,
// so a rejection is always a no-op; the originating connection alone hears
// about it.
func (r *Session) step(env envelope) {
	err := r.dispatch(env)
	if err == nil {
		return
	}

	rej, ok := err.(*Rejection)
	if !ok {
		logging.DefaultLogger().Named("match.step").Errorf("command %T: %v", env.cmd, err)
		rej = &Rejection{Code: CodeInternal, Reason: "something went wrong"}
	}

	if env.connID != "" {
		r.config.Emitter.Send(env.connID, ErrorNotice{
			Code:         rej.Code,
			Reason:       rej.Reason,
			RetryAfterMs: rej.RetryAfter.Milliseconds(),
		})
	}
}

func (r *Session) dispatch(env envelope) error {
	switch cmd := env.cmd.(type) {
	case joinReq:
		res, err := r.handleJoin(cmd.username)
		cmd.reply <- joinReply{res: res, err: err}
		return nil
	case snapshotReq:
		cmd.reply <- r.summary()
		return nil
	case Resume:
		return r.handleResume(cmd)
	case Disconnect:
		r.handleDisconnect(cmd.ConnID)
		return nil
	case judgeDone:
		r.handleJudgeDone(cmd)
		return nil
	case UpdateSettings:
		return r.handleUpdateSettings(env.connID, cmd)
	case StartMatch:
		return r.handleStartMatch(env.connID)
	case ReturnToLobby:
		return r.handleReturnToLobby(env.connID)
	case AddBots:
		return r.handleAddBots(env.connID, cmd)
	case SendChat:
		return r.handleChat(env.connID, cmd)
	case RunCode:
		return r.handleCode(env.connID, cmd.Code, false)
	case SubmitCode:
		return r.handleCode(env.connID, cmd.Code, true)
	case SpendPoints:
		return r.handleSpend(env.connID, cmd)
	case SetTargetingMode:
		return r.handleTargetingMode(env.connID, cmd)
	case SpectatePlayer:
		return r.handleSpectate(env.connID, cmd.PlayerID)
	case StopSpectate:
		return r.handleSpectate(env.connID, "")
	case CodeUpdate:
		return r.handleCodeUpdate(env.connID, cmd)
	default:
		return fmt.Errorf("unhandled command %T", cmd)
	}
}

// fireDue drains every due scheduled event. Each handler re-validates the
// generation stamps captured at arm time; stale firings are silent no-ops.
func (r *Session) fireDue() {
	now := r.now()
	for {
		ev, ok := r.sched.popDue(now)
		if !ok {
			return
		}
		r.fire(ev)
	}
}

func (r *Session) fire(ev scheduledEvent) {
	if ev.matchGen != r.matchGen {
		return
	}

	var p *Player
	if ev.playerID != "" {
		p = r.playerByID(ev.playerID)
		if p == nil {
			return
		}
		// arrival timers carry their own generation so a cadence change can
		// retire them without disturbing the player's other timers
		current := p.gen
		if ev.kind == evProblemArrival {
			current = p.arrivalGen
		}
		if current != ev.playerGen {
			return
		}
	}

	switch ev.kind {
	case evWarmupOver:
		r.enterMain()
	case evMatchOver:
		r.endMatch(EndReasonTimeExpired)
	case evProblemArrival:
		r.fireProblemArrival(p)
	case evDebuffExpiry:
		r.fireDebuffExpiry(p)
	case evBuffExpiry:
		r.fireBuffExpiry(p)
	case evBotAct:
		r.fireBotAct(p)
	}
}

// --- registry ---

func (r *Session) playerByID(id string) *Player {
	for _, p := range r.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Session) playerByConn(connID string) *Player {
	if connID == "" {
		return nil
	}
	for _, p := range r.players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

func (r *Session) playerByToken(token string) *Player {
	if token == "" {
		return nil
	}
	for _, p := range r.players {
		if p.Token == token {
			return p
		}
	}
	return nil
}

func (r *Session) participants() []*Player {
	var out []*Player
	for _, p := range r.players {
		if p.Role != RoleSpectator {
			out = append(out, p)
		}
	}
	return out
}

func (r *Session) aliveCount() int {
	var n int
	for _, p := range r.players {
		if p.Alive() {
			n++
		}
	}
	return n
}

// --- join / resume / disconnect ---

func (r *Session) handleJoin(username string) (JoinResult, error) {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < 1 || n > maxUsernameLen {
		return JoinResult{}, badRequest("username must be 1-%d characters", maxUsernameLen)
	}
	for _, p := range r.players {
		if strings.EqualFold(p.Username, username) {
			return JoinResult{}, badRequest("username %q is taken", username)
		}
	}
	if len(r.players) >= r.settings.MaxPlayers {
		return JoinResult{}, forbidden("room is full")
	}

	role := RolePlayer
	if r.phase != PhaseLobby {
		// mid-match joins watch until the next lobby
		role = RoleSpectator
	}

	r.joinCounter++
	p := NewPlayer(uuid.New().String(), hashutil.SerializedSha1FromTime(), username, role, r.joinCounter)
	r.players = append(r.players, p)

	if role == RoleSpectator {
		r.appendEvent(fmt.Sprintf(resource.TextSpectatorJoinedMsg, p.Username))
	} else {
		r.appendEvent(fmt.Sprintf(resource.TextPlayerJoinedMsg, p.Username))
	}
	r.broadcast(PlayerUpdated{Player: r.public(p)})

	return JoinResult{PlayerID: p.ID, Token: p.Token, RoomCode: r.Code, Role: role}, nil
}

func (r *Session) handleResume(cmd Resume) error {
	p := r.playerByToken(cmd.Token)
	if p == nil || p.IsBot() {
		return notFound("unknown player token")
	}

	if p.ConnID != "" {
		delete(r.limiters, p.ConnID)
	}
	p.ConnID = cmd.ConnID
	r.limiters[cmd.ConnID] = newLimiter()

	r.ensureHost()
	r.appendEvent(fmt.Sprintf(resource.TextPlayerRejoinedMsg, p.Username))
	r.broadcast(PlayerUpdated{Player: r.public(p)})
	r.emitTo(p, r.snapshotFor(p))
	return nil
}

func (r *Session) handleDisconnect(connID string) {
	p := r.playerByConn(connID)
	delete(r.limiters, connID)
	if p == nil {
		return
	}

	p.ConnID = ""
	r.ensureHost()
	r.appendEvent(fmt.Sprintf(resource.TextPlayerLeftMsg, p.Username))
	r.broadcast(PlayerUpdated{Player: r.public(p)})
}

// ensureHost keeps the host invariant: exactly one host among connected human
// players, or none when no such player exists. Reassignment picks the smallest
// join order, synchronously with the triggering step.
func (r *Session) ensureHost() {
	var current *Player
	for _, p := range r.players {
		if p.IsHost {
			current = p
			break
		}
	}

	if current != nil && current.ConnID != "" && current.Role == RolePlayer {
		return
	}

	var next *Player
	for _, p := range r.players {
		if p.Role != RolePlayer || p.ConnID == "" {
			continue
		}
		if next == nil || p.JoinOrder < next.JoinOrder {
			next = p
		}
	}

	if current == next {
		return
	}

	if current != nil {
		current.IsHost = false
		r.broadcast(PlayerUpdated{Player: r.public(current)})
	}
	if next != nil {
		next.IsHost = true
		r.appendEvent(fmt.Sprintf(resource.TextHostChangedMsg, next.Username))
		r.broadcast(PlayerUpdated{Player: r.public(next)})
	}
}

func (r *Session) requireHost(connID string) (*Player, error) {
	p := r.playerByConn(connID)
	if p == nil {
		return nil, notFound("no player bound to this connection")
	}
	if !p.IsHost {
		return nil, forbidden("host only")
	}
	return p, nil
}

// --- lobby ---

func (r *Session) handleUpdateSettings(connID string, cmd UpdateSettings) error {
	if _, err := r.requireHost(connID); err != nil {
		return err
	}
	if r.phase != PhaseLobby {
		return forbidden("settings can only change in the lobby")
	}
	if err := cmd.Settings.Validate(); err != nil {
		return badRequest("%v", err)
	}
	if cmd.Settings.MaxPlayers < len(r.players) {
		return badRequest("max players below current occupancy")
	}

	r.settings = cmd.Settings
	r.broadcast(SettingsChanged{Settings: r.settings})
	return nil
}

func (r *Session) handleAddBots(connID string, cmd AddBots) error {
	if _, err := r.requireHost(connID); err != nil {
		return err
	}
	if r.phase != PhaseLobby {
		return forbidden("bots can only be added in the lobby")
	}
	if cmd.Count < 1 || cmd.Count > maxBotsPerAdd {
		return badRequest("bot count must be 1-%d", maxBotsPerAdd)
	}
	if len(r.players)+cmd.Count > r.settings.MaxPlayers {
		return badRequest("not enough free seats for %d bots", cmd.Count)
	}

	for i := 0; i < cmd.Count; i++ {
		r.joinCounter++
		r.botCounter++
		name := r.nextBotName()
		bot := NewPlayer(uuid.New().String(), "", name, RoleBot, r.joinCounter)
		r.players = append(r.players, bot)
		r.broadcast(PlayerUpdated{Player: r.public(bot)})
	}

	r.appendEvent(fmt.Sprintf(resource.TextBotsAddedMsg, cmd.Count, util.Plural(cmd.Count, "bot", "bots")))
	return nil
}

func (r *Session) nextBotName() string {
	base := fmt.Sprintf("bot%02d", r.botCounter)
	if r.botCounter <= len(resource.BotNames) {
		base = resource.BotNames[r.botCounter-1]
	}
	for _, p := range r.players {
		if strings.EqualFold(p.Username, base) {
			return fmt.Sprintf("%s%02d", base, r.botCounter)
		}
	}
	return base
}

// --- phase machine ---

func (r *Session) handleStartMatch(connID string) error {
	if _, err := r.requireHost(connID); err != nil {
		return err
	}
	if r.phase != PhaseLobby {
		return forbidden("match already running")
	}
	if len(r.participants()) < 2 {
		return badRequest("at least 2 participants required")
	}

	now := r.now()
	r.matchGen++
	r.phase = PhaseWarmup
	r.matchID = uuid.New().String()
	r.matchSettings = r.settings
	r.startAt = now
	r.endAt = now.Add(r.matchSettings.MatchDuration())
	r.endReason = ""
	r.startersCount = len(r.participants())

	for _, p := range r.participants() {
		r.setupForMatch(p)
	}

	r.sched.arm(scheduledEvent{at: now.Add(r.matchSettings.WarmupDuration()), kind: evWarmupOver, matchGen: r.matchGen})
	r.sched.arm(scheduledEvent{at: r.endAt, kind: evMatchOver, matchGen: r.matchGen})

	r.appendEvent(fmt.Sprintf(resource.TextMatchStartedMsg, int(r.matchSettings.WarmupDuration().Seconds())))
	for _, p := range r.players {
		if p.ConnID == "" {
			continue
		}
		r.emitTo(p, MatchStarted{Match: r.matchPublic(), Current: p.Current, Queue: p.Queue})
	}
	return nil
}

// setupForMatch resets a participant's transient fields and deals their opening
// problems.
func (r *Session) setupForMatch(p *Player) {
	p.Status = StatusCoding
	p.Score = 0
	p.Streak = 0
	p.Debuff = nil
	p.Buff = nil
	p.Code = ""
	p.CodeVersion = 0
	p.RevealedHints = 0
	p.Queue = nil
	p.seen = map[string]struct{}{}
	p.recentAttackers = nil
	p.lastDebuffEnd = time.Time{}
	p.eliminatedAt = time.Time{}
	p.buffReadyAt = time.Time{}
	p.gen++
	p.arrivalGen++

	current := r.sampleFor(p)
	p.Current = &current
	for i := 0; i < r.matchSettings.StartingQueued; i++ {
		next := r.sampleFor(p)
		p.Queue = append(p.Queue, next.Summary())
	}

	r.armArrival(p)
	if p.IsBot() {
		r.armBotAct(p)
	}
}

func (r *Session) enterMain() {
	if r.phase != PhaseWarmup {
		return
	}
	r.phase = PhaseMain
	r.appendEvent(resource.TextMainPhaseMsg)
	r.broadcast(MatchPhaseChanged{Phase: PhaseMain})
}

const (
	EndReasonLastAlive   = "lastAlive"
	EndReasonTimeExpired = "timeExpired"
)

// endMatch performs the terminal transition exactly once: freeze timers,
// compute standings, broadcast, then persist. The broadcast never waits on the
// store and a store failure stays local.
func (r *Session) endMatch(reason string) {
	if r.phase != PhaseWarmup && r.phase != PhaseMain {
		return
	}

	r.matchGen++ // freeze every armed timer
	r.phase = PhaseEnded
	r.endReason = reason
	standings := r.computeStandings()

	if len(standings) > 0 {
		top := standings[0]
		r.appendEvent(fmt.Sprintf(resource.TextMatchEndedMsg, top.Username, top.Score))
	}
	r.broadcast(MatchEnded{MatchID: r.matchID, EndReason: reason, Standings: standings})

	if r.config.Store != nil {
		if err := r.config.Store.SaveMatch(Result{
			MatchID:   r.matchID,
			RoomCode:  r.Code,
			StartAt:   r.startAt,
			EndAt:     r.now(),
			EndReason: reason,
			Settings:  r.matchSettings,
			Standings: standings,
		}); err != nil {
			logging.DefaultLogger().Named("match.persist").Errorf("save match %s: %v", r.matchID, err)
		}
	}
}

func (r *Session) handleReturnToLobby(connID string) error {
	if _, err := r.requireHost(connID); err != nil {
		return err
	}
	if r.phase != PhaseEnded {
		return forbidden("match is not over")
	}

	r.matchGen++
	r.phase = PhaseLobby
	r.matchID = ""
	r.startAt = time.Time{}
	r.endAt = time.Time{}
	r.endReason = ""
	r.startersCount = 0
	r.events = nil // chat survives, the event log does not

	kept := r.players[:0]
	for _, p := range r.players {
		if p.IsBot() {
			continue
		}
		if p.Role == RoleSpectator {
			p.Role = RolePlayer
		}
		p.resetTransient()
		kept = append(kept, p)
	}
	r.players = kept

	r.ensureHost()
	r.appendEvent(resource.TextReturnToLobbyMsg)
	for _, p := range r.players {
		if p.ConnID != "" {
			r.emitTo(p, r.snapshotFor(p))
		}
	}
	return nil
}

// --- chat / spectate / misc commands ---

func (r *Session) handleChat(connID string, cmd SendChat) error {
	p := r.playerByConn(connID)
	if p == nil {
		return notFound("no player bound to this connection")
	}
	text := strings.TrimSpace(cmd.Text)
	if text == "" || len(text) > maxChatLen {
		return badRequest("chat message must be 1-%d characters", maxChatLen)
	}
	if retry, ok := r.limiterFor(connID).allow(throttleChat, r.now()); !ok {
		return rateLimited(retry)
	}

	entry := ChatEntry{PlayerID: p.ID, Username: p.Username, Text: text, At: r.now()}
	r.chat = append(r.chat, entry)
	r.broadcast(ChatAppended{Entry: entry})
	return nil
}

func (r *Session) handleTargetingMode(connID string, cmd SetTargetingMode) error {
	p := r.playerByConn(connID)
	if p == nil {
		return notFound("no player bound to this connection")
	}
	if !validTargetingMode(cmd.Mode) {
		return badRequest("unknown targeting mode %q", cmd.Mode)
	}

	p.Targeting = cmd.Mode
	r.broadcast(PlayerUpdated{Player: r.public(p)})
	return nil
}

func (r *Session) handleSpectate(connID, targetID string) error {
	p := r.playerByConn(connID)
	if p == nil {
		return notFound("no player bound to this connection")
	}
	// detaching is allowed in any phase, the match may already be over
	if targetID == "" {
		p.SpectatingID = ""
		r.emitTo(p, SpectateStateChanged{PlayerID: p.ID})
		return nil
	}
	if !r.gameplayPhase() {
		return forbidden("nothing to watch right now")
	}

	if retry, ok := r.limiterFor(connID).allow(throttleSpectate, r.now()); !ok {
		return rateLimited(retry)
	}
	target := r.playerByID(targetID)
	if target == nil || target.Role == RoleSpectator {
		return notFound("no such player to watch")
	}
	if target.ID == p.ID {
		return badRequest("cannot spectate yourself")
	}

	p.SpectatingID = target.ID
	r.emitTo(p, SpectateStateChanged{
		PlayerID:    p.ID,
		Watching:    target.ID,
		Code:        target.Code,
		CodeVersion: target.CodeVersion,
	})
	return nil
}

func (r *Session) handleCodeUpdate(connID string, cmd CodeUpdate) error {
	p := r.playerByConn(connID)
	if p == nil {
		return notFound("no player bound to this connection")
	}
	if !r.gameplayPhase() || !p.InPlay() {
		return forbidden("not coding right now")
	}
	if len(cmd.Code) > maxCodePayload {
		return badRequest("code payload above %d bytes", maxCodePayload)
	}
	if retry, ok := r.limiterFor(connID).allow(throttleCodeUpdate, r.now()); !ok {
		return rateLimited(retry)
	}
	if cmd.Version <= p.CodeVersion {
		// out-of-date stream frame, drop without fuss
		return nil
	}

	p.Code = cmd.Code
	p.CodeVersion = cmd.Version
	for _, watcher := range r.players {
		if watcher.SpectatingID == p.ID && watcher.ConnID != "" {
			r.emitTo(watcher, CodeUpdateRelayed{PlayerID: p.ID, Code: cmd.Code, Version: cmd.Version})
		}
	}
	return nil
}

// --- helpers ---

func (r *Session) gameplayPhase() bool {
	return r.phase == PhaseWarmup || r.phase == PhaseMain
}

func (r *Session) limiterFor(connID string) *limiter {
	l, ok := r.limiters[connID]
	if !ok {
		l = newLimiter()
		r.limiters[connID] = l
	}
	return l
}

// refreshStatus recomputes a live player's status from their active debuff.
func (r *Session) refreshStatus(p *Player) {
	if !p.Alive() || p.Status == StatusLobby {
		return
	}
	if p.Debuff != nil {
		p.Status = StatusUnderAttack
	} else {
		p.Status = StatusCoding
	}
}

func (r *Session) appendEvent(text string) {
	entry := EventEntry{Text: text, At: r.now()}
	r.events = append(r.events, entry)
	r.broadcast(EventAppended{Entry: entry})
}

func (r *Session) broadcast(n Notification) {
	for _, p := range r.players {
		if p.ConnID != "" {
			r.config.Emitter.Send(p.ConnID, n)
		}
	}
}

func (r *Session) emitTo(p *Player, n Notification) {
	if p.ConnID != "" {
		r.config.Emitter.Send(p.ConnID, n)
	}
}

func (r *Session) public(p *Player) PlayerPublic {
	return PlayerPublic{
		ID:        p.ID,
		Username:  p.Username,
		Role:      p.Role,
		IsHost:    p.IsHost,
		Status:    p.Status,
		Score:     p.Score,
		Streak:    p.Streak,
		Targeting: p.Targeting,
		StackSize: p.StackSize(),
		Debuff:    p.Debuff,
		Buff:      p.Buff,
		JoinOrder: p.JoinOrder,
		Connected: p.Connected(),
	}
}

func (r *Session) matchPublic() MatchPublic {
	settings := r.settings
	if r.matchID != "" {
		settings = r.matchSettings
	}
	return MatchPublic{
		MatchID:   r.matchID,
		Phase:     r.phase,
		StartAt:   r.startAt,
		EndAt:     r.endAt,
		EndReason: r.endReason,
		Settings:  settings,
	}
}

func (r *Session) snapshotFor(p *Player) RoomSnapshot {
	snap := RoomSnapshot{
		RoomCode: r.Code,
		You:      p.ID,
		Match:    r.matchPublic(),
		Chat:     r.chat,
		Events:   r.events,
		Current:  p.Current,
		Queue:    p.Queue,
	}
	for _, q := range r.players {
		snap.Players = append(snap.Players, r.public(q))
	}
	return snap
}

func (r *Session) summary() RoomSummary {
	return RoomSummary{
		RoomCode:   r.Code,
		Phase:      r.phase,
		Players:    len(r.players),
		MaxPlayers: r.settings.MaxPlayers,
		Settings:   r.settings,
	}
}
