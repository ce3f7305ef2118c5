package arena

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/codeclash-games/codeclash/internal/arena/match"
	"github.com/codeclash-games/codeclash/internal/arena/problems"
	matchDb "github.com/codeclash-games/codeclash/internal/database/match/database"
	"github.com/codeclash-games/codeclash/internal/logging"
	"github.com/valyala/fastrand"
)

var ErrRoomNotFound = fmt.Errorf("room not found")

func NewManager(config *Config, bank *problems.Bank, judge match.Judge, matchDb *matchDb.DB, emitter match.Emitter) *Manager {
	return &Manager{
		config:  config,
		bank:    bank,
		judge:   judge,
		matchDb: matchDb,
		emitter: emitter,
		rooms:   map[int64]*match.Session{},
	}
}

// Manager is the registry of live rooms. Rooms are fully independent; the
// manager only creates, looks up and evicts them.
type Manager struct {
	mtx sync.RWMutex

	ctx     context.Context
	config  *Config
	bank    *problems.Bank
	judge   match.Judge
	matchDb *matchDb.DB
	emitter match.Emitter
	rooms   map[int64]*match.Session
}

// Run parks the manager on the root context and sweeps the registry until
// shutdown.
func (m *Manager) Run(ctx context.Context) error {
	m.mtx.Lock()
	m.ctx = ctx
	m.mtx.Unlock()

	logger := logging.FromContext(ctx).Named("manager.cleaning")
	ticker := time.NewTicker(m.config.CleaningInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.mtx.RLock()
			logger.Infof("active rooms: %d", len(m.rooms))
			m.mtx.RUnlock()
		}
	}
}

// CreateRoom spins up a new session under a fresh code and starts its actor.
func (m *Manager) CreateRoom(settings match.Settings) (*match.Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("validate settings: %w", err)
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	code, err := m.freeCode()
	if err != nil {
		return nil, err
	}

	session := match.NewSession(match.Config{
		Code:     code,
		Settings: settings,
		Bank:     m.bank,
		Judge:    m.judge,
		Store:    &boltMatchStore{db: m.matchDb},
		Emitter:  m.emitter,
		DoneFn:   m.evict,
		Timeout:  m.config.RoomTimeout,
	})

	m.rooms[code] = session
	session.Run(ctx)
	return session, nil
}

func (m *Manager) Room(code int64) (*match.Session, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	session, ok := m.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return session, nil
}

func (m *Manager) evict(session *match.Session) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	delete(m.rooms, session.Code)
	return nil
}

// freeCode draws an unused 6-digit room code.
func (m *Manager) freeCode() (int64, error) {
	for attempt := 0; attempt < 64; attempt++ {
		code := int64(fastrand.Uint32n(900000)) + 100000
		if _, taken := m.rooms[code]; !taken {
			return code, nil
		}
	}
	return 0, fmt.Errorf("no free room code")
}
