// Package session owns the authoritative run state: which character is
// active, score, lives, per-character resource points, death handling and
// respawn, restart-to-snapshot, and level completion. It is the single
// writer of all of these; every other component requests mutations through
// its operations.
package session

import (
	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/pmorrigan/innersplit/common"
	"github.com/pmorrigan/innersplit/config"
	"github.com/pmorrigan/innersplit/telemetry"
)

// State is the session state machine.
type State int

const (
	// StateNormal: gameplay proceeds.
	StateNormal State = iota
	// StateDeathLocked: debounce window after a death; further death
	// notifications are dropped until the cooldown elapses.
	StateDeathLocked
	// StateRestarting: a scene reload is in flight; portal, switch, death
	// and spend processing are all suppressed until OnSceneLoaded.
	StateRestarting
)

func (s State) String() string {
	switch s {
	case StateDeathLocked:
		return "death-locked"
	case StateRestarting:
		return "restarting"
	default:
		return "normal"
	}
}

// Character is the session's handle on one controllable character.
type Character interface {
	SetControllable(bool)
	TeleportTo(pos cp.Vector)
	Position() cp.Vector
}

// Indicator is an optional visual marker toggled with the active character.
type Indicator interface {
	SetActive(bool)
}

// Loader performs scene loads on the session's behalf. Implementations
// must eventually answer every call with OnSceneLoaded.
type Loader interface {
	ReloadLevel()
	LoadNextLevel()
}

// Bindings is the struct of per-scene references the loader resolves and
// hands over after every load. All fields are soft: a nil character or
// indicator turns the affected operations into no-ops.
type Bindings struct {
	Emotion Character
	Logic   Character

	EmotionSpawn cp.Vector
	LogicSpawn   cp.Vector

	EmotionIndicator Indicator
	LogicIndicator   Indicator

	LevelIndex int
}

// Manager is the session state machine. One instance lives for the whole
// process; scene loads rebind it instead of recreating it.
type Manager struct {
	cfg    config.Session
	tele   *telemetry.Engine
	loader Loader

	state          State
	deathLockTimer int

	activeEmotion bool
	score         int
	lives         int
	points        [2]int
	spent         [2]int
	snapshot      [2]int

	portalEmotion bool
	portalLogic   bool

	b     Bindings
	bound bool
}

// NewManager creates the process-wide session. It starts in
// StateRestarting: nothing is playable until the first OnSceneLoaded.
func NewManager(cfg config.Session, tele *telemetry.Engine, loader Loader) *Manager {
	m := &Manager{
		cfg:           cfg,
		tele:          tele,
		loader:        loader,
		state:         StateRestarting,
		activeEmotion: true,
		lives:         cfg.MaxLives,
	}
	m.points[common.SideEmotion] = cfg.StartingPoints
	m.points[common.SideLogic] = cfg.StartingPoints
	return m
}

// SetConfig hot-applies new session tuning. Lives and points in flight are
// left alone; new values apply from the next reset.
func (m *Manager) SetConfig(cfg config.Session) {
	if m == nil {
		return
	}
	m.cfg = cfg
}

func (m *Manager) State() State        { return m.state }
func (m *Manager) Lives() int          { return m.lives }
func (m *Manager) Score() int          { return m.score }
func (m *Manager) ActiveIsEmotion() bool { return m.activeEmotion }

// Points returns the current resource points for one side.
func (m *Manager) Points(side common.Side) int { return m.points[side] }

// SpentThisLevel returns how many points a side has spent since the level
// snapshot.
func (m *Manager) SpentThisLevel(side common.Side) int { return m.spent[side] }

// AddScore credits the run score (enemy stomps, future pickups).
func (m *Manager) AddScore(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.score += n
}

// SetActiveCharacter makes exactly one character controllable and flips the
// paired indicators. No-op while unbound.
func (m *Manager) SetActiveCharacter(isEmotion bool) {
	if m == nil || !m.bound || m.b.Emotion == nil || m.b.Logic == nil {
		return
	}
	m.activeEmotion = isEmotion
	m.b.Emotion.SetControllable(isEmotion)
	m.b.Logic.SetControllable(!isEmotion)
	if m.b.EmotionIndicator != nil {
		m.b.EmotionIndicator.SetActive(isEmotion)
	}
	if m.b.LogicIndicator != nil {
		m.b.LogicIndicator.SetActive(!isEmotion)
	}
}

// ToggleActiveCharacter switches control to the other character and counts
// the switch in telemetry. Suppressed while a reload is in flight.
func (m *Manager) ToggleActiveCharacter() {
	if m == nil || m.state == StateRestarting || !m.bound {
		return
	}
	m.SetActiveCharacter(!m.activeEmotion)
	m.tele.RegisterSwitch()
}

// TrySpendPoints attempts to pay for an ability. It fails without mutation
// when the side cannot afford the cost or a reload is in flight. Draining
// the pool to zero (or below) forces a restart-to-snapshot, and the spend
// still reports failure: the snapshot restore is what re-establishes the
// pre-spend value.
func (m *Manager) TrySpendPoints(side common.Side, cost int) bool {
	if m == nil || m.state == StateRestarting {
		return false
	}
	if cost > m.points[side] {
		return false
	}
	m.points[side] -= cost
	m.spent[side] += cost
	if m.points[side] <= 0 {
		log.Info("resource pool drained, restarting level", "side", side)
		m.requestRestart()
		return false
	}
	return true
}

// SwapCharacterPositions teleports each character to the other's position.
// Callers pay for this through TrySpendPoints first.
func (m *Manager) SwapCharacterPositions() {
	if m == nil || !m.bound || m.b.Emotion == nil || m.b.Logic == nil {
		return
	}
	emotionPos := m.b.Emotion.Position()
	logicPos := m.b.Logic.Position()
	m.b.Emotion.TeleportTo(logicPos)
	m.b.Logic.TeleportTo(emotionPos)
}

// RegisterDeathAndRespawn handles one death notification. Duplicate
// notifications during the death-lock window or a reload are dropped.
// Losing the last life escalates to a restart-to-snapshot; otherwise the
// named character (or both) teleports back to its spawn.
func (m *Manager) RegisterDeathAndRespawn(who common.CharacterID) {
	if m == nil || m.state != StateNormal {
		return
	}
	m.state = StateDeathLocked
	m.deathLockTimer = m.cfg.DeathLockFrames

	if m.lives > 0 {
		m.lives--
	}
	log.Info("death", "who", who, "lives", m.lives)

	if m.lives == 0 {
		m.requestRestart()
		return
	}

	if !m.bound {
		return
	}
	if who == common.CharacterEmotion || who == common.CharacterBoth {
		if m.b.Emotion != nil {
			m.b.Emotion.TeleportTo(m.b.EmotionSpawn)
		}
	}
	if who == common.CharacterLogic || who == common.CharacterBoth {
		if m.b.Logic != nil {
			m.b.Logic.TeleportTo(m.b.LogicSpawn)
		}
	}
}

// NotifyEnteredPortal marks a character inside its exit portal.
func (m *Manager) NotifyEnteredPortal(who common.CharacterID) {
	if m == nil || m.state == StateRestarting {
		return
	}
	switch who {
	case common.CharacterEmotion:
		m.portalEmotion = true
	case common.CharacterLogic:
		m.portalLogic = true
	}
}

// NotifyExitedPortal clears a character's portal occupancy.
func (m *Manager) NotifyExitedPortal(who common.CharacterID) {
	if m == nil {
		return
	}
	switch who {
	case common.CharacterEmotion:
		m.portalEmotion = false
	case common.CharacterLogic:
		m.portalLogic = false
	}
}

// Tick advances the death-lock cooldown and checks level completion once
// per simulation tick. Completion fires exactly when both characters
// occupy portals at the same time.
func (m *Manager) Tick() {
	if m == nil {
		return
	}

	if m.state == StateDeathLocked {
		m.deathLockTimer--
		if m.deathLockTimer <= 0 {
			m.state = StateNormal
		}
	}

	if m.state != StateNormal {
		return
	}
	if m.portalEmotion && m.portalLogic {
		m.completeLevel()
	}
}

func (m *Manager) completeLevel() {
	res := m.tele.CompleteLevel(m.b.LevelIndex)
	log.Info("level complete",
		"level", m.b.LevelIndex,
		"style", res.Style,
		"logic", res.LogicScore,
		"emotion", res.EmotionScore)
	m.state = StateRestarting
	if m.loader != nil {
		m.loader.LoadNextLevel()
	}
}

func (m *Manager) requestRestart() {
	if m == nil || m.state == StateRestarting {
		return
	}
	m.state = StateRestarting
	if m.loader != nil {
		m.loader.ReloadLevel()
	}
}

// OnSceneLoaded rebinds the session after a scene load. A restart restores
// the level-start point snapshot; a fresh level entry captures a new one.
// Either way lives refill, per-level spend counters zero, portal occupancy
// clears and the Emotion character takes control.
func (m *Manager) OnSceneLoaded(b Bindings, restart bool) {
	if m == nil {
		return
	}
	m.b = b
	m.bound = true
	m.portalEmotion = false
	m.portalLogic = false
	m.deathLockTimer = 0
	m.lives = m.cfg.MaxLives

	if restart {
		m.points = m.snapshot
		m.tele.ResetLevelTelemetry()
	} else {
		m.snapshot = m.points
		m.tele.StartLevel()
	}
	m.spent = [2]int{}

	m.state = StateNormal
	m.SetActiveCharacter(true)

	log.Debug("scene bound",
		"level", b.LevelIndex,
		"restart", restart,
		"emotion_points", m.points[common.SideEmotion],
		"logic_points", m.points[common.SideLogic])
}
