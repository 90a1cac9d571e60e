// Package telemetry accumulates weighted play-style actions per level and
// per run, and classifies the result as logic-leaning, emotion-leaning or
// balanced. It never touches gameplay state; callers feed it events and
// read back classifications at level and run boundaries.
package telemetry

import (
	"github.com/charmbracelet/log"
)

// Style is the inferred play-style classification.
type Style int

const (
	StyleBalanced Style = iota
	StyleLogicDominant
	StyleEmotionDominant
)

func (s Style) String() string {
	switch s {
	case StyleLogicDominant:
		return "logic"
	case StyleEmotionDominant:
		return "emotion"
	default:
		return "balanced"
	}
}

// Config holds the classification thresholds and the default action weight.
type Config struct {
	// MinActionsToInfer is the low-sample guard: below this many total
	// registered actions the classification is always balanced.
	MinActionsToInfer int
	// DominantRatio is the fraction of total actions one side must reach
	// to be declared dominant. Valid range (0.5, 1.0); both sides cannot
	// trigger at once since the ratios sum to 1.
	DominantRatio float64
	// DefaultWeight is used when an action is registered with weight <= 0.
	DefaultWeight int
}

// DefaultConfig mirrors the shipped tuning values.
func DefaultConfig() Config {
	return Config{
		MinActionsToInfer: 3,
		DominantRatio:     0.65,
		DefaultWeight:     1,
	}
}

// LevelResult is one immutable entry in the run history.
type LevelResult struct {
	LevelIndex   int
	LogicScore   int
	EmotionScore int
	Switches     int
	Style        Style
}

// Engine is the style telemetry accumulator. One instance lives for the
// whole process; level accumulators are reset on restarts, run totals and
// the result history only ever grow through CompleteLevel.
type Engine struct {
	cfg Config

	levelLogic    int
	levelEmotion  int
	levelSwitches int

	runLogic    int
	runEmotion  int
	runSwitches int

	history []LevelResult
}

func NewEngine(cfg Config) *Engine {
	if cfg.MinActionsToInfer <= 0 {
		cfg.MinActionsToInfer = DefaultConfig().MinActionsToInfer
	}
	if cfg.DominantRatio <= 0.5 || cfg.DominantRatio >= 1 {
		cfg.DominantRatio = DefaultConfig().DominantRatio
	}
	if cfg.DefaultWeight <= 0 {
		cfg.DefaultWeight = 1
	}
	return &Engine{cfg: cfg}
}

// SetConfig swaps the classification thresholds. Accumulated counts are
// untouched; only future classifications see the new values.
func (e *Engine) SetConfig(cfg Config) {
	if e == nil {
		return
	}
	*e = Engine{
		cfg:           NewEngine(cfg).cfg,
		levelLogic:    e.levelLogic,
		levelEmotion:  e.levelEmotion,
		levelSwitches: e.levelSwitches,
		runLogic:      e.runLogic,
		runEmotion:    e.runEmotion,
		runSwitches:   e.runSwitches,
		history:       e.history,
	}
}

func (e *Engine) weight(w int) int {
	if w <= 0 {
		w = e.cfg.DefaultWeight
	}
	if w < 1 {
		w = 1
	}
	return w
}

// RegisterLogicAction adds an optional, style-expressive logic action.
// Pass weight <= 0 to use the configured default. Callers must not register
// actions that are mandatory to progress; that contract is theirs to keep.
func (e *Engine) RegisterLogicAction(weight int) {
	if e == nil {
		return
	}
	e.levelLogic += e.weight(weight)
}

// RegisterEmotionAction is the emotion-side counterpart of
// RegisterLogicAction.
func (e *Engine) RegisterEmotionAction(weight int) {
	if e == nil {
		return
	}
	e.levelEmotion += e.weight(weight)
}

// RegisterSwitch counts an active-character switch. Informational only; it
// never feeds the style ratio.
func (e *Engine) RegisterSwitch() {
	if e == nil {
		return
	}
	e.levelSwitches++
}

// ResetLevelTelemetry zeroes the per-level accumulators. Run totals and the
// result history are untouched, so restarting a level can never lose or
// double-count run progress.
func (e *Engine) ResetLevelTelemetry() {
	if e == nil {
		return
	}
	e.levelLogic = 0
	e.levelEmotion = 0
	e.levelSwitches = 0
}

// StartLevel marks a fresh level entry. Alias of ResetLevelTelemetry; the
// separate name keeps call sites honest about intent.
func (e *Engine) StartLevel() {
	e.ResetLevelTelemetry()
}

// InferStyle classifies a (logic, emotion) score pair under cfg.
func InferStyle(cfg Config, logicScore, emotionScore int) Style {
	total := logicScore + emotionScore
	if total < cfg.MinActionsToInfer {
		return StyleBalanced
	}
	logicRatio := float64(logicScore) / float64(total)
	if logicRatio >= cfg.DominantRatio {
		return StyleLogicDominant
	}
	if 1-logicRatio >= cfg.DominantRatio {
		return StyleEmotionDominant
	}
	return StyleBalanced
}

// CurrentLevelStyle classifies the in-progress level accumulators.
func (e *Engine) CurrentLevelStyle() Style {
	if e == nil {
		return StyleBalanced
	}
	return InferStyle(e.cfg, e.levelLogic, e.levelEmotion)
}

// LevelScores exposes the in-progress accumulators (logic, emotion,
// switches) for HUD display.
func (e *Engine) LevelScores() (int, int, int) {
	if e == nil {
		return 0, 0, 0
	}
	return e.levelLogic, e.levelEmotion, e.levelSwitches
}

// CompleteLevel finalizes the current level: it classifies the per-level
// accumulators, appends an immutable result record, folds the accumulators
// into the run totals and zeroes them. Call exactly once per level that was
// genuinely finished, never on a restart.
func (e *Engine) CompleteLevel(levelIndex int) LevelResult {
	if e == nil {
		return LevelResult{LevelIndex: levelIndex, Style: StyleBalanced}
	}
	res := LevelResult{
		LevelIndex:   levelIndex,
		LogicScore:   e.levelLogic,
		EmotionScore: e.levelEmotion,
		Switches:     e.levelSwitches,
		Style:        InferStyle(e.cfg, e.levelLogic, e.levelEmotion),
	}
	e.history = append(e.history, res)

	e.runLogic += e.levelLogic
	e.runEmotion += e.levelEmotion
	e.runSwitches += e.levelSwitches
	e.ResetLevelTelemetry()

	log.Debug("level telemetry recorded",
		"level", res.LevelIndex,
		"logic", res.LogicScore,
		"emotion", res.EmotionScore,
		"switches", res.Switches,
		"style", res.Style)
	return res
}

// RunStyle classifies the run totals accumulated across completed levels.
func (e *Engine) RunStyle() Style {
	if e == nil {
		return StyleBalanced
	}
	return InferStyle(e.cfg, e.runLogic, e.runEmotion)
}

// RunTotals returns the folded (logic, emotion, switches) run counters.
func (e *Engine) RunTotals() (int, int, int) {
	if e == nil {
		return 0, 0, 0
	}
	return e.runLogic, e.runEmotion, e.runSwitches
}

// History returns a copy of the ordered per-level result records.
func (e *Engine) History() []LevelResult {
	if e == nil || len(e.history) == 0 {
		return nil
	}
	out := make([]LevelResult, len(e.history))
	copy(out, e.history)
	return out
}
