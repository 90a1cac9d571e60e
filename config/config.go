// Package config provides YAML-based tuning for the character controllers,
// the session manager and the telemetry engine, with live reload support.
package config

// Emotion contains the movement and ability tuning for the Emotion
// character.
type Emotion struct {
	MoveSpeed float64 `yaml:"move_speed"`
	// FirstJumpForce/SecondJumpForce are upward impulse magnitudes. The
	// first jump from the ground uses the former, every further jump while
	// the jump counter is under MaxJumps uses the latter.
	FirstJumpForce  float64 `yaml:"first_jump_force"`
	SecondJumpForce float64 `yaml:"second_jump_force"`
	MaxJumps        int     `yaml:"max_jumps"`

	DashSpeed          float64 `yaml:"dash_speed"`
	DashDurationFrames int     `yaml:"dash_duration_frames"`
	DashCooldownFrames int     `yaml:"dash_cooldown_frames"`

	StompRayLength float64 `yaml:"stomp_ray_length"`
	StompBounce    float64 `yaml:"stomp_bounce"`

	SwapCost     int `yaml:"swap_cost"`
	ActionWeight int `yaml:"action_weight"`
}

// Logic contains the movement and ability tuning for the Logic character.
type Logic struct {
	MoveSpeed float64 `yaml:"move_speed"`
	// VerticalMovement gates the up/down axis; when false the Logic
	// character can only move horizontally.
	VerticalMovement bool `yaml:"vertical_movement"`

	InteractRange float64 `yaml:"interact_range"`

	ScanCost             int     `yaml:"scan_cost"`
	ScanRadius           float64 `yaml:"scan_radius"`
	RevealDurationFrames int     `yaml:"reveal_duration_frames"`

	ActionWeight int `yaml:"action_weight"`
}

// Session contains lives and resource-point tuning.
type Session struct {
	MaxLives        int `yaml:"max_lives"`
	DeathLockFrames int `yaml:"death_lock_frames"`
	StartingPoints  int `yaml:"starting_points"`
	StompScore      int `yaml:"stomp_score"`
}

// Telemetry contains the style-classification thresholds.
type Telemetry struct {
	MinActionsToInfer int     `yaml:"min_actions_to_infer"`
	DominantRatio     float64 `yaml:"dominant_ratio"`
	DefaultWeight     int     `yaml:"default_weight"`
}

// Config is the root tuning document.
type Config struct {
	Emotion   Emotion   `yaml:"emotion"`
	Logic     Logic     `yaml:"logic"`
	Session   Session   `yaml:"session"`
	Telemetry Telemetry `yaml:"telemetry"`
}
