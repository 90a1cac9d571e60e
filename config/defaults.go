package config

// Default returns the shipped tuning values. Load starts from these so a
// partial YAML file only overrides what it names.
func Default() Config {
	return Config{
		Emotion: Emotion{
			MoveSpeed:          3.2,
			FirstJumpForce:     12.0,
			SecondJumpForce:    10.0,
			MaxJumps:           2,
			DashSpeed:          9.0,
			DashDurationFrames: 10,
			DashCooldownFrames: 45,
			StompRayLength:     14,
			StompBounce:        8.0,
			SwapCost:           2,
			ActionWeight:       1,
		},
		Logic: Logic{
			MoveSpeed:            2.6,
			VerticalMovement:     true,
			InteractRange:        48,
			ScanCost:             1,
			ScanRadius:           96,
			RevealDurationFrames: 90,
			ActionWeight:         1,
		},
		Session: Session{
			MaxLives:        3,
			DeathLockFrames: 60,
			StartingPoints:  5,
			StompScore:      50,
		},
		Telemetry: Telemetry{
			MinActionsToInfer: 3,
			DominantRatio:     0.65,
			DefaultWeight:     1,
		},
	}
}
