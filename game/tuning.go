package game

import (
	"fmt"
	"time"
)

// MaxBots bounds the bot count. Hunting bots scan every entity each tick,
// so the cost grows with the square of the count.
const MaxBots = 64

// Bot movement policies.
const (
	PolicyJitter = "jitter"
	PolicyHunter = "hunter"
)

// Tuning holds every gameplay constant. DefaultTuning returns the values the
// final prototype shipped with; a YAML file may override any of them.
type Tuning struct {
	FastTick        time.Duration `yaml:"fast_tick"`
	SlowTick        time.Duration `yaml:"slow_tick"`
	MaxCatchUpSteps int           `yaml:"max_catch_up_steps"`

	HalfWorld  float64 `yaml:"half_world"`
	ViewWidth  float64 `yaml:"view_width"`
	ViewHeight float64 `yaml:"view_height"`

	MaxHealth       float64 `yaml:"max_health"`
	MaxStamina      float64 `yaml:"max_stamina"`
	WalkSpeed       float64 `yaml:"walk_speed"`
	FlySpeed        float64 `yaml:"fly_speed"`
	StaminaDrain    float64 `yaml:"stamina_drain"` // per fast tick while flying
	StaminaRegen    float64 `yaml:"stamina_regen"` // per fast tick while walking
	CollisionRadius float64 `yaml:"collision_radius"`

	PickupReach  float64 `yaml:"pickup_reach"`
	AttackRange  float64 `yaml:"attack_range"`
	AttackDamage float64 `yaml:"attack_damage"`
	HealReach    float64 `yaml:"heal_reach"`
	HealAmount   float64 `yaml:"heal_amount"`

	Bots              int           `yaml:"bots"`
	BotPolicy         string        `yaml:"bot_policy"`
	BotHealth         float64       `yaml:"bot_health"`
	BotSpeed          float64       `yaml:"bot_speed"`
	BotJitter         float64       `yaml:"bot_jitter"`
	BotAggroRange     float64       `yaml:"bot_aggro_range"`
	BotAttackRange    float64       `yaml:"bot_attack_range"`
	BotAttackDamage   float64       `yaml:"bot_attack_damage"`
	BotAttackCooldown time.Duration `yaml:"bot_attack_cooldown"`

	BossHealth      float64 `yaml:"boss_health"`
	BossSpeed       float64 `yaml:"boss_speed"`
	BossAggroRange  float64 `yaml:"boss_aggro_range"`
	BossAttackRange float64 `yaml:"boss_attack_range"`
	BossDamage      float64 `yaml:"boss_damage"`

	HazardReach         float64 `yaml:"hazard_reach"`
	HazardDamage        float64 `yaml:"hazard_damage"`
	FlightEvadesHazards bool    `yaml:"flight_evades_hazards"`

	ZoneStartSize      float64       `yaml:"zone_start_size"`
	ZoneMinSize        float64       `yaml:"zone_min_size"`
	ZoneShrinkAmount   float64       `yaml:"zone_shrink_amount"`
	ZoneFirstShrink    time.Duration `yaml:"zone_first_shrink"`
	ZoneShrinkInterval time.Duration `yaml:"zone_shrink_interval"`
	ZoneMaxShift       float64       `yaml:"zone_max_shift"`
	ZoneDamage         float64       `yaml:"zone_damage"` // per slow tick
}

func DefaultTuning() Tuning {
	return Tuning{
		FastTick:        50 * time.Millisecond,
		SlowTick:        time.Second,
		MaxCatchUpSteps: 10,

		HalfWorld:  1200,
		ViewWidth:  800,
		ViewHeight: 600,

		MaxHealth:       100,
		MaxStamina:      100,
		WalkSpeed:       6,
		FlySpeed:        12,
		StaminaDrain:    1,
		StaminaRegen:    0.5,
		CollisionRadius: 15,

		PickupReach:  40,
		AttackRange:  100,
		AttackDamage: 25,
		HealReach:    40,
		HealAmount:   2,

		Bots:              8,
		BotPolicy:         PolicyHunter,
		BotHealth:         100,
		BotSpeed:          4,
		BotJitter:         3,
		BotAggroRange:     400,
		BotAttackRange:    30,
		BotAttackDamage:   5,
		BotAttackCooldown: 500 * time.Millisecond,

		BossHealth:      300,
		BossSpeed:       2,
		BossAggroRange:  500,
		BossAttackRange: 80,
		BossDamage:      10,

		HazardReach:  60,
		HazardDamage: 5,

		ZoneStartSize:      2400,
		ZoneMinSize:        300,
		ZoneShrinkAmount:   400,
		ZoneFirstShrink:    5 * time.Second,
		ZoneShrinkInterval: 15 * time.Second,
		ZoneMaxShift:       100,
		ZoneDamage:         10,
	}
}

// SlowEvery is the number of fast ticks per slow tick.
func (t Tuning) SlowEvery() int {
	n := int(t.SlowTick / t.FastTick)
	if n <= 0 {
		n = 1
	}
	return n
}

func (t Tuning) Validate() error {
	if t.FastTick <= 0 {
		return fmt.Errorf("fast_tick must be > 0, got %s", t.FastTick)
	}
	if t.SlowTick < t.FastTick {
		return fmt.Errorf("slow_tick %s shorter than fast_tick %s", t.SlowTick, t.FastTick)
	}
	if t.MaxCatchUpSteps <= 0 {
		return fmt.Errorf("max_catch_up_steps must be > 0, got %d", t.MaxCatchUpSteps)
	}
	if t.HalfWorld <= 0 {
		return fmt.Errorf("half_world must be > 0, got %v", t.HalfWorld)
	}
	if t.MaxHealth <= 0 || t.MaxStamina <= 0 {
		return fmt.Errorf("max_health and max_stamina must be > 0")
	}
	if t.Bots < 0 || t.Bots > MaxBots {
		return fmt.Errorf("bots must be in [0, %d], got %d", MaxBots, t.Bots)
	}
	switch t.BotPolicy {
	case PolicyJitter, PolicyHunter:
	default:
		return fmt.Errorf("unknown bot_policy %q", t.BotPolicy)
	}
	if t.BotAttackCooldown < 0 {
		return fmt.Errorf("bot_attack_cooldown must be >= 0, got %s", t.BotAttackCooldown)
	}
	if t.ZoneMinSize <= 0 || t.ZoneMinSize > t.ZoneStartSize {
		return fmt.Errorf("zone_min_size %v must be in (0, zone_start_size %v]", t.ZoneMinSize, t.ZoneStartSize)
	}
	if t.ZoneShrinkAmount <= 0 {
		return fmt.Errorf("zone_shrink_amount must be > 0, got %v", t.ZoneShrinkAmount)
	}
	if t.ZoneShrinkInterval <= 0 {
		return fmt.Errorf("zone_shrink_interval must be > 0, got %s", t.ZoneShrinkInterval)
	}
	return nil
}
