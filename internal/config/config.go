// Package config provides YAML-based tuning configuration and difficulty
// management for the survivors simulation.
package config

// SurvivorsConfig contains every tunable number of a run.
type SurvivorsConfig struct {
	// ContentPath points at a content YAML file overriding the embedded tables.
	ContentPath string `yaml:"content_path"`

	Player     PlayerConfig     `yaml:"player"`
	World      WorldConfig      `yaml:"world"`
	Combat     CombatConfig     `yaml:"combat"`
	Status     StatusConfig     `yaml:"status"`
	Spawning   SpawnConfig      `yaml:"spawning"`
	Boss       BossConfig       `yaml:"boss"`
	Kinetic    KineticConfig    `yaml:"kinetic"`
	Leveling   LevelingConfig   `yaml:"leveling"`
	Loot       LootConfig       `yaml:"loot"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayerConfig defines base player stats before equipment.
type PlayerConfig struct {
	MaxHP          float64 `yaml:"max_hp"`
	Speed          float64 `yaml:"speed"`
	Armor          float64 `yaml:"armor"`
	PickupRange    float64 `yaml:"pickup_range"`
	CritChance     float64 `yaml:"crit_chance"`
	CritMultiplier float64 `yaml:"crit_multiplier"`
	Acceleration   float64 `yaml:"acceleration"` // fraction of speed added per frame
	Friction       float64 `yaml:"friction"`
	Size           float64 `yaml:"size"`
}

// WorldConfig defines the visible play area in world pixels.
type WorldConfig struct {
	ViewWidth  float64 `yaml:"view_width"`
	ViewHeight float64 `yaml:"view_height"`
}

// CombatConfig defines damage mitigation and hit throttling.
type CombatConfig struct {
	ArmorConstant          float64 `yaml:"armor_constant"`
	ContactInvulnFrames    int     `yaml:"contact_invuln_frames"`
	ProjectileInvulnFrames int     `yaml:"projectile_invuln_frames"`
	ImmunityWindow         int     `yaml:"immunity_window"`
	ImmunitySlots          int     `yaml:"immunity_slots"`
	DamageNumberLife       int     `yaml:"damage_number_life"`
}

// StatusConfig defines status durations and reaction strengths.
type StatusConfig struct {
	FreezeFrames         int     `yaml:"freeze_frames"`
	ShockFrames          int     `yaml:"shock_frames"`
	BleedFrames          int     `yaml:"bleed_frames"`
	BleedInterval        int     `yaml:"bleed_interval"`
	BleedFraction        float64 `yaml:"bleed_fraction"` // damage per tick as a fraction of the hit
	SlowFrames           int     `yaml:"slow_frames"`
	ShatterMultiplier    float64 `yaml:"shatter_multiplier"`
	ThermalMultiplier    float64 `yaml:"thermal_multiplier"`
	SuperconductFraction float64 `yaml:"superconduct_fraction"`
	SuperconductRadius   float64 `yaml:"superconduct_radius"`
	SuperconductTargets  int     `yaml:"superconduct_targets"`
}

// SpawnConfig defines regular enemy spawning and scaling.
type SpawnConfig struct {
	BaseInterval       int     `yaml:"base_interval"`
	IntervalPerLevel   int     `yaml:"interval_per_level"`
	MinInterval        int     `yaml:"min_interval"`
	RingJitter         float64 `yaml:"ring_jitter"`
	HPPerLevel         float64 `yaml:"hp_per_level"`
	TimeScalePerMinute float64 `yaml:"time_scale_per_minute"`
	EliteChance        float64 `yaml:"elite_chance"`
	EliteHP            float64 `yaml:"elite_hp"`
	EliteDamage        float64 `yaml:"elite_damage"`
	EliteSize          float64 `yaml:"elite_size"`
	EliteSpeed         float64 `yaml:"elite_speed"`
	AffixStartSeconds  int     `yaml:"affix_start_seconds"`
	MaxAffixes         int     `yaml:"max_affixes"`
	RegenInterval      int     `yaml:"regen_interval"`
}

// BossConfig defines the boss encounter.
type BossConfig struct {
	KillThreshold  int     `yaml:"kill_threshold"`
	RespawnKills   int     `yaml:"respawn_kills"`
	SpawnDistance  float64 `yaml:"spawn_distance"`
	ArenaPadding   float64 `yaml:"arena_padding"`
	PlayerPadding  float64 `yaml:"player_padding"`
	Phase2HP       float64 `yaml:"phase2_hp"`
	Phase3HP       float64 `yaml:"phase3_hp"`
	MaxPrisms      int     `yaml:"max_prisms"`
	PrismChance    float64 `yaml:"prism_chance"`
	PrismSpread    float64 `yaml:"prism_spread"`
	BeamInterval   int     `yaml:"beam_interval"`
	BeamDelay      int     `yaml:"beam_delay"`
	BeamShards     int     `yaml:"beam_shards"`
	BeamSpeed      float64 `yaml:"beam_speed"`
	BeamDamage     float64 `yaml:"beam_damage"`
	BeamLife       int     `yaml:"beam_life"`
	CageMinPrisms  int     `yaml:"cage_min_prisms"`
	CageDamage     float64 `yaml:"cage_damage"`
	CageInterval   int     `yaml:"cage_interval"`
	CageSafeRadius float64 `yaml:"cage_safe_radius"`
	Doppelgangers  int     `yaml:"doppelgangers"`
	MimicInterval  int     `yaml:"mimic_interval"`
	CarapaceHits   int     `yaml:"carapace_hits"`
	CarapaceShards int     `yaml:"carapace_shards"`
	ShardSpeed     float64 `yaml:"shard_speed"`
	ShardDamage    float64 `yaml:"shard_damage"`
	ShardLife      int     `yaml:"shard_life"`
	RewardGems     int     `yaml:"reward_gems"`
	RewardGemXP    float64 `yaml:"reward_gem_xp"`
}

// KineticConfig defines charge and discharge of movement-charged skills.
type KineticConfig struct {
	MaxCharge      float64 `yaml:"max_charge"`
	ChargePerPixel float64 `yaml:"charge_per_pixel"`
	MinDischarge   float64 `yaml:"min_discharge"` // fraction of max charge
	MasteryRate    float64 `yaml:"mastery_rate"`
	StaticArcs     int     `yaml:"static_arcs"`
}

// LevelingConfig defines experience and level-up rewards.
type LevelingConfig struct {
	FirstThreshold float64 `yaml:"first_threshold"`
	Scaling        float64 `yaml:"scaling"`
	Milestones     []int   `yaml:"milestones"`
	ChoiceCount    int     `yaml:"choice_count"`
	GemBaseXP      float64 `yaml:"gem_base_xp"`
	GemPull        float64 `yaml:"gem_pull"`
	GemSnap        float64 `yaml:"gem_snap"`
	AffixXPBonus   float64 `yaml:"affix_xp_bonus"`
}

// LootConfig defines drops and inventory.
type LootConfig struct {
	DropChance      float64 `yaml:"drop_chance"`
	LargeDropChance float64 `yaml:"large_drop_chance"`
	LargeWidth      float64 `yaml:"large_width"`
	InventorySize   int     `yaml:"inventory_size"`
	PickupRadius    float64 `yaml:"pickup_radius"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "kills", "time", or "none"
	MaxAt int    `yaml:"max_at"` // kills or frames at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpawnRateMultiplier float64 `yaml:"spawn_rate_multiplier"` // spawn rate added at max difficulty
	HPMultiplier        float64 `yaml:"hp_multiplier"`         // enemy HP added at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *SurvivorsConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}
