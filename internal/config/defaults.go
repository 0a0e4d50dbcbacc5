package config

import (
	_ "embed"
)

//go:embed defaults/survivors.yaml
var defaultSurvivorsYAML []byte

// DefaultSurvivorsConfig returns the hardcoded configuration. It mirrors
// defaults/survivors.yaml and is used when the embedded file cannot be parsed.
func DefaultSurvivorsConfig() SurvivorsConfig {
	return SurvivorsConfig{
		Player: PlayerConfig{
			MaxHP:          150,
			Speed:          3.5,
			PickupRange:    120,
			CritChance:     0.05,
			CritMultiplier: 1.5,
			Acceleration:   0.15,
			Friction:       0.85,
			Size:           24,
		},
		World: WorldConfig{ViewWidth: 1280, ViewHeight: 720},
		Combat: CombatConfig{
			ArmorConstant:          50,
			ContactInvulnFrames:    30,
			ProjectileInvulnFrames: 20,
			ImmunityWindow:         20,
			ImmunitySlots:          8,
			DamageNumberLife:       30,
		},
		Status: StatusConfig{
			FreezeFrames:         90,
			ShockFrames:          180,
			BleedFrames:          180,
			BleedInterval:        30,
			BleedFraction:        0.2,
			SlowFrames:           180,
			ShatterMultiplier:    3,
			ThermalMultiplier:    2,
			SuperconductFraction: 0.5,
			SuperconductRadius:   150,
			SuperconductTargets:  3,
		},
		Spawning: SpawnConfig{
			BaseInterval:       60,
			IntervalPerLevel:   2,
			MinInterval:        20,
			RingJitter:         200,
			HPPerLevel:         5,
			TimeScalePerMinute: 0.2,
			EliteChance:        0.05,
			EliteHP:            5,
			EliteDamage:        1.5,
			EliteSize:          1.4,
			EliteSpeed:         1.2,
			AffixStartSeconds:  60,
			MaxAffixes:         5,
			RegenInterval:      60,
		},
		Boss: BossConfig{
			KillThreshold:  300,
			RespawnKills:   300,
			SpawnDistance:  300,
			ArenaPadding:   50,
			PlayerPadding:  20,
			Phase2HP:       0.6,
			Phase3HP:       0.4,
			MaxPrisms:      4,
			PrismChance:    0.02,
			PrismSpread:    400,
			BeamInterval:   180,
			BeamDelay:      18,
			BeamShards:     3,
			BeamSpeed:      15,
			BeamDamage:     25,
			BeamLife:       60,
			CageMinPrisms:  3,
			CageDamage:     15,
			CageInterval:   30,
			CageSafeRadius: 100,
			Doppelgangers:  2,
			MimicInterval:  120,
			CarapaceHits:   10,
			CarapaceShards: 3,
			ShardSpeed:     6,
			ShardDamage:    15,
			ShardLife:      60,
			RewardGems:     10,
			RewardGemXP:    200,
		},
		Kinetic: KineticConfig{
			MaxCharge:      300,
			ChargePerPixel: 0.2,
			MinDischarge:   0.2,
			MasteryRate:    5,
			StaticArcs:     3,
		},
		Leveling: LevelingConfig{
			FirstThreshold: 100,
			Scaling:        1.25,
			Milestones:     []int{3, 6, 12, 20},
			ChoiceCount:    3,
			GemBaseXP:      10,
			GemPull:        0.15,
			GemSnap:        20,
			AffixXPBonus:   0.5,
		},
		Loot: LootConfig{
			DropChance:      0.005,
			LargeDropChance: 0.08,
			LargeWidth:      30,
			InventorySize:   24,
			PickupRadius:    30,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Progression:  ProgressionConfig{Type: "time", MaxAt: 36000},
			Scaling:      ScalingConfig{SpawnRateMultiplier: 0.5, HPMultiplier: 0.5},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSurvivorsYAML
}
