package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultTablesValid(t *testing.T) {
	tables, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	if _, ok := tables.Skill(tables.StartingSkill); !ok {
		t.Errorf("starting skill %q not indexed", tables.StartingSkill)
	}
	for _, role := range []EnemyRole{RoleBoss, RolePrism, RoleDoppelganger} {
		if _, ok := tables.EnemyByRole(role); !ok {
			t.Errorf("no enemy for role %s", role)
		}
	}
	if len(tables.Spawnable(1)) != 3 {
		t.Errorf("Spawnable(1) = %d types, expected 3 (golem locked)", len(tables.Spawnable(1)))
	}
	if len(tables.Spawnable(4)) != 4 {
		t.Errorf("Spawnable(4) = %d types, expected 4", len(tables.Spawnable(4)))
	}
}

func TestEffectiveFoldsPointsWithoutMutation(t *testing.T) {
	tables := MustDefault()
	ice, _ := tables.Skill("icebolt")
	base := ice.Base

	stats, augs := ice.Effective(3, map[string]int{"dmg_1": 2, "count_1": 1, "aug_storm": 1})

	if stats.Damage != 45+3*2+10*2 {
		t.Errorf("Damage = %v, expected %v", stats.Damage, 45+6+20)
	}
	if stats.ProjectileCount != 2 {
		t.Errorf("ProjectileCount = %v, expected 2", stats.ProjectileCount)
	}
	if !augs[AugBladeStorm] {
		t.Error("aug_bladestorm should be unlocked")
	}
	if ice.Base != base {
		t.Error("Effective mutated the template")
	}

	_, none := ice.Effective(1, nil)
	if len(none) != 0 {
		t.Errorf("no points should unlock no augments, got %v", none)
	}
}

func TestValidateTree(t *testing.T) {
	tests := []struct {
		name string
		tree []Node
		code string
	}{
		{
			name: "valid diamond",
			tree: []Node{
				{ID: "a", MaxPoints: 1},
				{ID: "b", MaxPoints: 1, Prerequisites: []string{"a"}},
				{ID: "c", MaxPoints: 1, Prerequisites: []string{"a"}},
				{ID: "d", MaxPoints: 1, Prerequisites: []string{"b", "c"}},
			},
		},
		{
			name: "cycle",
			tree: []Node{
				{ID: "a", MaxPoints: 1, Prerequisites: []string{"c"}},
				{ID: "b", MaxPoints: 1, Prerequisites: []string{"a"}},
				{ID: "c", MaxPoints: 1, Prerequisites: []string{"b"}},
			},
			code: "CYCLE",
		},
		{
			name: "self loop",
			tree: []Node{{ID: "a", MaxPoints: 1, Prerequisites: []string{"a"}}},
			code: "CYCLE",
		},
		{
			name: "dangling",
			tree: []Node{{ID: "a", MaxPoints: 1, Prerequisites: []string{"ghost"}}},
			code: "DANGLING_PREREQUISITE",
		},
		{
			name: "duplicate",
			tree: []Node{{ID: "a", MaxPoints: 1}, {ID: "a", MaxPoints: 2}},
			code: "DUPLICATE_NODE",
		},
		{
			name: "zero cap",
			tree: []Node{{ID: "a", MaxPoints: 0}},
			code: "INVALID_NODE",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTree(&SkillTemplate{ID: "s", Tree: tc.tree})
			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Code != tc.code {
				t.Errorf("code = %s, expected %s", ve.Code, tc.code)
			}
		})
	}
}

func TestParseRejectsBrokenContent(t *testing.T) {
	tests := []struct {
		name string
		edit func(string) string
		code string
	}{
		{"unknown starting skill", func(s string) string {
			return strings.Replace(s, "starting_skill: basic_attack", "starting_skill: nope", 1)
		}, "UNKNOWN_STARTING_SKILL"},
		{"missing boss", func(s string) string {
			return strings.Replace(s, "role: boss", "role: basic", 1)
		}, "MISSING_ROLE"},
		{"bad tier", func(s string) string {
			return strings.Replace(s, "{tier: 5, name: Heavy, min: 0.10, max: 0.19}", "{tier: 5, name: Heavy, min: 0.5, max: 0.1}", 1)
		}, "INVALID_TIER"},
		{"unknown kind", func(s string) string {
			return strings.Replace(s, "kind: orbit", "kind: laser", 1)
		}, "UNKNOWN_KIND"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.edit(string(defaultContentYAML))))
			var ve ValidationError
			if !errors.As(err, &ve) || ve.Code != tc.code {
				t.Errorf("Parse() error = %v, expected code %s", err, tc.code)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	if err := os.WriteFile(path, defaultContentYAML, 0o600); err != nil {
		t.Fatal(err)
	}
	tables, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(tables.Skills) != 5 {
		t.Errorf("loaded %d skills, expected 5", len(tables.Skills))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestAffixTemplateAllows(t *testing.T) {
	tables := MustDefault()
	var speed *AffixTemplate
	for i := range tables.Suffixes {
		if tables.Suffixes[i].Stat == StatSpeed {
			speed = &tables.Suffixes[i]
		}
	}
	if speed == nil {
		t.Fatal("speed suffix missing")
	}
	if !speed.Allows(SlotBoots) || speed.Allows(SlotWeapon) {
		t.Error("movement speed should only roll on boots")
	}
	if !StatCritChance.IsRatio() || StatMaxHP.IsRatio() {
		t.Error("IsRatio classification wrong")
	}
}
