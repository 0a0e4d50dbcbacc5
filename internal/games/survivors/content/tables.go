package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/content.yaml
var defaultContentYAML []byte

// Tables is the full static content set.
type Tables struct {
	StartingSkill  string          `yaml:"starting_skill"`
	Skills         []SkillTemplate `yaml:"skills"`
	Enemies        []EnemyType     `yaml:"enemies"`
	MonsterAffixes []MonsterAffix  `yaml:"monster_affixes"`
	ItemBases      []ItemBase      `yaml:"item_bases"`
	Prefixes       []AffixTemplate `yaml:"prefixes"`
	Suffixes       []AffixTemplate `yaml:"suffixes"`
	Uniques        []UniqueItem    `yaml:"uniques"`
	RareNames      []string        `yaml:"rare_names"`
	RareSuffixes   []string        `yaml:"rare_suffixes"`

	skillIndex map[string]int
	enemyIndex map[string]int
}

// Default returns the embedded content tables.
func Default() (*Tables, error) {
	return Parse(defaultContentYAML)
}

// MustDefault is Default for callers that treat broken embedded content as a programming error.
func MustDefault() *Tables {
	t, err := Default()
	if err != nil {
		panic(fmt.Sprintf("content: embedded tables invalid: %v", err))
	}
	return t
}

// Load reads content from path, or the embedded tables when path is empty.
func Load(path string) (*Tables, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content: %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates a content document.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := Validate(&t); err != nil {
		return nil, err
	}
	t.index()
	return &t, nil
}

func (t *Tables) index() {
	t.skillIndex = make(map[string]int, len(t.Skills))
	for i, s := range t.Skills {
		t.skillIndex[s.ID] = i
	}
	t.enemyIndex = make(map[string]int, len(t.Enemies))
	for i, e := range t.Enemies {
		t.enemyIndex[e.ID] = i
	}
}

// Skill returns the template with the given ID.
func (t *Tables) Skill(id string) (*SkillTemplate, bool) {
	i, ok := t.skillIndex[id]
	if !ok {
		return nil, false
	}
	return &t.Skills[i], true
}

// Enemy returns the enemy type with the given ID.
func (t *Tables) Enemy(id string) (*EnemyType, bool) {
	i, ok := t.enemyIndex[id]
	if !ok {
		return nil, false
	}
	return &t.Enemies[i], true
}

// EnemyByRole returns the first enemy type with the given role.
func (t *Tables) EnemyByRole(role EnemyRole) (*EnemyType, bool) {
	for i := range t.Enemies {
		if t.Enemies[i].Role == role {
			return &t.Enemies[i], true
		}
	}
	return nil, false
}

// Spawnable returns the basic enemy types unlocked at player level.
func (t *Tables) Spawnable(level int) []*EnemyType {
	var out []*EnemyType
	for i := range t.Enemies {
		e := &t.Enemies[i]
		if e.Role == RoleBasic && e.MinLevel <= level {
			out = append(out, e)
		}
	}
	return out
}

// FirstOfKind returns the first skill template of the given kind.
func (t *Tables) FirstOfKind(kind SkillKind) (*SkillTemplate, bool) {
	for i := range t.Skills {
		if t.Skills[i].Kind == kind {
			return &t.Skills[i], true
		}
	}
	return nil, false
}
