package content

import (
	"fmt"
	"strings"
)

// ValidationError contains details about a content validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

var knownStats = map[Stat]bool{
	StatMaxHP: true, StatSpeed: true, StatArmor: true, StatPickupRange: true,
	StatDamageMult: true, StatAttackSpeedMult: true, StatCritChance: true, StatCritMultiplier: true,
	StatPhysDamageMult: true, StatColdDamageMult: true, StatLightningDamMult: true,
}

// Validate checks a content document for structural errors.
// Checks:
//   - Skills have unique IDs, a known kind and a positive max rank
//   - Every skill tree is a DAG with no dangling prerequisites
//   - The starting skill exists
//   - Enemy IDs are unique and the boss encounter roles are present
//   - Item bases exist and affix tiers have sane ranges
func Validate(t *Tables) error {
	if err := validateSkills(t); err != nil {
		return err
	}
	if err := validateEnemies(t); err != nil {
		return err
	}
	return validateItems(t)
}

func validateSkills(t *Tables) error {
	if len(t.Skills) == 0 {
		return ValidationError{Code: "NO_SKILLS", Message: "content defines no skills"}
	}

	seen := make(map[string]bool)
	for i := range t.Skills {
		s := &t.Skills[i]
		if s.ID == "" {
			return ValidationError{Code: "MISSING_ID", Message: fmt.Sprintf("skill #%d has no id", i)}
		}
		if seen[s.ID] {
			return ValidationError{Code: "DUPLICATE_SKILL", Message: fmt.Sprintf("skill %q defined twice", s.ID)}
		}
		seen[s.ID] = true

		switch s.Kind {
		case KindMelee, KindProjectile, KindAoE, KindOrbit, KindKinetic:
		default:
			return ValidationError{Code: "UNKNOWN_KIND", Message: fmt.Sprintf("skill %q has unknown kind %q", s.ID, s.Kind)}
		}
		if s.MaxRank < 1 {
			return ValidationError{Code: "INVALID_RANK", Message: fmt.Sprintf("skill %q max_rank must be >= 1", s.ID)}
		}
		if err := ValidateTree(s); err != nil {
			return err
		}
	}

	if !seen[t.StartingSkill] {
		return ValidationError{
			Code:    "UNKNOWN_STARTING_SKILL",
			Message: fmt.Sprintf("starting skill %q is not defined", t.StartingSkill),
		}
	}
	return nil
}

// ValidateTree checks that a skill tree is a DAG keyed by unique node IDs.
func ValidateTree(s *SkillTemplate) error {
	nodes := make(map[string]*Node, len(s.Tree))
	for i := range s.Tree {
		n := &s.Tree[i]
		if _, dup := nodes[n.ID]; dup || n.ID == "" {
			return ValidationError{Code: "DUPLICATE_NODE", Message: fmt.Sprintf("skill %q: node %q empty or defined twice", s.ID, n.ID)}
		}
		if n.MaxPoints < 1 {
			return ValidationError{Code: "INVALID_NODE", Message: fmt.Sprintf("skill %q: node %q max_points must be >= 1", s.ID, n.ID)}
		}
		nodes[n.ID] = n
	}

	for _, n := range s.Tree {
		for _, p := range n.Prerequisites {
			if _, ok := nodes[p]; !ok {
				return ValidationError{
					Code:    "DANGLING_PREREQUISITE",
					Message: fmt.Sprintf("skill %q: node %q requires unknown node %q", s.ID, n.ID, p),
				}
			}
		}
	}

	// Depth-first search with three colors; a gray node reached again closes a cycle.
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(nodes))
	var path []string

	var visit func(id string) error
	visit = func(id string) error {
		color[id] = gray
		path = append(path, id)
		for _, p := range nodes[id].Prerequisites {
			switch color[p] {
			case gray:
				return ValidationError{
					Code:    "CYCLE",
					Message: fmt.Sprintf("skill %q: prerequisite cycle %s -> %s", s.ID, strings.Join(path, " -> "), p),
				}
			case white:
				if err := visit(p); err != nil {
					return err
				}
			}
		}
		path = path[:len(path)-1]
		color[id] = black
		return nil
	}

	for _, n := range s.Tree {
		if color[n.ID] == white {
			if err := visit(n.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateEnemies(t *Tables) error {
	seen := make(map[string]bool)
	roles := make(map[EnemyRole]bool)
	for _, e := range t.Enemies {
		if seen[e.ID] {
			return ValidationError{Code: "DUPLICATE_ENEMY", Message: fmt.Sprintf("enemy %q defined twice", e.ID)}
		}
		seen[e.ID] = true
		if e.HP <= 0 || e.Size <= 0 {
			return ValidationError{Code: "INVALID_ENEMY", Message: fmt.Sprintf("enemy %q needs positive hp and size", e.ID)}
		}
		roles[e.Role] = true
	}

	for _, r := range []EnemyRole{RoleBasic, RoleBoss, RolePrism, RoleDoppelganger} {
		if !roles[r] {
			return ValidationError{Code: "MISSING_ROLE", Message: fmt.Sprintf("no enemy with role %q", r)}
		}
	}
	return nil
}

func validateItems(t *Tables) error {
	if len(t.ItemBases) == 0 {
		return ValidationError{Code: "NO_ITEM_BASES", Message: "content defines no item bases"}
	}

	check := func(kind string, list []AffixTemplate) error {
		for _, a := range list {
			if !knownStats[a.Stat] {
				return ValidationError{Code: "UNKNOWN_STAT", Message: fmt.Sprintf("%s affix uses unknown stat %q", kind, a.Stat)}
			}
			for _, tier := range a.Tiers {
				if tier.Tier < 1 || tier.Tier > 5 || tier.Min > tier.Max {
					return ValidationError{
						Code:    "INVALID_TIER",
						Message: fmt.Sprintf("%s affix %q tier %d has range [%v, %v]", kind, a.Stat, tier.Tier, tier.Min, tier.Max),
					}
				}
			}
		}
		return nil
	}
	if err := check("prefix", t.Prefixes); err != nil {
		return err
	}
	if err := check("suffix", t.Suffixes); err != nil {
		return err
	}

	for _, u := range t.Uniques {
		for _, m := range u.Modifiers {
			if !knownStats[m.Stat] {
				return ValidationError{Code: "UNKNOWN_STAT", Message: fmt.Sprintf("unique %q uses unknown stat %q", u.Name, m.Stat)}
			}
		}
	}
	return nil
}
