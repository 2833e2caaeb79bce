package access

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"timesheet/internal/domain"
	"timesheet/internal/ports"
)

// LegacyRuleID names the rule synthesized from the flat group lists.
const LegacyRuleID = "legacy"

// CleanGroups trims, drops empties and duplicates, and keeps only groups
// the directory knows. Lookup failures drop the group.
func CleanGroups(ctx context.Context, dir ports.GroupDirectory, groups []string) []string {
	seen := make(map[string]bool, len(groups))
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		ok, err := dir.GroupExists(ctx, g)
		if err != nil || !ok {
			continue
		}
		out = append(out, g)
	}
	return out
}

// EffectiveRules returns the sanitized structured rules, or a single rule
// synthesized from the legacy lists when none survive.
func EffectiveRules(ctx context.Context, dir ports.GroupDirectory, cfg domain.AccessConfig) []domain.AccessRule {
	var clean []domain.AccessRule
	for _, r := range cfg.Rules {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			continue
		}
		hr := CleanGroups(ctx, dir, r.HRGroups)
		if len(hr) == 0 {
			continue
		}
		clean = append(clean, domain.AccessRule{ID: id, HRGroups: hr, EmployeeGroups: CleanGroups(ctx, dir, r.EmployeeGroups)})
	}
	if len(clean) > 0 {
		return clean
	}
	hr := CleanGroups(ctx, dir, cfg.LegacyHRGroups)
	if len(hr) == 0 {
		return nil
	}
	return []domain.AccessRule{{
		ID:             LegacyRuleID,
		HRGroups:       hr,
		EmployeeGroups: CleanGroups(ctx, dir, cfg.LegacyEmployeeGroups),
	}}
}

// PrepareForSave normalizes submitted rules, assigns ids to new rules and
// derives the legacy lists as the union of each side.
func PrepareForSave(ctx context.Context, dir ports.GroupDirectory, rules []domain.AccessRule) domain.AccessConfig {
	cfg := domain.AccessConfig{Rules: []domain.AccessRule{}}
	hrSeen := map[string]bool{}
	empSeen := map[string]bool{}
	for _, r := range rules {
		hr := CleanGroups(ctx, dir, r.HRGroups)
		if len(hr) == 0 {
			continue
		}
		emp := CleanGroups(ctx, dir, r.EmployeeGroups)
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = uuid.NewString()
		}
		cfg.Rules = append(cfg.Rules, domain.AccessRule{ID: id, HRGroups: hr, EmployeeGroups: emp})
		cfg.LegacyHRGroups = appendUnseen(cfg.LegacyHRGroups, hrSeen, hr)
		cfg.LegacyEmployeeGroups = appendUnseen(cfg.LegacyEmployeeGroups, empSeen, emp)
	}
	return cfg
}

func appendUnseen(dst []string, seen map[string]bool, src []string) []string {
	for _, s := range src {
		if !seen[s] {
			seen[s] = true
			dst = append(dst, s)
		}
	}
	return dst
}

// HRGroups is the union of the HR side of all rules, in rule order.
func HRGroups(rules []domain.AccessRule) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range rules {
		out = appendUnseen(out, seen, r.HRGroups)
	}
	return out
}
