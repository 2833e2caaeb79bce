package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"timesheet/internal/access"
	"timesheet/internal/domain"
)

// RulesView is what the admin page edits.
type RulesView struct {
	Rules                []domain.AccessRule
	Groups               []string
	LegacyHRGroups       []string
	LegacyEmployeeGroups []string
}

// AccessRules returns the effective rules and every host group.
func (uc *Timesheet) AccessRules(ctx context.Context, actor string) (RulesView, error) {
	if err := uc.requireAdmin(ctx, actor); err != nil {
		return RulesView{}, err
	}
	cfg, err := uc.Rules.Load(ctx)
	if err != nil {
		return RulesView{}, fmt.Errorf("load access rules: %w", err)
	}
	groups, err := uc.Directory.ListGroups(ctx)
	if err != nil {
		return RulesView{}, fmt.Errorf("list groups: %w", err)
	}
	rules := access.EffectiveRules(ctx, uc.Directory, cfg)
	if rules == nil {
		rules = []domain.AccessRule{}
	}
	return RulesView{
		Rules:                rules,
		Groups:               groups,
		LegacyHRGroups:       cfg.LegacyHRGroups,
		LegacyEmployeeGroups: cfg.LegacyEmployeeGroups,
	}, nil
}

// SaveAccessRules normalizes and stores rules together with the derived
// legacy lists.
func (uc *Timesheet) SaveAccessRules(ctx context.Context, actor string, rules []domain.AccessRule) ([]domain.AccessRule, error) {
	if err := uc.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	cfg := access.PrepareForSave(ctx, uc.Directory, rules)
	if err := uc.Rules.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("save access rules: %w", err)
	}
	uc.Log.Info("access rules saved", slog.String("actor", actor), slog.Int("rules", len(cfg.Rules)))
	return cfg.Rules, nil
}

// LegacyField names one flat group list.
type LegacyField string

const (
	LegacyHRGroups       LegacyField = "hr_groups"
	LegacyEmployeeGroups LegacyField = "hr_user_groups"
)

// UpdateLegacyGroup adds or removes one group in a flat list and returns
// the new list.
func (uc *Timesheet) UpdateLegacyGroup(ctx context.Context, actor string, field LegacyField, group string, remove bool) ([]string, error) {
	if err := uc.requireAdmin(ctx, actor); err != nil {
		return nil, err
	}
	group = strings.TrimSpace(group)
	if group == "" {
		return nil, fmt.Errorf("%w: group is required", domain.ErrValidation)
	}
	if !remove {
		ok, err := uc.Directory.GroupExists(ctx, group)
		if err != nil {
			return nil, fmt.Errorf("check group: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGroup, group)
		}
	}
	cfg, err := uc.Rules.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load access rules: %w", err)
	}
	var list *[]string
	switch field {
	case LegacyHRGroups:
		list = &cfg.LegacyHRGroups
	case LegacyEmployeeGroups:
		list = &cfg.LegacyEmployeeGroups
	default:
		return nil, fmt.Errorf("%w: unknown field %q", domain.ErrValidation, field)
	}
	*list = toggle(*list, group, remove)
	if err := uc.Rules.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("save access rules: %w", err)
	}
	uc.Log.Info("legacy group list updated", slog.String("actor", actor), slog.String("field", string(field)), slog.String("group", group), slog.Bool("remove", remove))
	return *list, nil
}

func toggle(list []string, group string, remove bool) []string {
	out := make([]string, 0, len(list)+1)
	found := false
	for _, g := range list {
		if g == group {
			found = true
			if remove {
				continue
			}
		}
		out = append(out, g)
	}
	if !remove && !found {
		out = append(out, group)
	}
	return out
}
