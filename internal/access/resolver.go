// Package access decides which HR users may see which employees, based on
// rules mapping HR groups to employee groups.
package access

import (
	"context"
	"log/slog"
	"sort"

	"timesheet/internal/domain"
	"timesheet/internal/ports"
)

type memberKey struct{ user, group string }

// Resolver evaluates one snapshot of rules. It memoizes membership lookups
// and is meant to live for a single request; it is not safe for
// concurrent use.
type Resolver struct {
	rules   []domain.AccessRule
	dir     ports.GroupDirectory
	log     *slog.Logger
	members map[memberKey]bool
}

func NewResolver(rules []domain.AccessRule, dir ports.GroupDirectory, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{rules: rules, dir: dir, log: log, members: map[memberKey]bool{}}
}

// Rules returns the rules the resolver evaluates.
func (r *Resolver) Rules() []domain.AccessRule { return r.rules }

// isMember treats lookup failures as non-membership.
func (r *Resolver) isMember(ctx context.Context, uid, group string) bool {
	if uid == "" || group == "" {
		return false
	}
	k := memberKey{uid, group}
	if v, ok := r.members[k]; ok {
		return v
	}
	ok, err := r.dir.IsMember(ctx, uid, group)
	if err != nil {
		r.log.Warn("group membership lookup failed", slog.String("user", uid), slog.String("group", group), slog.Any("err", err))
		ok = false
	}
	r.members[k] = ok
	return ok
}

func (r *Resolver) matches(ctx context.Context, uid string, rule domain.AccessRule) bool {
	for _, g := range rule.HRGroups {
		if r.isMember(ctx, uid, g) {
			return true
		}
	}
	return false
}

// IsHR reports whether uid belongs to an HR group of any rule.
func (r *Resolver) IsHR(ctx context.Context, uid string) bool {
	for _, rule := range r.rules {
		if r.matches(ctx, uid, rule) {
			return true
		}
	}
	return false
}

// AllowedEmployeeGroups is the union of employee groups over every rule
// whose HR side contains hrUID.
func (r *Resolver) AllowedEmployeeGroups(ctx context.Context, hrUID string) []string {
	seen := map[string]bool{}
	var out []string
	for _, rule := range r.rules {
		if !r.matches(ctx, hrUID, rule) {
			continue
		}
		for _, g := range rule.EmployeeGroups {
			if g != "" && !seen[g] {
				seen[g] = true
				out = append(out, g)
			}
		}
	}
	return out
}

// CanAccess allows self access, and HR access to members of an allowed
// employee group.
func (r *Resolver) CanAccess(ctx context.Context, actor, target string) bool {
	if actor == "" || target == "" {
		return false
	}
	if actor == target {
		return true
	}
	for _, g := range r.AllowedEmployeeGroups(ctx, actor) {
		if r.isMember(ctx, target, g) {
			return true
		}
	}
	return false
}

// AccessibleUsers lists every member of the allowed employee groups,
// sorted by display name in case-insensitive natural order.
func (r *Resolver) AccessibleUsers(ctx context.Context, hrUID string) []domain.User {
	groups := r.AllowedEmployeeGroups(ctx, hrUID)
	seen := map[string]bool{}
	users := []domain.User{}
	for _, g := range groups {
		uids, err := r.dir.MembersOf(ctx, g)
		if err != nil {
			r.log.Warn("group listing failed", slog.String("group", g), slog.Any("err", err))
			continue
		}
		for _, uid := range uids {
			if seen[uid] {
				continue
			}
			seen[uid] = true
			name, err := r.dir.DisplayName(ctx, uid)
			if err != nil || name == "" {
				name = uid
			}
			users = append(users, domain.User{ID: uid, Name: name})
		}
	}
	sort.SliceStable(users, func(i, j int) bool {
		if NaturalLess(users[i].Name, users[j].Name) {
			return true
		}
		if NaturalLess(users[j].Name, users[i].Name) {
			return false
		}
		return users[i].ID < users[j].ID
	})
	return users
}
