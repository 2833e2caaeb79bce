package memory

import (
	"context"
	"sort"
	"sync"
)

// Directory implements ports.GroupDirectory.
type Directory struct {
	mu     sync.RWMutex
	groups map[string][]string
	names  map[string]string
	// Err, when set, fails every lookup.
	Err error
}

func NewDirectory() *Directory {
	return &Directory{groups: map[string][]string{}, names: map[string]string{}}
}

// AddGroup creates the group and adds members to it.
func (d *Directory) AddGroup(group string, members ...string) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.groups[group] = append(d.groups[group], members...)
	return d
}

// SetName sets a display name.
func (d *Directory) SetName(uid, name string) *Directory {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names[uid] = name
	return d
}

func (d *Directory) IsMember(_ context.Context, userID, group string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.Err != nil {
		return false, d.Err
	}
	for _, m := range d.groups[group] {
		if m == userID {
			return true, nil
		}
	}
	return false, nil
}

func (d *Directory) MembersOf(_ context.Context, group string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.Err != nil {
		return nil, d.Err
	}
	return append([]string(nil), d.groups[group]...), nil
}

func (d *Directory) DisplayName(_ context.Context, userID string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if n, ok := d.names[userID]; ok {
		return n, nil
	}
	return userID, nil
}

func (d *Directory) GroupExists(_ context.Context, group string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.Err != nil {
		return false, d.Err
	}
	_, ok := d.groups[group]
	return ok, nil
}

func (d *Directory) ListGroups(_ context.Context) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.groups))
	for g := range d.groups {
		out = append(out, g)
	}
	sort.Strings(out)
	return out, nil
}
