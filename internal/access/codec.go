package access

import (
	"encoding/json"
	"strings"

	"timesheet/internal/domain"
)

// storedRule is the persisted rule shape. Older writers used snake_case
// keys and "userGroups" for the employee side.
type storedRule struct {
	ID             string   `json:"id"`
	HRGroups       []string `json:"hrGroups,omitempty"`
	HRGroupsLegacy []string `json:"hr_groups,omitempty"`
	UserGroups     []string `json:"userGroups,omitempty"`
	UserGroupsOld  []string `json:"user_groups,omitempty"`
	EmployeeGroups []string `json:"employeeGroups,omitempty"`
}

func (r storedRule) rule() domain.AccessRule {
	hr := r.HRGroups
	if hr == nil {
		hr = r.HRGroupsLegacy
	}
	emp := r.EmployeeGroups
	if emp == nil {
		emp = r.UserGroups
	}
	if emp == nil {
		emp = r.UserGroupsOld
	}
	return domain.AccessRule{ID: r.ID, HRGroups: hr, EmployeeGroups: emp}
}

// DecodeRules reads a stored rule list. Malformed or empty input yields no
// rules, so the legacy lists take over.
func DecodeRules(raw string) []domain.AccessRule {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var stored []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil
	}
	out := make([]domain.AccessRule, 0, len(stored))
	for _, item := range stored {
		var r storedRule
		if err := json.Unmarshal(item, &r); err != nil {
			continue
		}
		out = append(out, r.rule())
	}
	return out
}

// EncodeRules writes rules in the current key naming.
func EncodeRules(rules []domain.AccessRule) (string, error) {
	type current struct {
		ID         string   `json:"id"`
		HRGroups   []string `json:"hrGroups"`
		UserGroups []string `json:"userGroups"`
	}
	out := make([]current, len(rules))
	for i, r := range rules {
		out[i] = current{ID: r.ID, HRGroups: nonNil(r.HRGroups), UserGroups: nonNil(r.EmployeeGroups)}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeGroupList accepts a JSON array or a comma-separated string.
func DecodeGroupList(raw string) []string {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return list
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EncodeGroupList always writes JSON.
func EncodeGroupList(groups []string) (string, error) {
	b, err := json.Marshal(nonNil(groups))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
