package app

import (
	"bytes"
	"encoding/json"

	"timesheet/internal/domain"
	"timesheet/internal/timerules"
	"timesheet/internal/usecase"
)

// looseString accepts a JSON string, number or null. Break minutes arrive
// both as 30 and as "0:30".
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}

type entryRequest struct {
	WorkDate     string      `json:"workDate"`
	Start        string      `json:"start"`
	End          string      `json:"end"`
	BreakMinutes looseString `json:"breakMinutes"`
	Comment      string      `json:"comment"`
}

func (r entryRequest) input() usecase.SaveInput {
	return usecase.SaveInput{
		WorkDate: r.WorkDate,
		Start:    r.Start,
		End:      r.End,
		Break:    string(r.BreakMinutes),
		Comment:  r.Comment,
	}
}

type entryDTO struct {
	ID           int64   `json:"id"`
	UserID       string  `json:"userId"`
	WorkDate     string  `json:"workDate"`
	Start        *string `json:"start"`
	End          *string `json:"end"`
	BreakMinutes int     `json:"breakMinutes"`
	Comment      *string `json:"comment"`
	Duration     *int    `json:"durationMinutes"`
	CreatedAt    int64   `json:"createdAt"`
	UpdatedAt    int64   `json:"updatedAt"`
}

func toEntryDTO(e domain.TimeEntry) entryDTO {
	out := entryDTO{
		ID:           e.ID,
		UserID:       e.UserID,
		WorkDate:     e.WorkDate,
		Start:        clock(e.StartMinute),
		End:          clock(e.EndMinute),
		BreakMinutes: e.BreakMinutes,
		Comment:      e.Comment,
		CreatedAt:    e.CreatedAt.Unix(),
		UpdatedAt:    e.UpdatedAt.Unix(),
	}
	if d, ok := timerules.Duration(e.StartMinute, e.EndMinute, e.BreakMinutes); ok {
		out.Duration = &d
	}
	return out
}

func toEntryDTOs(entries []domain.TimeEntry) []entryDTO {
	out := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryDTO(e))
	}
	return out
}

func clock(m *int) *string {
	if m == nil {
		return nil
	}
	s := timerules.FormatHM(*m)
	return &s
}

type evaluationDTO struct {
	Duration   *int     `json:"duration"`
	Difference *int     `json:"difference"`
	DurationHM string   `json:"durationHM"`
	DiffHM     string   `json:"differenceHM"`
	Warnings   []string `json:"warnings"`
	Warning    string   `json:"warning"`
}

func toEvaluationDTO(ev timerules.Evaluation) evaluationDTO {
	ws := make([]string, 0, len(ev.Warnings))
	for _, w := range ev.Warnings {
		ws = append(ws, string(w))
	}
	return evaluationDTO{
		Duration:   ev.Duration,
		Difference: ev.Difference,
		DurationHM: timerules.FormatOptionalHM(ev.Duration),
		DiffHM:     timerules.FormatOptionalHM(ev.Difference),
		Warnings:   ws,
		Warning:    timerules.JoinWarnings(ev.Warnings),
	}
}

type saveResponse struct {
	Outcome    usecase.Outcome `json:"outcome"`
	Entry      *entryDTO       `json:"entry"`
	Evaluation evaluationDTO   `json:"evaluation"`
}

func toSaveResponse(res usecase.SaveResult) saveResponse {
	out := saveResponse{Outcome: res.Outcome, Evaluation: toEvaluationDTO(res.Evaluation)}
	if res.Entry != nil {
		e := toEntryDTO(*res.Entry)
		out.Entry = &e
	}
	return out
}

type ruleDTO struct {
	ID         string   `json:"id"`
	HRGroups   []string `json:"hrGroups"`
	UserGroups []string `json:"userGroups"`
}

func toRuleDTOs(rules []domain.AccessRule) []ruleDTO {
	out := make([]ruleDTO, 0, len(rules))
	for _, r := range rules {
		out = append(out, ruleDTO{ID: r.ID, HRGroups: nonNil(r.HRGroups), UserGroups: nonNil(r.EmployeeGroups)})
	}
	return out
}

func fromRuleDTOs(in []ruleDTO) []domain.AccessRule {
	out := make([]domain.AccessRule, 0, len(in))
	for _, r := range in {
		out = append(out, domain.AccessRule{ID: r.ID, HRGroups: r.HRGroups, EmployeeGroups: r.UserGroups})
	}
	return out
}

type rulesResponse struct {
	Rules        []ruleDTO `json:"rules"`
	Groups       []string  `json:"groups"`
	HRGroups     []string  `json:"hrGroups"`
	HRUserGroups []string  `json:"hrUserGroups"`
}

type hrUserDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	DailyMin       int      `json:"dailyMin"`
	BalanceMinutes int      `json:"balanceMinutes"`
	Balance        string   `json:"balance"`
	LastEntry      *string  `json:"lastEntry"`
	DaysSinceEntry *int     `json:"daysSinceEntry"`
	MonthMinutes   int      `json:"monthMinutes"`
	Issues         []string `json:"issues"`
}

type teamStatsDTO struct {
	MonthMinutes   int `json:"monthMinutes"`
	PlusMinutes    int `json:"plusMinutes"`
	PlusCount      int `json:"plusCount"`
	MinusMinutes   int `json:"minusMinutes"`
	MinusCount     int `json:"minusCount"`
	BalanceMinutes int `json:"balanceMinutes"`
}

type hrOverviewDTO struct {
	Month string       `json:"month"`
	Users []hrUserDTO  `json:"users"`
	Stats teamStatsDTO `json:"stats"`
}

func toHROverviewDTO(o usecase.HROverview) hrOverviewDTO {
	out := hrOverviewDTO{
		Month: o.Month,
		Users: make([]hrUserDTO, 0, len(o.Users)),
		Stats: teamStatsDTO(o.Stats),
	}
	for _, u := range o.Users {
		row := hrUserDTO{
			ID:             u.ID,
			Name:           u.Name,
			DailyMin:       u.DailyTarget,
			BalanceMinutes: u.BalanceMinutes,
			Balance:        timerules.FormatHM(u.BalanceMinutes),
			DaysSinceEntry: u.DaysSinceEntry,
			MonthMinutes:   u.MonthMinutes,
			Issues:         nonNil(u.Issues),
		}
		if u.LastEntry != "" {
			last := u.LastEntry
			row.LastEntry = &last
		}
		out.Users = append(out.Users, row)
	}
	return out
}

type userConfigDTO struct {
	DailyMin *int    `json:"dailyMin"`
	State    *string `json:"state"`
}

type legacyGroupRequest struct {
	Group  string `json:"group"`
	Action string `json:"action"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
