package usecase

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"timesheet/internal/adapter/memory"
	"timesheet/internal/domain"
)

type fixture struct {
	uc       *Timesheet
	entries  *memory.EntryStore
	configs  *memory.UserConfigStore
	holidays *memory.Holidays
	dir      *memory.Directory
	rules    *memory.AccessRuleStore
}

var fixedNow = time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)

// newFixture: alice is HR for Staff (bob, dora); carol is outside; root is admin.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{
		entries:  memory.NewEntryStore(),
		configs:  memory.NewUserConfigStore(),
		holidays: memory.NewHolidays(),
		dir: memory.NewDirectory().
			AddGroup("HR", "alice").
			AddGroup("Staff", "bob", "dora").
			AddGroup("Other", "carol").
			AddGroup("admin", "root").
			SetName("bob", "Bob Builder").
			SetName("dora", "Dora"),
		rules: memory.NewAccessRuleStore(domain.AccessConfig{
			Rules: []domain.AccessRule{{ID: "r1", HRGroups: []string{"HR"}, EmployeeGroups: []string{"Staff"}}},
		}),
	}
	fx.entries.Now = func() time.Time { return fixedNow }
	fx.uc = &Timesheet{
		Log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Entries:    fx.entries,
		Configs:    fx.configs,
		Holidays:   fx.holidays,
		Directory:  fx.dir,
		Rules:      fx.rules,
		AdminGroup: "admin",
		Now:        func() time.Time { return fixedNow },
	}
	return fx
}

func ptr[T any](v T) *T { return &v }
