package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"timesheet/internal/domain"
)

func TestAccessRulesAdminOnly(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.uc.AccessRules(ctx, "alice")
	require.ErrorIs(t, err, domain.ErrAccessDenied)

	view, err := fx.uc.AccessRules(ctx, "root")
	require.NoError(t, err)
	require.Equal(t, []domain.AccessRule{{ID: "r1", HRGroups: []string{"HR"}, EmployeeGroups: []string{"Staff"}}}, view.Rules)
	require.Equal(t, []string{"HR", "Other", "Staff", "admin"}, view.Groups)
}

func TestSaveAccessRulesChangesAccess(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	saved, err := fx.uc.SaveAccessRules(ctx, "root", []domain.AccessRule{
		{ID: "r1", HRGroups: []string{"HR"}, EmployeeGroups: []string{"Other", "Ghost"}},
		{HRGroups: []string{""}, EmployeeGroups: []string{"Staff"}},
	})
	require.NoError(t, err)
	require.Equal(t, []domain.AccessRule{{ID: "r1", HRGroups: []string{"HR"}, EmployeeGroups: []string{"Other"}}}, saved)

	cfg, err := fx.rules.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"HR"}, cfg.LegacyHRGroups)
	require.Equal(t, []string{"Other"}, cfg.LegacyEmployeeGroups)

	_, err = fx.uc.List(ctx, "alice", "bob", "", "")
	require.ErrorIs(t, err, domain.ErrAccessDenied)
	_, err = fx.uc.List(ctx, "alice", "carol", "", "")
	require.NoError(t, err)

	_, err = fx.uc.SaveAccessRules(ctx, "alice", nil)
	require.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestUpdateLegacyGroup(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.rules.Save(ctx, domain.AccessConfig{}))

	list, err := fx.uc.UpdateLegacyGroup(ctx, "root", LegacyHRGroups, "HR", false)
	require.NoError(t, err)
	require.Equal(t, []string{"HR"}, list)

	list, err = fx.uc.UpdateLegacyGroup(ctx, "root", LegacyHRGroups, "HR", false)
	require.NoError(t, err)
	require.Equal(t, []string{"HR"}, list)

	_, err = fx.uc.UpdateLegacyGroup(ctx, "root", LegacyEmployeeGroups, "Staff", false)
	require.NoError(t, err)

	_, err = fx.uc.List(ctx, "alice", "dora", "", "")
	require.NoError(t, err, "legacy lists grant access when no rules exist")

	list, err = fx.uc.UpdateLegacyGroup(ctx, "root", LegacyHRGroups, "HR", true)
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = fx.uc.UpdateLegacyGroup(ctx, "root", LegacyHRGroups, "Ghost", false)
	require.ErrorIs(t, err, domain.ErrUnknownGroup)

	_, err = fx.uc.UpdateLegacyGroup(ctx, "root", "nope", "HR", false)
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = fx.uc.UpdateLegacyGroup(ctx, "bob", LegacyHRGroups, "HR", false)
	require.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestMe(t *testing.T) {
	fx := newFixture(t)
	me, err := fx.uc.Me(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, me.IsHR)
	require.False(t, me.IsAdmin)
	require.Equal(t, []string{"Staff"}, me.AllowedGroups)

	me, err = fx.uc.Me(context.Background(), "root")
	require.NoError(t, err)
	require.True(t, me.IsAdmin)
	require.False(t, me.IsHR)
}
