package usecase

import (
	"context"
	"fmt"

	"timesheet/internal/domain"
	"timesheet/internal/export"
)

// maxExportMonths bounds one export request.
const maxExportMonths = 24

// ExportMonths builds one export.Month per calendar month in [from, to]
// (both YYYY-MM).
func (uc *Timesheet) ExportMonths(ctx context.Context, actor, target, from, to string) (export.Workbook, error) {
	uid, err := uc.authorize(ctx, actor, target)
	if err != nil {
		return export.Workbook{}, err
	}
	start, err := parseMonth(from)
	if err != nil {
		return export.Workbook{}, err
	}
	end := start
	if to != "" {
		if end, err = parseMonth(to); err != nil {
			return export.Workbook{}, err
		}
	}
	if end.Before(start) {
		return export.Workbook{}, fmt.Errorf("%w: export range ends before it starts", domain.ErrValidation)
	}
	if start.AddDate(0, maxExportMonths, 0).Before(end.AddDate(0, 1, 0)) {
		return export.Workbook{}, fmt.Errorf("%w: export range exceeds %d months", domain.ErrValidation, maxExportMonths)
	}

	cfg, err := uc.userConfig(ctx, uid)
	if err != nil {
		return export.Workbook{}, err
	}
	wb := export.Workbook{UserID: uid, UserName: uid}
	if n, err := uc.Directory.DisplayName(ctx, uid); err == nil && n != "" {
		wb.UserName = n
	}
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		first, last := monthBounds(m)
		entries, err := uc.Entries.FindByUserAndRange(ctx, uid, first, last)
		if err != nil {
			return export.Workbook{}, fmt.Errorf("list entries: %w", err)
		}
		holidays := uc.holidays(ctx, cfg.RegionCode(), m.Year())
		wb.Months = append(wb.Months, export.BuildMonth(m, entries, cfg.DailyTarget(), holidays))
	}
	return wb, nil
}
