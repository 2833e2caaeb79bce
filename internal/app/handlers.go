package app

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"timesheet/internal/domain"
	"timesheet/internal/export"
	"timesheet/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type handlers struct {
	uc *usecase.Timesheet
}

func actor(c *gin.Context) string { return c.GetString(actorKey) }

// writeError maps domain errors to HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
		msg = "unauthenticated"
	case errors.Is(err, domain.ErrAccessDenied):
		status = http.StatusForbidden
		msg = "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		msg = "not found"
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusUnprocessableEntity
		msg = err.Error()
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func entryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *handlers) me(c *gin.Context) {
	me, err := h.uc.Me(c.Request.Context(), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userId":        me.UserID,
		"name":          me.Name,
		"isHr":          me.IsHR,
		"isAdmin":       me.IsAdmin,
		"allowedGroups": nonNil(me.AllowedGroups),
	})
}

func (h *handlers) listEntries(c *gin.Context) {
	entries, err := h.uc.List(c.Request.Context(), actor(c), c.Query("user"), c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntryDTOs(entries))
}

func (h *handlers) saveEntry(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.uc.Save(c.Request.Context(), actor(c), c.Query("user"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSaveResponse(res))
}

func (h *handlers) updateEntry(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.uc.Update(c.Request.Context(), actor(c), id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSaveResponse(res))
}

func (h *handlers) deleteEntry(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), actor(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *handlers) evaluate(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ev, err := h.uc.Evaluate(c.Request.Context(), actor(c), c.Query("user"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEvaluationDTO(ev))
}

func (h *handlers) exportXLSX(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	wb, err := h.uc.ExportMonths(c.Request.Context(), actor(c), c.Query("user"), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	formulas, _ := strconv.ParseBool(c.DefaultQuery("formulas", "false"))
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, wb, export.Options{Formulas: formulas}); err != nil {
		writeError(c, fmt.Errorf("render xlsx: %w", err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(wb)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func exportFilename(wb export.Workbook) string {
	name := "timesheet_" + sanitize(wb.UserID)
	if n := len(wb.Months); n > 0 {
		name += "_" + wb.Months[0].Month
		if n > 1 {
			name += "_" + wb.Months[n-1].Month
		}
	}
	return name + ".xlsx"
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, s)
}

func (h *handlers) monthSummary(c *gin.Context) {
	s, err := h.uc.MonthSummary(c.Request.Context(), actor(c), c.Query("user"), c.Query("month"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"month":           s.Month,
		"from":            s.From,
		"to":              s.To,
		"workedMinutes":   s.WorkedMinutes,
		"workedDays":      s.WorkedDays,
		"targetMinutes":   s.TargetMinutes,
		"overtimeMinutes": s.OvertimeMinutes,
	})
}

func (h *handlers) overtimeSummary(c *gin.Context) {
	s, err := h.uc.OvertimeTotal(c.Request.Context(), actor(c), c.Query("user"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from":            s.From,
		"to":              s.To,
		"workedMinutes":   s.WorkedMinutes,
		"workedDays":      s.WorkedDays,
		"dailyMin":        s.DailyTarget,
		"overtimeMinutes": s.OvertimeMinutes,
	})
}

func (h *handlers) hrUsers(c *gin.Context) {
	o, err := h.uc.HRUsers(c.Request.Context(), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHROverviewDTO(o))
}

func (h *handlers) getUserConfig(c *gin.Context) {
	s, err := h.uc.GetUserConfig(c.Request.Context(), actor(c), c.Param("userId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userConfigDTO{DailyMin: s.DailyMin, State: s.State})
}

func (h *handlers) putUserConfig(c *gin.Context) {
	var req userConfigDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	daily := domain.DefaultDailyTargetMinutes
	if req.DailyMin != nil {
		daily = *req.DailyMin
	}
	state := ""
	if req.State != nil {
		state = *req.State
	}
	s, err := h.uc.SetUserConfig(c.Request.Context(), actor(c), c.Param("userId"), daily, state)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userConfigDTO{DailyMin: s.DailyMin, State: s.State})
}

func (h *handlers) holidays(c *gin.Context) {
	year := time.Now().Year()
	if y := c.Query("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil || v < 1900 || v > 9999 {
			writeError(c, fmt.Errorf("%w: invalid year %q", domain.ErrValidation, y))
			return
		}
		year = v
	}
	m := h.uc.LookupHolidays(c.Request.Context(), year, c.Query("state"))
	c.JSON(http.StatusOK, gin.H{"year": year, "holidays": m})
}

func (h *handlers) getAccessRules(c *gin.Context) {
	v, err := h.uc.AccessRules(c.Request.Context(), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rulesResponse{
		Rules:        toRuleDTOs(v.Rules),
		Groups:       nonNil(v.Groups),
		HRGroups:     nonNil(v.LegacyHRGroups),
		HRUserGroups: nonNil(v.LegacyEmployeeGroups),
	})
}

func (h *handlers) saveAccessRules(c *gin.Context) {
	var req struct {
		Rules []ruleDTO `json:"rules"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := h.uc.SaveAccessRules(c.Request.Context(), actor(c), fromRuleDTOs(req.Rules))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": toRuleDTOs(saved)})
}

func (h *handlers) legacyGroup(field usecase.LegacyField) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req legacyGroupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		var remove bool
		switch req.Action {
		case "", "add":
		case "remove":
			remove = true
		default:
			writeError(c, fmt.Errorf("%w: action must be add or remove", domain.ErrValidation))
			return
		}
		groups, err := h.uc.UpdateLegacyGroup(c.Request.Context(), actor(c), field, req.Group, remove)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"groups": nonNil(groups)})
	}
}
