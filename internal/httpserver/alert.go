package httpserver

import (
	"net/http"
	"time"

	"alerts-srv/internal/alert"
	"alerts-srv/internal/model"
	"alerts-srv/pkg/errors"
	"alerts-srv/pkg/paginator"
	postgresPkg "alerts-srv/pkg/postgre"
	"alerts-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

var alertErrMap = response.ErrorMapping{
	alert.ErrAlertNotFound:   errors.NewNotFoundHTTPError(),
	alert.ErrTypeRequired:    errors.NewHTTPError(http.StatusBadRequest, "alert type is required"),
	alert.ErrUnknownSyncMode: errors.NewHTTPError(http.StatusBadRequest, "unknown synchronization mode"),
}

const dateLayout = "2006-01-02"

type listAlertsReq struct {
	Type           string `form:"type"`
	Scope          string `form:"scope"`
	CheckedOutByID string `form:"checkedOutById"`
	DueBefore      string `form:"dueBefore"`
	ClosedOn       string `form:"closedOn"`
	ClosedAfter    string `form:"closedAfter"`

	paginator.PaginateQuery
}

func (req listAlertsReq) toInput() (alert.GetInput, error) {
	f := alert.Filter{
		Type:           req.Type,
		CheckedOutByID: req.CheckedOutByID,
	}

	switch req.Scope {
	case "", "open":
		f.Open = true
	case "closed":
		f.Closed = true
	case "destroyed":
		f.Destroyed = true
	case "all":
	default:
		return alert.GetInput{}, errors.NewValidationError("scope", "must be one of open, closed, destroyed, all")
	}

	if req.DueBefore != "" {
		t, err := time.Parse(time.RFC3339, req.DueBefore)
		if err != nil {
			return alert.GetInput{}, errors.NewValidationError("dueBefore", "must be an RFC3339 timestamp")
		}
		f.DueBefore = &t
	}
	if req.ClosedOn != "" {
		t, err := time.Parse(dateLayout, req.ClosedOn)
		if err != nil {
			return alert.GetInput{}, errors.NewValidationError("closedOn", "must be a YYYY-MM-DD date")
		}
		f.ClosedOn = &t
	}
	if req.ClosedAfter != "" {
		t, err := time.Parse(time.RFC3339, req.ClosedAfter)
		if err != nil {
			return alert.GetInput{}, errors.NewValidationError("closedAfter", "must be an RFC3339 timestamp")
		}
		f.ClosedAfter = &t
	}

	pq := req.PaginateQuery
	pq.Adjust()

	return alert.GetInput{Filter: f, PaginateQuery: pq}, nil
}

func (srv *HTTPServer) listAlerts(c *gin.Context) {
	ctx := c.Request.Context()

	var req listAlertsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusBadRequest, "invalid query parameters"))
		return
	}

	ip, err := req.toInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	out, err := srv.alertUC.Get(ctx, ip)
	if err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.listAlerts: %v", err)
		response.ErrorWithMap(c, err, alertErrMap)
		return
	}

	response.OK(c, gin.H{
		"alerts":    newAlertResps(out.Alerts, time.Now()),
		"paginator": out.Paginator.ToResponse(),
	})
}

func (srv *HTTPServer) detailAlert(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if err := postgresPkg.IsUUID(id); err != nil {
		response.HttpError(c, errors.NewNotFoundHTTPError())
		return
	}

	a, err := srv.alertUC.Detail(ctx, id)
	if err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.detailAlert: %v", err)
		response.ErrorWithMap(c, err, alertErrMap)
		return
	}

	response.OK(c, newAlertResp(a, time.Now()))
}

type createAlertReq struct {
	Type              string     `json:"type" binding:"required"`
	Key               string     `json:"key" binding:"required"`
	Summary           string     `json:"summary" binding:"required"`
	URL               string     `json:"url" binding:"required"`
	Priority          string     `json:"priority" binding:"required"`
	OpenedAt          *time.Time `json:"openedAt"`
	CheckedOutByEmail *string    `json:"checkedOutByEmail"`
	ProjectSlug       *string    `json:"projectSlug"`
}

func (srv *HTTPServer) createAlert(c *gin.Context) {
	ctx := c.Request.Context()

	var req createAlertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusBadRequest, "invalid request body"))
		return
	}

	created, err := srv.alertUC.Create(ctx, alert.CreateInput{
		Type:              req.Type,
		Key:               req.Key,
		Summary:           req.Summary,
		URL:               req.URL,
		Priority:          model.Priority(req.Priority),
		OpenedAt:          req.OpenedAt,
		CheckedOutByEmail: req.CheckedOutByEmail,
		ProjectSlug:       req.ProjectSlug,
	})
	if err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.createAlert: %v", err)
		response.ErrorWithMap(c, err, alertErrMap)
		return
	}

	response.OK(c, newAlertResp(created, time.Now()))
}

type updateAlertReq struct {
	Summary           *string    `json:"summary"`
	URL               *string    `json:"url"`
	Priority          *string    `json:"priority"`
	OpenedAt          *time.Time `json:"openedAt"`
	CheckedOutByEmail *string    `json:"checkedOutByEmail"`
	ProjectSlug       *string    `json:"projectSlug"`
}

func (srv *HTTPServer) updateAlert(c *gin.Context) {
	ctx := c.Request.Context()

	id := c.Param("id")
	if err := postgresPkg.IsUUID(id); err != nil {
		response.HttpError(c, errors.NewNotFoundHTTPError())
		return
	}

	var req updateAlertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusBadRequest, "invalid request body"))
		return
	}

	ip := alert.UpdateInput{
		ID:                id,
		Summary:           req.Summary,
		URL:               req.URL,
		OpenedAt:          req.OpenedAt,
		CheckedOutByEmail: req.CheckedOutByEmail,
		ProjectSlug:       req.ProjectSlug,
	}
	if req.Priority != nil {
		p := model.Priority(*req.Priority)
		ip.Priority = &p
	}

	updated, err := srv.alertUC.Update(ctx, ip)
	if err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.updateAlert: %v", err)
		response.ErrorWithMap(c, err, alertErrMap)
		return
	}

	response.OK(c, newAlertResp(updated, time.Now()))
}

type syncAlertsReq struct {
	Mode    string                `json:"mode" binding:"required"`
	Type    string                `json:"type" binding:"required"`
	Entries []alert.SnapshotEntry `json:"entries"`
}

// syncAlerts lets push-style collectors submit a snapshot directly instead of
// being polled by the scheduler.
func (srv *HTTPServer) syncAlerts(c *gin.Context) {
	ctx := c.Request.Context()

	var req syncAlertsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusBadRequest, "invalid request body"))
		return
	}

	report, err := srv.alertUC.Synchronize(ctx, alert.SyncMode(req.Mode), req.Type, req.Entries)
	if err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.syncAlerts: %v", err)
		response.ErrorWithMap(c, err, alertErrMap)
		return
	}

	response.OK(c, report)
}

func (srv *HTTPServer) dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	out, err := srv.alertUC.Dashboard(ctx)
	if err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.dashboard: %v", err)
		response.ErrorWithMap(c, err, alertErrMap)
		return
	}

	response.OK(c, out)
}
