package api

import (
	"net/http"
	"strings"
	"time"

	"FinDash/internal/domain/models"
	xhttp "FinDash/pkg/http"
	xlogger "FinDash/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// BoardReader exposes the rendered regions.
type BoardReader interface {
	Get(region models.Region) (string, bool)
	Subscribe(buffer int) (<-chan models.RegionUpdate, func())
}

// StateReader exposes the dashboard's stored snapshot and countdown.
type StateReader interface {
	Snapshot() *models.Snapshot
	Remaining() int
}

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
	wsBuffer     = 16
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// DashboardEchoHandler serves the dashboard state over HTTP. It never mutates it.
type DashboardEchoHandler struct {
	logger *xlogger.Logger
	board  BoardReader
	state  StateReader
}

func NewDashboardEchoHandler(logger *xlogger.Logger, board BoardReader, state StateReader) *DashboardEchoHandler {
	return &DashboardEchoHandler{logger: logger, board: board, state: state}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/regions/:name", h.Region)
	g.GET("/snapshot", h.Snapshot)
	g.GET("/signals", h.Signals)
	e.GET("/ws", h.Stream)
	e.GET("/healthz", h.Health)
}

func (h *DashboardEchoHandler) Region(c echo.Context) error {
	req := &models.RegionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	text, ok := h.board.Get(models.Region(req.Name))
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("region %s not rendered yet", req.Name))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.String(http.StatusOK, text)
}

func (h *DashboardEchoHandler) Snapshot(c echo.Context) error {
	snap := h.state.Snapshot()
	if snap == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no snapshot fetched yet"))
	}
	return xhttp.SuccessResponse(c, &models.StateResponse{Snapshot: snap, Remaining: h.state.Remaining()})
}

// Signals lists the stored snapshot's signals, optionally filtered by action
// and minimum score, in source order.
func (h *DashboardEchoHandler) Signals(c echo.Context) error {
	req := &models.SignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	snap := h.state.Snapshot()
	if snap == nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no snapshot fetched yet"))
	}

	out := make([]models.Signal, 0, len(snap.Signals))
	for _, s := range snap.Signals {
		if s.Score < req.MinScore {
			continue
		}
		if req.Action != "" && !strings.EqualFold(s.Action, req.Action) {
			continue
		}
		out = append(out, s)
		if len(out) == req.Limit {
			break
		}
	}
	return xhttp.ListResponse(c, out, int64(len(out)))
}

func (h *DashboardEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"has_snapshot": h.state.Snapshot() != nil,
	})
}

// Stream upgrades to a websocket and pushes every region update as JSON,
// starting with the current text of each rendered region.
func (h *DashboardEchoHandler) Stream(c echo.Context) error {
	conn, err := wsUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	updates, cancel := h.board.Subscribe(wsBuffer)
	defer cancel()

	// The client sends nothing; reading detects the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-closed:
			return nil
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(u); err != nil {
				h.logger.Debug("websocket write failed", xlogger.Error(err))
				return nil
			}
		}
	}
}
