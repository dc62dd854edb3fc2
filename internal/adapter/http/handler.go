package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"aimapo/internal/app/catalog"
	"aimapo/internal/app/game"
	"aimapo/internal/app/history"
	"aimapo/internal/app/ports"
	"aimapo/internal/app/status"
	"aimapo/internal/app/turn"
	"aimapo/internal/domain/city"
)

const (
	idempotencyHeader = "Idempotency-Key"
	replayedHeader    = "Idempotency-Replayed"
)

type Handler struct {
	GameUC    game.UseCase
	TurnUC    turn.UseCase
	StatusUC  status.UseCase
	HistoryUC history.UseCase
	CatalogUC catalog.UseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	games := s.Group("/api/games")
	games.POST("", h.newGame)
	games.POST("/:id/turns", h.advance)
	games.GET("/:id", h.status)
	games.GET("/:id/history", h.history)

	s.GET("/api/catalog", h.catalog)
	s.GET("/ops/kpi", h.kpi)
}

type newGameRequest struct {
	Pledges  []string `json:"pledges"`
	Seed     *int64   `json:"seed,omitempty"`
	MaxTurns int      `json:"max_turns,omitempty"`
}

type eventChoiceBody struct {
	EventID  string `json:"event_id"`
	ChoiceID string `json:"choice_id"`
}

type turnRequest struct {
	IdempotencyKey string           `json:"idempotency_key,omitempty"`
	Allocation     *city.Allocation `json:"allocation,omitempty"`
	Activate       []string         `json:"activate,omitempty"`
	Cancel         []string         `json:"cancel,omitempty"`
	EventChoice    *eventChoiceBody `json:"event_choice,omitempty"`
}

func (h Handler) newGame(c context.Context, ctx *app.RequestContext) {
	var body newGameRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.GameUC.Execute(c, game.Request{Pledges: body.Pledges, Seed: body.Seed, MaxTurns: body.MaxTurns})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) advance(c context.Context, ctx *app.RequestContext) {
	var body turnRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	key := strings.TrimSpace(string(ctx.GetHeader(idempotencyHeader)))
	if key == "" {
		key = body.IdempotencyKey
	}

	req := turn.Request{
		SessionID:      ctx.Param("id"),
		IdempotencyKey: key,
		Allocation:     body.Allocation,
		Activate:       body.Activate,
		Cancel:         body.Cancel,
	}
	if body.EventChoice != nil {
		req.EventChoice = &turn.EventChoiceRequest{EventID: body.EventChoice.EventID, ChoiceID: body.EventChoice.ChoiceID}
	}

	resp, err := h.TurnUC.Execute(c, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if resp.Replayed {
		ctx.Response.Header.Set(replayedHeader, "true")
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{SessionID: ctx.Param("id")})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	from, _ := strconv.Atoi(string(ctx.Query("from")))
	to, _ := strconv.Atoi(string(ctx.Query("to")))
	limit, _ := strconv.Atoi(string(ctx.Query("journal_limit")))
	resp, err := h.HistoryUC.Execute(c, history.Request{
		SessionID:    ctx.Param("id"),
		FromTurn:     from,
		ToTurn:       to,
		JournalLimit: limit,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) catalog(c context.Context, ctx *app.RequestContext) {
	resp, err := h.CatalogUC.Execute(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, turn.ErrInvalidAllocation):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_allocation", err.Error())
	case errors.Is(err, turn.ErrUnknownPolicy),
		errors.Is(err, turn.ErrUnknownEventChoice),
		errors.Is(err, game.ErrUnknownPledge):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_reference", err.Error())
	case errors.Is(err, turn.ErrPolicyAlreadyActive),
		errors.Is(err, turn.ErrPolicyNotActive),
		errors.Is(err, turn.ErrPolicyCapReached):
		writeErrorBody(ctx, consts.StatusConflict, "policy_rejected", err.Error())
	case errors.Is(err, turn.ErrEventChoiceRequired):
		writeErrorBody(ctx, consts.StatusConflict, "event_choice_required", err.Error())
	case errors.Is(err, turn.ErrNoPendingEvent):
		writeErrorBody(ctx, consts.StatusConflict, "no_pending_event", err.Error())
	case errors.Is(err, turn.ErrGameOver):
		writeErrorBody(ctx, consts.StatusConflict, "game_over", err.Error())
	case errors.Is(err, turn.ErrInvalidRequest),
		errors.Is(err, game.ErrInvalidRequest),
		errors.Is(err, game.ErrTooManyPledges),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
