package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/vncsmyrnk/turfvote/internal/core/domain"
	"github.com/vncsmyrnk/turfvote/internal/core/ports"
)

type EventHandler struct {
	events        ports.EventService
	notifications ports.NotificationService
}

func NewEventHandler(events ports.EventService, notifications ports.NotificationService) *EventHandler {
	return &EventHandler{
		events:        events,
		notifications: notifications,
	}
}

type optionRequest struct {
	TurfName   string `json:"turf_name"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	MinPlayers int    `json:"min_players"`
	MaxPlayers int    `json:"max_players"`
}

type generateRequest struct {
	Turfs      []string          `json:"turfs"`
	Slots      []domain.TimeSlot `json:"slots"`
	MinPlayers int               `json:"min_players"`
	MaxPlayers int               `json:"max_players"`
	Confirm    bool              `json:"confirm"`
}

func (g *generateRequest) input() *domain.GenerateOptionsInput {
	if g == nil {
		return nil
	}
	return &domain.GenerateOptionsInput{
		Turfs:      g.Turfs,
		Slots:      g.Slots,
		MinPlayers: g.MinPlayers,
		MaxPlayers: g.MaxPlayers,
		Confirm:    g.Confirm,
	}
}

type createEventRequest struct {
	Name           string              `json:"name"`
	Sport          domain.Sport        `json:"sport"`
	Date           string              `json:"date"`
	PricePerPlayer decimal.NullDecimal `json:"price_per_player"`
	Notes          string              `json:"notes"`
	Options        []optionRequest     `json:"options"`
	Generate       *generateRequest    `json:"generate"`
}

// ListEvents godoc
// @Summary      Lists events
// @Description  Returns a summary of every event, newest first.
// @Tags         events
// @Produce      json
// @Success      200
// @Router       /api/events [get]
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary      Creates an event
// @Description  Takes either explicit options (1 to 4) or a turf and time slot grid to generate them from.
// @Tags         events
// @Accept       json
// @Success      201
// @Failure      400
// @Router       /api/events [post]
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ports.CreateEventInput{
		Name:           req.Name,
		Sport:          req.Sport,
		Date:           req.Date,
		PricePerPlayer: req.PricePerPlayer,
		Notes:          req.Notes,
		Generate:       req.Generate.input(),
	}
	for _, opt := range req.Options {
		input.Options = append(input.Options, ports.OptionInput(opt))
	}

	event, err := h.events.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

type generatePreviewResponse struct {
	Count   int             `json:"count"`
	Options []domain.Option `json:"options"`
}

// PreviewOptions shows the options a generate request would create without
// saving anything.
func (h *EventHandler) PreviewOptions(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	options, err := domain.GenerateOptions(*req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, generatePreviewResponse{Count: len(options), Options: options})
}

func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	view, err := h.events.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type voteRequest struct {
	OptionID string `json:"option_id"`
	VoterID  string `json:"voter_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// Vote godoc
// @Summary      Casts or replaces a vote
// @Description  A repeated voter_id replaces that voter's earlier choice. The response carries the voter_id to reuse.
// @Tags         votes
// @Accept       json
// @Success      201
// @Failure      400
// @Failure      404
// @Failure      409
// @Router       /api/events/{id}/votes [post]
func (h *EventHandler) Vote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vote, err := h.events.Vote(r.Context(), ports.VoteInput{
		EventID:  chi.URLParam(r, "id"),
		OptionID: req.OptionID,
		VoterID:  req.VoterID,
		Name:     req.Name,
		Phone:    req.Phone,
		Channel:  domain.ChannelWeb,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, vote)
}

type myVoteResponse struct {
	Vote *domain.Vote `json:"vote"`
}

func (h *EventHandler) MyVote(w http.ResponseWriter, r *http.Request) {
	vote, err := h.events.MyVote(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "voterID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, myVoteResponse{Vote: vote})
}

func (h *EventHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Close(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) ReopenPoll(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Reopen(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// ConfirmedList returns the confirmed names as plain text, one per line.
func (h *EventHandler) ConfirmedList(w http.ResponseWriter, r *http.Request) {
	names, err := h.events.ConfirmedNames(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="confirmed.txt"`)
	w.WriteHeader(http.StatusOK)
	if len(names) > 0 {
		_, _ = w.Write([]byte(strings.Join(names, "\n") + "\n"))
	}
}

func (h *EventHandler) SendNotifications(w http.ResponseWriter, r *http.Request) {
	report, err := h.notifications.NotifyResolution(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type inviteRequest struct {
	Phones []string `json:"phones"`
}

func (h *EventHandler) SendInvitations(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	report, err := h.notifications.Invite(r.Context(), chi.URLParam(r, "id"), req.Phones)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
