package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/KevinKasozi/MatchWise/internal/domain/club"
	"github.com/KevinKasozi/MatchWise/internal/domain/team"
	"github.com/KevinKasozi/MatchWise/internal/platform/logging"
	"github.com/KevinKasozi/MatchWise/internal/usecase"
)

type Handler struct {
	clubService        *usecase.ClubService
	teamService        *usecase.TeamService
	competitionService *usecase.CompetitionService
	fixtureService     *usecase.FixtureService
	auditService       *usecase.AuditService
	ingestionService   *usecase.IngestionService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	clubService *usecase.ClubService,
	teamService *usecase.TeamService,
	competitionService *usecase.CompetitionService,
	fixtureService *usecase.FixtureService,
	auditService *usecase.AuditService,
	ingestionService *usecase.IngestionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		clubService:        clubService,
		teamService:        teamService,
		competitionService: competitionService,
		fixtureService:     fixtureService,
		auditService:       auditService,
		ingestionService:   ingestionService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type clubDTO struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	FoundedYear      *int     `json:"foundedYear,omitempty"`
	StadiumName      string   `json:"stadiumName,omitempty"`
	City             string   `json:"city,omitempty"`
	Country          string   `json:"country,omitempty"`
	AlternativeNames []string `json:"alternativeNames,omitempty"`
}

type teamDTO struct {
	ID     int64  `json:"id"`
	ClubID *int64 `json:"clubId,omitempty"`
	Type   string `json:"type"`
}

type clubDetailsDTO struct {
	Club clubDTO  `json:"club"`
	Team *teamDTO `json:"team,omitempty"`
}

type teamDetailsDTO struct {
	Team teamDTO  `json:"team"`
	Club *clubDTO `json:"club,omitempty"`
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	var (
		items []club.Club
		err   error
	)
	if query := strings.TrimSpace(r.URL.Query().Get("q")); query != "" {
		items, err = h.clubService.Search(ctx, query)
	} else {
		items, err = h.clubService.List(ctx)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]clubDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toClubDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetClubDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubDetails")
	defer span.End()

	clubID, err := pathID(r, "clubID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := h.clubService.GetDetails(ctx, clubID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dto := clubDetailsDTO{Club: toClubDTO(details.Club)}
	if details.Team != nil {
		teamItem := toTeamDTO(*details.Team)
		dto.Team = &teamItem
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

func (h *Handler) GetTeamDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamDetails")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := h.teamService.GetDetails(ctx, teamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dto := teamDetailsDTO{Team: toTeamDTO(details.Team)}
	if details.Club != nil {
		clubItem := toClubDTO(*details.Club)
		dto.Club = &clubItem
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

func toClubDTO(item club.Club) clubDTO {
	return clubDTO{
		ID:               item.ID,
		Name:             item.Name,
		FoundedYear:      item.FoundedYear,
		StadiumName:      item.StadiumName,
		City:             item.City,
		Country:          item.Country,
		AlternativeNames: item.AlternativeNames,
	}
}

func toTeamDTO(item team.Team) teamDTO {
	return teamDTO{
		ID:     item.ID,
		ClubID: item.ClubID,
		Type:   item.Type,
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return id, nil
}
