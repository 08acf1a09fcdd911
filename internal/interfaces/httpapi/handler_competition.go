package httpapi

import (
	"net/http"
	"time"

	"github.com/KevinKasozi/MatchWise/internal/domain/competition"
	"github.com/KevinKasozi/MatchWise/internal/domain/fixture"
	"github.com/KevinKasozi/MatchWise/internal/usecase"
)

type competitionDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Type    string `json:"type"`
}

type seasonDTO struct {
	ID            int64  `json:"id"`
	CompetitionID int64  `json:"competitionId"`
	YearStart     int    `json:"yearStart"`
	YearEnd       int    `json:"yearEnd"`
	Name          string `json:"name"`
}

type resultDTO struct {
	HomeScore int  `json:"homeScore"`
	AwayScore int  `json:"awayScore"`
	ExtraTime bool `json:"extraTime,omitempty"`
	Penalties bool `json:"penalties,omitempty"`
}

type fixtureDTO struct {
	ID          int64      `json:"id"`
	SeasonID    int64      `json:"seasonId"`
	MatchDate   string     `json:"matchDate"`
	MatchTime   string     `json:"matchTime,omitempty"`
	HomeTeamID  int64      `json:"homeTeamId"`
	AwayTeamID  int64      `json:"awayTeamId"`
	Stage       string     `json:"stage,omitempty"`
	Venue       string     `json:"venue,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	Result      *resultDTO `json:"result,omitempty"`
}

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	items, err := h.competitionService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]competitionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toCompetitionDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListSeasonsByCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonsByCompetition")
	defer span.End()

	competitionID, err := pathID(r, "competitionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.competitionService.ListSeasons(ctx, competitionID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]seasonDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toSeasonDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListFixturesBySeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixturesBySeason")
	defer span.End()

	seasonID, err := pathID(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.fixtureService.ListBySeason(ctx, seasonID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]fixtureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toFixtureDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetFixtureDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixtureDetails")
	defer span.End()

	fixtureID, err := pathID(r, "fixtureID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.fixtureService.GetByID(ctx, fixtureID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toFixtureDTO(item))
}

func toCompetitionDTO(item competition.Competition) competitionDTO {
	return competitionDTO{
		ID:      item.ID,
		Name:    item.Name,
		Country: item.Country,
		Type:    item.Type,
	}
}

func toSeasonDTO(item competition.Season) seasonDTO {
	return seasonDTO{
		ID:            item.ID,
		CompetitionID: item.CompetitionID,
		YearStart:     item.YearStart,
		YearEnd:       item.YearEnd,
		Name:          item.Name,
	}
}

func toFixtureDTO(item usecase.FixtureWithResult) fixtureDTO {
	dto := fixtureDTO{
		ID:          item.Fixture.ID,
		SeasonID:    item.Fixture.SeasonID,
		MatchDate:   item.Fixture.MatchDate.Format(time.DateOnly),
		MatchTime:   item.Fixture.MatchTime,
		HomeTeamID:  item.Fixture.HomeTeamID,
		AwayTeamID:  item.Fixture.AwayTeamID,
		Stage:       item.Fixture.Stage,
		Venue:       item.Fixture.Venue,
		IsCompleted: item.Fixture.IsCompleted,
	}
	if item.Result != nil {
		dto.Result = toResultDTO(*item.Result)
	}
	return dto
}

func toResultDTO(item fixture.Result) *resultDTO {
	return &resultDTO{
		HomeScore: item.HomeScore,
		AwayScore: item.AwayScore,
		ExtraTime: item.ExtraTime,
		Penalties: item.Penalties,
	}
}
