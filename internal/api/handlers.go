package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/careergraph/internal/careers"
	"github.com/starford/careergraph/internal/metrics"
	"github.com/starford/careergraph/internal/models"
)

// EngineSource supplies the live engine. *careers.Holder implements it.
type EngineSource interface {
	Engine() *careers.Engine
	Checksum() string
}

// Handler holds API route handlers.
type Handler struct {
	src     EngineSource
	metrics *metrics.Metrics
}

// NewHandler creates a new Handler. m may be nil.
func NewHandler(src EngineSource, m *metrics.Metrics) *Handler {
	return &Handler{src: src, metrics: m}
}

// pathParam returns the decoded URL parameter name.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// PathsWithFollowers handles GET /paths_with_followers/{start_title}.
//
//	@Summary	Enumerate progression paths from a title with their followers
//	@Tags		careers
//	@Produce	json
//	@Param		start_title	path	string	true	"Start title"
//	@Success	200	{array}	PathResult
//	@Router		/paths_with_followers/{start_title} [get]
func (h *Handler) PathsWithFollowers(w http.ResponseWriter, r *http.Request) {
	result := h.src.Engine().PathsWithFollowers(pathParam(r, "start_title"))
	h.metrics.ObserveQuery(metrics.OpPathsWithFollowers, len(result))
	writeJSON(w, http.StatusOK, result)
}

// CurrentHolders handles GET /current_title/{title_name}.
//
//	@Summary	List the people whose latest title is title_name
//	@Tags		careers
//	@Produce	json
//	@Param		title_name	path	string	true	"Title"
//	@Success	200	{object}	CurrentTitleResponse
//	@Router		/current_title/{title_name} [get]
func (h *Handler) CurrentHolders(w http.ResponseWriter, r *http.Request) {
	title := pathParam(r, "title_name")
	holders := h.src.Engine().CurrentHolders(title)
	h.metrics.ObserveQuery(metrics.OpCurrentHolders, len(holders))
	writeJSON(w, http.StatusOK, CurrentTitleResponse{TitleName: title, CurrentTitle: holders})
}

// TitlesHeldBy handles GET /titles/{person_id}.
//
//	@Summary	List the titles a person held, oldest first
//	@Tags		careers
//	@Produce	json
//	@Param		person_id	path	int	true	"Person id"
//	@Success	200	{object}	TitlesHeldResponse
//	@Failure	400	{object}	errResponse
//	@Router		/titles/{person_id} [get]
func (h *Handler) TitlesHeldBy(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "person_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "person_id must be an integer")
		return
	}
	titles := h.src.Engine().TitlesHeldBy(models.PersonID(id))
	h.metrics.ObserveQuery(metrics.OpTitlesHeldBy, len(titles))
	writeJSON(w, http.StatusOK, TitlesHeldResponse{PersonID: id, Titles: titles})
}

// ListTitles handles GET /titles.
func (h *Handler) ListTitles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, TitleListResponse{Titles: h.src.Engine().Titles()})
}

// Live handles GET /health/live.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /health/ready.
func (h *Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	e := h.src.Engine()
	if e == nil {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return
	}
	writeJSON(w, http.StatusOK, ReadyResponse{Status: "ok", Checksum: h.src.Checksum(), Stats: e.Stats()})
}
