package fiber

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	filtersdomain "carrier-records-service/internal/filters/core/domain"
	filtersports "carrier-records-service/internal/filters/core/ports"
	filtersusecase "carrier-records-service/internal/filters/core/usecase"
	"carrier-records-service/internal/records/core/domain"
	"carrier-records-service/internal/views/core/usecase"

	"github.com/gofiber/fiber/v2"
)

const (
	SessionHeader = "X-Session-ID"

	paramSort   = "_sort"
	paramDesc   = "_desc"
	paramSearch = "_search"

	unloadConfirmMessage = "Do you want to save table filters before leaving?"
)

type ViewsUseCase interface {
	Render(ctx context.Context, in usecase.RenderInput) (*usecase.ViewModel, error)
	ReplaceFilters(ctx context.Context, in usecase.FiltersInput) (*usecase.ViewModel, error)
	SetFilter(ctx context.Context, in usecase.SetFilterInput) (*usecase.ViewModel, error)
	SetGrouping(ctx context.Context, in usecase.GroupingInput) (*usecase.ViewModel, error)
	Reset(ctx context.Context, ref usecase.SessionRef) (*usecase.ViewModel, error)
	Reload(ctx context.Context, ref usecase.SessionRef) (*usecase.ViewModel, error)
	Share(ctx context.Context, ref usecase.SessionRef) (filtersusecase.ShareResult, error)
	Unload(ctx context.Context, ref usecase.SessionRef) (filtersusecase.UnloadResult, error)
	ResolveShare(ctx context.Context, handle string) (string, error)
}

type ViewHandler struct {
	uc ViewsUseCase
}

func NewViewHandler(uc ViewsUseCase) *ViewHandler {
	return &ViewHandler{uc: uc}
}

// Register mounts the view routes on r.
func (h *ViewHandler) Register(r fiber.Router) {
	r.Get("/views/:view", h.GetView)
	r.Put("/views/:view/filters", h.ReplaceFilters)
	r.Patch("/views/:view/filters", h.SetFilter)
	r.Put("/views/:view/grouping", h.SetGrouping)
	r.Post("/views/:view/reset", h.Reset)
	r.Post("/views/:view/reload", h.Reload)
	r.Post("/views/:view/share", h.Share)
	r.Post("/views/:view/unload", h.Unload)
	r.Get("/s/:id", h.OpenShared)
}

// GetView godoc
// @Summary Render a view
// @Description Mounts the view session on first call (URL filters override stored ones), then returns columns, filtered rows and chart series
// @Tags Views
// @Produce json
// @Param view path string true "View name: data | pivot"
// @Param X-Session-ID header string false "View session id"
// @Param _sort query string false "Column to sort by"
// @Param _desc query bool false "Sort descending"
// @Param _search query string false "Global search text"
// @Success 200 {object} ViewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /views/{view} [get]
func (h *ViewHandler) GetView(c *fiber.Ctx) error {
	filterQuery, sortField, desc, search := splitReserved(string(c.Request().URI().QueryString()))

	vm, err := h.uc.Render(c.UserContext(), usecase.RenderInput{
		View:      c.Params("view"),
		SessionID: c.Get(SessionHeader),
		RawQuery:  filterQuery,
		SortField: sortField,
		SortDesc:  desc,
		Search:    search,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeView(c, vm)
}

// ReplaceFilters godoc
// @Summary Replace live filters
// @Description Sets the whole live filter set; the view URL and stored snapshot follow
// @Tags Filters
// @Accept json
// @Produce json
// @Param view path string true "View name"
// @Param X-Session-ID header string true "View session id"
// @Param request body ReplaceFiltersRequest true "Filter set"
// @Success 200 {object} ViewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /views/{view}/filters [put]
func (h *ViewHandler) ReplaceFilters(c *fiber.Ctx) error {
	var req ReplaceFiltersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	vm, err := h.uc.ReplaceFilters(c.UserContext(), usecase.FiltersInput{
		SessionRef: sessionRef(c),
		Filters:    fromPredicateDTOs(req.Filters),
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeView(c, vm)
}

// SetFilter godoc
// @Summary Set one filter
// @Description Adds or replaces the filter for a field; an empty value removes it
// @Tags Filters
// @Accept json
// @Produce json
// @Param view path string true "View name"
// @Param X-Session-ID header string true "View session id"
// @Param request body SetFilterRequest true "Predicate"
// @Success 200 {object} ViewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /views/{view}/filters [patch]
func (h *ViewHandler) SetFilter(c *fiber.Ctx) error {
	var req SetFilterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	vm, err := h.uc.SetFilter(c.UserContext(), usecase.SetFilterInput{
		SessionRef: sessionRef(c),
		Filter:     filtersdomain.Predicate{ID: req.ID, Value: req.Value},
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeView(c, vm)
}

// SetGrouping godoc
// @Summary Change the grouping bucket
// @Tags Views
// @Accept json
// @Produce json
// @Param view path string true "View name"
// @Param X-Session-ID header string true "View session id"
// @Param request body GroupingRequest true "Week | Month | Year | Clear"
// @Success 200 {object} ViewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /views/{view}/grouping [put]
func (h *ViewHandler) SetGrouping(c *fiber.Ctx) error {
	var req GroupingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	vm, err := h.uc.SetGrouping(c.UserContext(), usecase.GroupingInput{
		SessionRef: sessionRef(c),
		Grouping:   req.Grouping,
	})
	if err != nil {
		return writeError(c, err)
	}
	return writeView(c, vm)
}

// Reset godoc
// @Summary Reset filters
// @Description Clears the stored snapshot, the live filters and the URL query
// @Tags Filters
// @Produce json
// @Param view path string true "View name"
// @Param X-Session-ID header string true "View session id"
// @Success 200 {object} ViewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /views/{view}/reset [post]
func (h *ViewHandler) Reset(c *fiber.Ctx) error {
	vm, err := h.uc.Reset(c.UserContext(), sessionRef(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeView(c, vm)
}

// Reload godoc
// @Summary Reload the CSV source
// @Tags Views
// @Produce json
// @Param view path string true "View name"
// @Param X-Session-ID header string true "View session id"
// @Success 200 {object} ViewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /views/{view}/reload [post]
func (h *ViewHandler) Reload(c *fiber.Ctx) error {
	vm, err := h.uc.Reload(c.UserContext(), sessionRef(c))
	if err != nil {
		return writeError(c, err)
	}
	return writeView(c, vm)
}

// Share godoc
// @Summary Share the current view URL
// @Description Copies the full URL, filters included, to the clipboard backend
// @Tags Filters
// @Produce json
// @Param view path string true "View name"
// @Param X-Session-ID header string true "View session id"
// @Success 200 {object} ShareResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /views/{view}/share [post]
func (h *ViewHandler) Share(c *fiber.Ctx) error {
	res, err := h.uc.Share(c.UserContext(), sessionRef(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(ShareResponse{
		URL:     res.URL,
		ShareID: res.Handle,
		Copied:  res.Copied,
		Message: res.Message,
	})
}

// Unload godoc
// @Summary Page unload guard
// @Description Persists the live filters before responding; the pivot view also asks for confirmation
// @Tags Filters
// @Produce json
// @Param view path string true "View name"
// @Param X-Session-ID header string true "View session id"
// @Success 200 {object} UnloadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /views/{view}/unload [post]
func (h *ViewHandler) Unload(c *fiber.Ctx) error {
	res, err := h.uc.Unload(c.UserContext(), sessionRef(c))
	if err != nil {
		return writeError(c, err)
	}
	resp := UnloadResponse{Persisted: res.Persisted, Confirm: res.Confirm}
	if res.Confirm {
		resp.Message = unloadConfirmMessage
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// OpenShared godoc
// @Summary Open a shared URL
// @Tags Filters
// @Param id path string true "Share id"
// @Success 302
// @Failure 404 {object} ErrorResponse
// @Router /s/{id} [get]
func (h *ViewHandler) OpenShared(c *fiber.Ctx) error {
	target, err := h.uc.ResolveShare(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Redirect(target, http.StatusFound)
}

func sessionRef(c *fiber.Ctx) usecase.SessionRef {
	return usecase.SessionRef{View: c.Params("view"), SessionID: c.Get(SessionHeader)}
}

// splitReserved takes the render parameters out of raw and returns the rest,
// in its original order, as the filter query.
func splitReserved(raw string) (filterQuery, sortField string, desc bool, search string) {
	var kept []string
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		key, _ := url.QueryUnescape(k)
		val, _ := url.QueryUnescape(v)
		switch key {
		case paramSort:
			sortField = val
		case paramDesc:
			desc, _ = strconv.ParseBool(val)
		case paramSearch:
			search = val
		default:
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "&"), sortField, desc, search
}

func writeView(c *fiber.Ctx, vm *usecase.ViewModel) error {
	c.Set(SessionHeader, vm.SessionID)

	errs := vm.Errors
	if errs == nil {
		errs = []string{}
	}
	resp := ViewResponse{
		View:             vm.View,
		SessionID:        vm.SessionID,
		Loading:          vm.Loading,
		Errors:           errs,
		Columns:          vm.Columns,
		ColumnVisibility: vm.ColumnVisibility,
		Rows:             vm.Rows,
		TotalRows:        vm.TotalRows,
		VisibleRows:      len(vm.Rows),
		Filters:          toPredicateDTOs(vm.Filters),
		Location:         vm.Location,
		URL:              vm.URL,
		Degraded:         vm.Degraded,
		Grouping:         string(vm.Grouping),
		GroupingKey:      vm.GroupingKey,
		Chart: ChartResponse{
			AxisKey:   vm.Chart.AxisKey,
			ValueKeys: vm.Chart.ValueKeys,
		},
	}
	if resp.Columns == nil {
		resp.Columns = []domain.ColumnDescriptor{}
	}
	if resp.Chart.ValueKeys == nil {
		resp.Chart.ValueKeys = []string{}
	}
	switch {
	case vm.Chart.Grouped != nil:
		resp.Chart.Series = vm.Chart.Grouped
	case vm.Chart.Entity != nil:
		resp.Chart.Series = vm.Chart.Entity
	default:
		resp.Chart.Series = []any{}
	}

	return c.Status(http.StatusOK).JSON(resp)
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnknownView),
		errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, filtersports.ErrShareNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrInvalidSessionID),
		errors.Is(err, filtersusecase.ErrInvalidPredicate),
		errors.Is(err, domain.ErrUnknownGrouping):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrGroupingDisabled),
		errors.Is(err, usecase.ErrActionDisabled):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "unsupported_action",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
