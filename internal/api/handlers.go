package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/roach88/y2km/internal/store"
	"github.com/roach88/y2km/internal/y2km"
)

// Handler serves the month and column routes.
type Handler struct {
	store  *store.Store
	policy y2km.RangePolicy
}

// NewHandler creates a handler. st may be nil, in which case the column
// routes answer 503.
func NewHandler(st *store.Store, policy y2km.RangePolicy) *Handler {
	return &Handler{store: st, policy: policy}
}

// RegisterRoutes mounts all routes under /api.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/months/:month", h.GetMonth)
	api.POST("/months/parse", h.ParseMonths)
	api.POST("/months/format", h.FormatMonths)
	api.POST("/months/diff", h.DiffMonths)
	api.POST("/months/shift", h.ShiftMonths)
	api.GET("/columns", h.ListColumns)
	api.GET("/columns/:name", h.GetColumn)
	api.PUT("/columns/:name", h.PutColumn)
}

// MonthInfo describes a single month.
type MonthInfo struct {
	Month  string `json:"month"`
	Offset int16  `json:"offset"`
	Year   int    `json:"year"`
	Number int    `json:"number"`
}

// TextValues is a list of nullable YYYY-MM strings.
type TextValues struct {
	Values []*string `json:"values"`
}

// OffsetValues is a list of nullable month-counts.
type OffsetValues struct {
	Offsets []*int `json:"offsets"`
}

// DiffRequest is the body of POST /api/months/diff.
type DiffRequest struct {
	Left  []*string `json:"left"`
	Right []*string `json:"right"`
}

// DiffResponse holds nullable month deltas.
type DiffResponse struct {
	Deltas []*int32 `json:"deltas"`
}

// ShiftRequest is the body of POST /api/months/shift.
type ShiftRequest struct {
	Values []*string `json:"values"`
	By     int       `json:"by"`
}

// ColumnResponse is a stored column with its version metadata.
type ColumnResponse struct {
	Version store.Version `json:"version"`
	Values  []*string     `json:"values"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GetMonth describes the month named in the path.
func (h *Handler) GetMonth(c echo.Context) error {
	m, err := y2km.ParseMonth(c.Param("month"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MonthInfo{
		Month:  y2km.FormatMonth(m),
		Offset: int16(m),
		Year:   m.Year(),
		Number: int(m.Month()),
	})
}

// ParseMonths converts text values to month-counts.
func (h *Handler) ParseMonths(c echo.Context) error {
	var req TextValues
	if err := c.Bind(&req); err != nil {
		return err
	}
	seq, err := h.fromText(req.Values)
	if err != nil {
		return writeError(c, err)
	}

	resp := OffsetValues{Offsets: make([]*int, seq.Len())}
	for i := range resp.Offsets {
		if !seq.IsNull(i) {
			v := int(seq.Value(i))
			resp.Offsets[i] = &v
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// FormatMonths converts month-counts to text values.
func (h *Handler) FormatMonths(c echo.Context) error {
	var req OffsetValues
	if err := c.Bind(&req); err != nil {
		return err
	}
	boxed := make([]any, len(req.Offsets))
	for i, v := range req.Offsets {
		if v != nil {
			boxed[i] = *v
		}
	}
	seq, err := y2km.FromAny(boxed, y2km.WithRangePolicy(h.policy))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, TextValues{Values: textValues(seq)})
}

// DiffMonths returns left - right in months, element-wise.
func (h *Handler) DiffMonths(c echo.Context) error {
	var req DiffRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	left, err := h.fromText(req.Left)
	if err != nil {
		return writeError(c, err)
	}
	right, err := h.fromText(req.Right)
	if err != nil {
		return writeError(c, err)
	}
	deltas, err := left.Diff(right)
	if err != nil {
		return writeError(c, err)
	}

	resp := DiffResponse{Deltas: make([]*int32, deltas.Len())}
	for i := range resp.Deltas {
		if !deltas.IsNull(i) {
			v := deltas.Value(i)
			resp.Deltas[i] = &v
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// ShiftMonths adds a month offset to every value.
func (h *Handler) ShiftMonths(c echo.Context) error {
	var req ShiftRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	seq, err := h.fromText(req.Values)
	if err != nil {
		return writeError(c, err)
	}
	shifted, err := seq.Shift(req.By)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, TextValues{Values: textValues(shifted)})
}

// ListColumns returns the latest version of every stored column.
func (h *Handler) ListColumns(c echo.Context) error {
	if h.store == nil {
		return writeError(c, errNoStore)
	}
	versions, err := h.store.ListColumns(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, versions)
}

// GetColumn returns a stored column, the latest version unless ?seq is given.
func (h *Handler) GetColumn(c echo.Context) error {
	if h.store == nil {
		return writeError(c, errNoStore)
	}
	ctx := c.Request().Context()
	name := c.Param("name")

	var (
		seq *y2km.Sequence
		v   store.Version
		err error
	)
	if raw := c.QueryParam("seq"); raw != "" {
		n, convErr := strconv.ParseInt(raw, 10, 64)
		if convErr != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    "BAD_REQUEST",
				Message: "seq must be a positive integer",
			})
		}
		seq, v, err = h.store.ReadVersion(ctx, name, n)
	} else {
		seq, v, err = h.store.ReadColumn(ctx, name)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ColumnResponse{Version: v, Values: textValues(seq)})
}

// PutColumn stores a new version of a column from text values.
func (h *Handler) PutColumn(c echo.Context) error {
	if h.store == nil {
		return writeError(c, errNoStore)
	}
	var req TextValues
	if err := c.Bind(&req); err != nil {
		return err
	}
	seq, err := h.fromText(req.Values)
	if err != nil {
		return writeError(c, err)
	}
	v, err := h.store.WriteColumn(c.Request().Context(), c.Param("name"), seq)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) fromText(values []*string) (*y2km.Sequence, error) {
	boxed := make([]any, len(values))
	for i, v := range values {
		if v != nil {
			boxed[i] = *v
		}
	}
	return y2km.FromAny(boxed, y2km.WithRangePolicy(h.policy))
}

func textValues(seq *y2km.Sequence) []*string {
	text := seq.ToText()
	out := make([]*string, len(text))
	for i := range text {
		if !seq.IsNull(i) {
			out[i] = &text[i]
		}
	}
	return out
}

var errNoStore = errors.New("no column store configured")

// writeError maps codec and store errors to HTTP status codes.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	code := "INTERNAL"

	switch {
	case errors.Is(err, store.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, errNoStore):
		status, code = http.StatusServiceUnavailable, "NO_STORE"
	case y2km.CodeOf(err) == y2km.ErrCodeParse, y2km.CodeOf(err) == y2km.ErrCodeTypeMismatch:
		status, code = http.StatusBadRequest, string(y2km.CodeOf(err))
	case y2km.CodeOf(err) != "":
		status, code = http.StatusUnprocessableEntity, string(y2km.CodeOf(err))
	}
	return c.JSON(status, ErrorResponse{Code: code, Message: err.Error()})
}
