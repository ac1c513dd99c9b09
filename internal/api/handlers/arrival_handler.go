package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/TWRT/arrival-location/internal/formvars"
	"github.com/TWRT/arrival-location/internal/ido"
	"github.com/TWRT/arrival-location/internal/repository"
	"github.com/TWRT/arrival-location/internal/service"
)

const defaultCallsLimit = 50

// SelectedLineRequestBody identifies the order line a write applies to.
type SelectedLineRequestBody struct {
	CoNum      string `json:"co_num"`
	CoLine     string `json:"co_line"`
	CoRelease  string `json:"co_release"`
	RecordDate string `json:"record_date"`
	RowPointer string `json:"row_pointer"`
	ItemId     string `json:"item_id"`
}

type ArrivalHandler struct {
	arrivalService *service.ArrivalService
}

func NewArrivalHandler(arrivalService *service.ArrivalService) *ArrivalHandler {
	return &ArrivalHandler{
		arrivalService: arrivalService,
	}
}

// GET /arrival-locations?co_num=&stat=&adr0_name=&projected_date=&whse=
func (h *ArrivalHandler) Load(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vars := formvars.New(map[string]string{
		service.VarUser:             r.Header.Get("X-User"),
		service.VarSearchCoNum:      q.Get("co_num"),
		service.VarSearchStat:       q.Get("stat"),
		service.VarDeliveryLocation: q.Get("adr0_name"),
		service.VarShipDate:         q.Get("projected_date"),
		service.VarShipLocation:     q.Get("whse"),
	})

	if err := h.arrivalService.CallAPI(r.Context(), ido.ModeRead, vars, vars); err != nil {
		writeError(w, err)
		return
	}

	result, _ := vars.Lookup(service.ResultSlot)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, result)
}

func (h *ArrivalHandler) Insert(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, ido.ModeInsert)
}

func (h *ArrivalHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, ido.ModeUpdate)
}

func (h *ArrivalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, ido.ModeDelete)
}

func (h *ArrivalHandler) write(w http.ResponseWriter, r *http.Request, mode ido.Mode) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Error trying to read the body: " + err.Error(),
		})
		return
	}

	var reqBody SelectedLineRequestBody
	if err := json.Unmarshal(body, &reqBody); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "JSON error: " + err.Error(),
		})
		return
	}

	q := r.URL.Query()
	vars := formvars.New(map[string]string{
		service.VarUser:             r.Header.Get("X-User"),
		"selectCoNum":               reqBody.CoNum,
		"selectCoLine":              reqBody.CoLine,
		"selectCoRelease":           reqBody.CoRelease,
		"selectRecordDate":          reqBody.RecordDate,
		"selectRowPointer":          reqBody.RowPointer,
		"selectItemId":              reqBody.ItemId,
		service.VarSearchCoNum:      q.Get("co_num"),
		service.VarSearchStat:       q.Get("stat"),
		service.VarDeliveryLocation: q.Get("adr0_name"),
		service.VarShipDate:         q.Get("projected_date"),
		service.VarShipLocation:     q.Get("whse"),
	})

	err = h.arrivalService.CallAPI(r.Context(), mode, vars, vars)
	var refetchErr *service.RefetchError
	if errors.As(err, &refetchErr) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message":       mode.String() + " accepted",
			"refetch_error": refetchErr.Err.Error(),
		})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	// refetch after write publishes the reloaded lines
	if result, ok := vars.Lookup(service.ResultSlot); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, result)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": mode.String() + " accepted",
	})
}

// GET /calls?limit=
func (h *ArrivalHandler) ListCalls(w http.ResponseWriter, r *http.Request) {
	limit := defaultCallsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": "limit must be a positive integer",
			})
			return
		}
		limit = n
	}

	calls, err := h.arrivalService.RecentCalls(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Error trying to list calls: " + err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"calls": calls,
	})
}

// GET /calls/{id}
func (h *ArrivalHandler) GetCall(w http.ResponseWriter, r *http.Request) {
	call, err := h.arrivalService.GetCall(r.Context(), r.PathValue("id"))
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": err.Error(),
		})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Error trying to get call: " + err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, call)
}

func writeError(w http.ResponseWriter, err error) {
	var (
		remoteErr *ido.RemoteAPIError
		parseErr  *ido.ParseError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ido.ErrUnsupportedMode), errors.Is(err, ido.ErrMalformedFilter):
		status = http.StatusBadRequest
	case errors.As(err, &remoteErr), errors.As(err, &parseErr):
		status = http.StatusBadGateway
	}

	writeJSON(w, status, map[string]string{
		"error": err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
