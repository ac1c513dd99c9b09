package api

import (
	"net/http"

	"github.com/TWRT/arrival-location/internal/api/handlers"
	"github.com/TWRT/arrival-location/internal/service"
)

func SetupRouter(arrivalService *service.ArrivalService) *http.ServeMux {
	mux := http.NewServeMux()

	arrivalHandler := handlers.NewArrivalHandler(arrivalService)

	mux.HandleFunc("GET /arrival-locations", arrivalHandler.Load)
	mux.HandleFunc("POST /arrival-locations", arrivalHandler.Insert)
	mux.HandleFunc("PUT /arrival-locations", arrivalHandler.Update)
	mux.HandleFunc("DELETE /arrival-locations", arrivalHandler.Delete)

	mux.HandleFunc("GET /calls/{id}", arrivalHandler.GetCall)
	mux.HandleFunc("GET /calls", arrivalHandler.ListCalls)

	return mux
}
