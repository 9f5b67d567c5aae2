package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type TransferRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

type AccountRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

func New(
	transferController TransferRouteRegistrar,
	accountController AccountRouteRegistrar,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if transferController != nil {
		transferController.RegisterRoutes(mux)
	}
	if accountController != nil {
		accountController.RegisterRoutes(mux)
	}

	return mux
}
