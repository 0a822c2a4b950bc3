package handler

import (
	"net/http"

	"linewatch/internal/pkg/resp"
)

type healthStatus struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}

// HandleHealth reports liveness and which storage variant was resolved at startup.
func HandleHealth(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondRaw(w, r, http.StatusOK, healthStatus{
			Status: "ok",
			DB:     deps.StorageMode,
		})
	}
}

type homeView struct {
	Title       string
	StorageMode string
}

// HandleHome renders the static status page.
func HandleHome(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, r, "home.html", homeView{
			Title:       "linewatch",
			StorageMode: deps.StorageMode,
		})
	}
}
