package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"sort"

	"linewatch/internal/app/seen"
	"linewatch/internal/pkg/errs"
	"linewatch/internal/pkg/logx"
	"linewatch/internal/pkg/resp"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// eventCount is one row of the last-event frequency table.
type eventCount struct {
	Event string
	Count int
}

type adminUsersView struct {
	Title         string
	Users         []seen.SeenUser
	Total         int
	DistinctUsers int
	EventCounts   []eventCount
	StorageMode   string
}

// HandleAdminUsers renders the seen-users dashboard: the recorded users ordered
// most-recent-first, total and distinct counts, and a frequency table of last
// event types. Authentication happens in the basicauth middleware on the route.
func HandleAdminUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := deps.Store.List(r.Context(), seen.DefaultListLimit)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrStorageUnavailable, err))
			return
		}

		counts := make(map[string]int)
		distinct := make(map[string]struct{})
		for _, user := range users {
			counts[user.LastEvent]++
			distinct[user.UserID] = struct{}{}
		}

		eventCounts := make([]eventCount, 0, len(counts))
		for event, count := range counts {
			eventCounts = append(eventCounts, eventCount{Event: event, Count: count})
		}
		sort.Slice(eventCounts, func(i, j int) bool {
			if eventCounts[i].Count != eventCounts[j].Count {
				return eventCounts[i].Count > eventCounts[j].Count
			}
			return eventCounts[i].Event < eventCounts[j].Event
		})

		view := adminUsersView{
			Title:         "Users",
			Users:         users,
			Total:         len(users),
			DistinctUsers: len(distinct),
			EventCounts:   eventCounts,
			StorageMode:   deps.StorageMode,
		}

		renderPage(w, r, "admin_users.html", view)
	}
}

// renderPage executes the named template into a buffer before writing, so a
// template error produces a clean 500 instead of a truncated page.
func renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		logx.Error(err, "template execution failed", "template", name)
		resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
