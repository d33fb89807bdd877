// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/nebibs-backend/restdata"
	"github.com/diffeo/nebibs-backend/table"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter creates a new router that processes all nebibs requests.
// All resources are under the URL path root, e.g. /experiments.  For
// more control over this setup, create a mux.Router and call
// PopulateRouter instead.
func NewRouter(c table.Client) *mux.Router {
	r := mux.NewRouter()
	PopulateRouter(r, c, logrus.StandardLogger())
	return r
}

// PopulateRouter adds nebibs routes to an existing
// github.com/gorilla/mux router object.  This can be used, for
// instance, to place the API under a subpath:
//
//     r := mux.NewRouter()
//     s := r.PathPrefix("/api").Subrouter()
//     restserver.PopulateRouter(s, memory.New(), logrus.StandardLogger())
//
// Server faults are logged to log.
func PopulateRouter(r *mux.Router, c table.Client, log logrus.FieldLogger) {
	api := &restAPI{Client: instrument(c), Router: r, Log: log}
	api.PopulateRouter(r)
}

// restAPI holds the persistent state for the REST API.
type restAPI struct {
	Client table.Client
	Router *mux.Router
	Log    logrus.FieldLogger
}

// collections returns the three record collections.
func (api *restAPI) collections() []*collection {
	return []*collection{
		{
			api:       api,
			Name:      "experiment",
			Record:    restdata.Experiment{},
			Payloads:  restdata.ExperimentPayloads,
			Resource:  "experiments",
			Path:      "/experiments",
			Table:     "experiments",
			OrderBy:   "created_at",
			NotFound:  "Experiment not found",
			Normalize: func(row table.Row) (restdata.Record, error) { return restdata.NormalizeExperiment(row) },
			CreateRow: restdata.ExperimentCreateRow,
			Changes:   restdata.ExperimentChanges,
		},
		{
			api:       api,
			Name:      "learningGoal",
			Record:    restdata.LearningGoal{},
			Payloads:  restdata.LearningGoalPayloads,
			Resource:  "learning_goals",
			Path:      "/learning/goals",
			Table:     "learning_goals",
			OrderBy:   "created_at",
			NotFound:  "Goal not found",
			Normalize: func(row table.Row) (restdata.Record, error) { return restdata.NormalizeLearningGoal(row) },
			CreateRow: restdata.LearningGoalCreateRow,
			Changes:   restdata.LearningGoalChanges,
		},
		{
			api:       api,
			Name:      "serviceEntry",
			Record:    restdata.ServiceEntry{},
			Payloads:  restdata.ServiceEntryPayloads,
			Resource:  "service_entries",
			Path:      "/service/entries",
			Table:     "service_entries",
			OrderBy:   "date",
			NotFound:  "Entry not found",
			Normalize: func(row table.Row) (restdata.Record, error) { return restdata.NormalizeServiceEntry(row) },
			CreateRow: restdata.ServiceEntryCreateRow,
			Changes:   restdata.ServiceEntryChanges,
		},
	}
}

// PopulateRouter adds all URL paths to a router.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	collections := api.collections()
	for _, c := range collections {
		c.PopulateRouter(r)
	}
	r.Path("/health").Name("health").Handler(&resourceHandler{
		Resource: "health",
		Context:  api.Context,
		Log:      api.Log,
		Get:      api.Health,
	})
	r.Path("/openapi.json").Name("openapi").Methods("GET", "HEAD").
		HandlerFunc(api.serveOpenAPI(collections))
	api.populateDocs(r)
	r.Path("/").Name("root").Handler(&resourceHandler{
		Resource: "root",
		Context:  api.Context,
		Log:      api.Log,
		Get:      api.RootDocument,
	})
}

// RootDocument describes the service.
func (api *restAPI) RootDocument(ctx *requestContext) (interface{}, error) {
	resp := restdata.RootData{Service: "nebibs-backend"}
	err := buildURLs(api.Router).
		URL(&resp.Docs, "docs").
		Error
	return resp, err
}

// Health reports that the process is up.  It does not contact the
// table store.
func (api *restAPI) Health(ctx *requestContext) (interface{}, error) {
	return restdata.HealthData{Status: "ok"}, nil
}
