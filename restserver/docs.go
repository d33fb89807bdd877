// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

// populateDocs adds the interactive API page.  /docs redirects into
// the Swagger UI served under /docs/, which loads the "openapi"
// route's document.
func (api *restAPI) populateDocs(r *mux.Router) {
	var specURL, indexURL string
	if err := buildURLs(r).URL(&specURL, "openapi").Error; err != nil {
		api.Log.WithFields(logrus.Fields{"err": err}).Error("could not set up docs page")
		return
	}
	ui := httpSwagger.Handler(httpSwagger.URL(specURL))
	r.Path("/docs/index.html").Name("docsIndex").Handler(ui)
	if err := buildURLs(r).URL(&indexURL, "docsIndex").Error; err != nil {
		api.Log.WithFields(logrus.Fields{"err": err}).Error("could not set up docs page")
		return
	}
	r.Path("/docs").Name("docs").Methods("GET", "HEAD").
		Handler(http.RedirectHandler(indexURL, http.StatusMovedPermanently))
	r.PathPrefix("/docs/").Handler(ui)
}
