package tlserver

import (
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlserver/tlserverclient"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlsolver"
	"github.com/gorilla/mux"
)

type solverOption struct {
	Key  string
	Name string
}

func (a *app) registerUI(router *mux.Router) {
	router.HandleFunc("/", a.servePage("home.html", a.homePage)).Methods(http.MethodGet)
	router.HandleFunc("/data", a.servePage("data.html", a.dataPage)).Methods(http.MethodGet)
	router.HandleFunc("/optimize", a.servePage("optimize.html", a.optimizePage)).Methods(http.MethodGet)
	router.HandleFunc("/results", a.servePage("results.html", a.resultsPage)).Methods(http.MethodGet)
	router.HandleFunc("/about", a.servePage("about.html", a.aboutPage)).Methods(http.MethodGet)

	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(a.env.StaticDir()))))
}

// pages are parsed per request so asset repairs show up without a restart
func (a *app) servePage(page string, data func() (interface{}, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tmpl, err := template.ParseFiles(
			filepath.Join(a.env.UIDir(), "layout.html"),
			filepath.Join(a.env.UIDir(), page))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		pageData, err := data()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if err := tmpl.ExecuteTemplate(w, "layout.html", pageData); err != nil {
			a.logl.Error.Printf("render %s: %v", page, err)
		}
	}
}

func (a *app) homePage() (interface{}, error) {
	instanceIDs, err := a.store.InstanceIDs()
	if err != nil {
		return nil, err
	}

	resultIDs, err := a.store.ResultIDs("")
	if err != nil {
		return nil, err
	}

	return struct {
		InstanceCount int
		ResultCount   int
	}{len(instanceIDs), len(resultIDs)}, nil
}

func (a *app) dataPage() (interface{}, error) {
	summaries, err := a.instanceSummaries()
	if err != nil {
		return nil, err
	}

	return struct {
		Instances []tlserverclient.InstanceSummary
	}{summaries}, nil
}

func (a *app) optimizePage() (interface{}, error) {
	instanceIDs, err := a.store.InstanceIDs()
	if err != nil {
		return nil, err
	}

	solvers := []solverOption{}
	for _, key := range tlsolver.Keys() {
		engine, err := tlsolver.New(key, tlsolver.Options{})
		if err != nil {
			return nil, err
		}

		solvers = append(solvers, solverOption{Key: key, Name: engine.Name()})
	}

	return struct {
		InstanceIDs []string
		Solvers     []solverOption
	}{instanceIDs, solvers}, nil
}

func (a *app) resultsPage() (interface{}, error) {
	ids, err := a.store.ResultIDs("")
	if err != nil {
		return nil, err
	}

	results := []tlserverclient.ResultSummary{}
	for _, id := range ids {
		result, err := a.store.Result(id)
		if err != nil {
			return nil, err
		}

		results = append(results, summarizeResult(id, result))
	}

	return struct {
		Results []tlserverclient.ResultSummary
	}{results}, nil
}

func (a *app) aboutPage() (interface{}, error) {
	return nil, nil
}
