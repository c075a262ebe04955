// HTTP server for the teaching load distribution workflow: JSON API for
// instances, optimization runs, timetables and report downloads, plus the
// department staff web UI on top of it.
package tlserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/function61/gokit/log/logex"
	"github.com/function61/gokit/net/http/httputils"
	"github.com/function61/gokit/sync/taskrunner"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlenv"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlgen"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlreport"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlserver/tlserverclient"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlsolver"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlstore"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tltimetable"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xuri/excelize/v2"
)

// listenOverride, when not empty, takes precedence over the configured
// listen address
func Server(ctx context.Context, env *tlenv.Env, listenOverride string, logger *log.Logger) error {
	if err := env.Check(); err != nil {
		return err
	}

	conf, err := env.LoadConfig()
	if err != nil {
		return err
	}

	if listenOverride != "" {
		conf.Listen = listenOverride
	}

	store, err := tlstore.Open(env.DatabasePath())
	if err != nil {
		return err
	}
	defer store.Close()

	tasks := taskrunner.New(ctx, logger)

	httpHandler := createHttpHandler(env, conf, store, NewMetrics(), func(task func(context.Context) error) {
		tasks.Start("mqtt", task)
	}, logger)

	srv := &http.Server{
		Addr:    conf.Listen,
		Handler: httpHandler,
	}

	tasks.Start("listener "+srv.Addr, func(_ context.Context) error {
		return httputils.RemoveGracefulServerClosedError(srv.ListenAndServe())
	})

	tasks.Start("listenershutdowner", httputils.ServerShutdownTask(srv))

	return tasks.Wait()
}

type app struct {
	env      *tlenv.Env
	conf     *tlenv.Config
	store    *tlstore.Store
	metrics  *Metrics
	notifier *mqttNotifier // nil unless an MQTT address is configured
	logl     *logex.Leveled
}

func createHttpHandler(
	env *tlenv.Env,
	conf *tlenv.Config,
	store *tlstore.Store,
	metrics *Metrics,
	startMqttTask func(task func(context.Context) error),
	logger *log.Logger,
) http.Handler {
	notifier := func() *mqttNotifier {
		if conf.MQTTAddress == "" {
			return nil
		}

		return newMqttNotifier(conf.MQTTAddress, startMqttTask, logex.Prefix("mqtt", logger))
	}()

	return serverHandler(&app{
		env:      env,
		conf:     conf,
		store:    store,
		metrics:  metrics,
		notifier: notifier,
		logl:     logex.Levels(logger),
	})
}

func serverHandler(a *app) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		instanceIDs, err := a.store.InstanceIDs()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		resultIDs, err := a.store.ResultIDs("")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondJson(w, tlserverclient.HealthOutput{
			Status:    "ok",
			Instances: len(instanceIDs),
			Results:   len(resultIDs),
		})
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/instances", func(w http.ResponseWriter, r *http.Request) {
		summaries, err := a.instanceSummaries()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondJson(w, summaries)
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/instances/generate", func(w http.ResponseWriter, r *http.Request) {
		input := &tlserverclient.GenerateInstanceInput{}
		if err := json.NewDecoder(r.Body).Decode(input); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		instance, err := tlgen.New(input.Seed).Instance(input.Size, input.Name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		id := tlstore.InstanceID(instance)

		if err := a.store.PutInstance(id, instance); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		a.metrics.InstanceGenerateOps.Inc()

		respondJson(w, summarizeInstance(id, instance))
	}).Methods(http.MethodPost)

	router.HandleFunc("/api/instances/{id}", func(w http.ResponseWriter, r *http.Request) {
		instance, err := a.store.Instance(mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, tlstore.ErrNotFound) {
				http.NotFound(w, r)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		respondJson(w, instance)
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/instances/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := a.store.DeleteInstance(mux.Vars(r)["id"]); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}).Methods(http.MethodDelete)

	router.HandleFunc("/api/solve", func(w http.ResponseWriter, r *http.Request) {
		input := &tlserverclient.SolveInput{}
		if err := json.NewDecoder(r.Body).Decode(input); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		solver, err := tlsolver.New(input.Solver, tlsolver.Options{
			TimeLimit: time.Duration(input.TimeLimitSeconds) * time.Second,
			Seed:      input.Seed,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		instance, err := a.store.Instance(input.InstanceID)
		if err != nil {
			if errors.Is(err, tlstore.ErrNotFound) {
				http.NotFound(w, r)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		result, err := solver.Solve(r.Context(), instance)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		result.InstanceID = input.InstanceID

		id := tlstore.ResultID(input.InstanceID, input.Solver)

		if err := a.store.PutResult(id, result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		a.metrics.SolveOps.WithLabelValues(input.Solver).Inc()
		a.metrics.SolveDurationSeconds.WithLabelValues(input.Solver).Observe(result.ComputationTime.Seconds())

		if a.notifier != nil {
			if err := a.notifier.NotifyResultStored(id, input.Solver, result.Status); err != nil {
				a.logl.Error.Printf("%v", err)
			}
		}

		respondJson(w, summarizeResult(id, result))
	}).Methods(http.MethodPost)

	router.HandleFunc("/api/results", func(w http.ResponseWriter, r *http.Request) {
		ids, err := a.store.ResultIDs(r.URL.Query().Get("instance"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		summaries := []tlserverclient.ResultSummary{}
		for _, id := range ids {
			result, err := a.store.Result(id)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			summaries = append(summaries, summarizeResult(id, result))
		}

		respondJson(w, summaries)
	}).Methods(http.MethodGet)

	// result ids contain a slash, so they travel as a query parameter
	router.HandleFunc("/api/result", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "result id not defined", http.StatusBadRequest)
			return
		}

		result, err := a.store.Result(id)
		if err != nil {
			if errors.Is(err, tlstore.ErrNotFound) {
				http.NotFound(w, r)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		respondJson(w, result)
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/result", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "result id not defined", http.StatusBadRequest)
			return
		}

		if err := a.store.DeleteResult(id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}).Methods(http.MethodDelete)

	router.HandleFunc("/api/timetables", func(w http.ResponseWriter, r *http.Request) {
		input := &tlserverclient.TimetableInput{}
		if err := json.NewDecoder(r.Body).Decode(input); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := a.store.Result(input.ResultID)
		if err != nil {
			if errors.Is(err, tlstore.ErrNotFound) {
				http.NotFound(w, r)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		instance, err := a.store.Instance(result.InstanceID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		timetable := tltimetable.New(input.Seed).Generate(instance, result, nil)
		timetable.ResultID = input.ResultID

		if err := a.store.PutTimetable(input.ResultID, timetable); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		a.metrics.TimetableBuildOps.Inc()

		respondJson(w, summarizeTimetable(input.ResultID, timetable))
	}).Methods(http.MethodPost)

	router.HandleFunc("/api/timetable", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "timetable id not defined", http.StatusBadRequest)
			return
		}

		timetable, err := a.store.Timetable(id)
		if err != nil {
			if errors.Is(err, tlstore.ErrNotFound) {
				http.NotFound(w, r)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		respondJson(w, timetable)
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/timetable/grid", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "timetable id not defined", http.StatusBadRequest)
			return
		}

		facultyID := 0 // all faculty
		if raw := r.URL.Query().Get("faculty"); raw != "" {
			var err error
			facultyID, err = strconv.Atoi(raw)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		timetable, err := a.store.Timetable(id)
		if err != nil {
			if errors.Is(err, tlstore.ErrNotFound) {
				http.NotFound(w, r)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		result, err := a.store.Result(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		instance, err := a.store.Instance(result.InstanceID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		respondJson(w, tltimetable.WeeklyGrid(timetable, instance, facultyID))
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/reports/official", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("result")
		if id == "" {
			http.Error(w, "result id not defined", http.StatusBadRequest)
			return
		}

		result, err := a.store.Result(id)
		if err != nil {
			if errors.Is(err, tlstore.ErrNotFound) {
				http.NotFound(w, r)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		instance, err := a.store.Instance(result.InstanceID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		file, err := tlreport.Official(instance, result, tlreport.Options{
			DepartmentName: a.conf.DepartmentName,
			AcademicYear:   a.conf.AcademicYear,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		a.metrics.ReportBuildOps.WithLabelValues("official").Inc()

		a.respondXlsx(w, file, "teaching-load-"+safeFilename(id)+".xlsx")
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/reports/plan", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("result")
		if id == "" {
			http.Error(w, "result id not defined", http.StatusBadRequest)
			return
		}

		facultyID, err := strconv.Atoi(r.URL.Query().Get("faculty"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := a.store.Result(id)
		if err != nil {
			if errors.Is(err, tlstore.ErrNotFound) {
				http.NotFound(w, r)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		instance, err := a.store.Instance(result.InstanceID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if _, err := instance.FacultyByID(facultyID); err != nil {
			http.NotFound(w, r)
			return
		}

		file, err := tlreport.IndividualPlan(instance, result, facultyID, a.conf.AcademicYear)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		a.metrics.ReportBuildOps.WithLabelValues("plan").Inc()

		a.respondXlsx(w, file, fmt.Sprintf("individual-plan-%d.xlsx", facultyID))
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/reports/assignments", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("result")
		if id == "" {
			http.Error(w, "result id not defined", http.StatusBadRequest)
			return
		}

		result, err := a.store.Result(id)
		if err != nil {
			if errors.Is(err, tlstore.ErrNotFound) {
				http.NotFound(w, r)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}

		instance, err := a.store.Instance(result.InstanceID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		a.metrics.ReportBuildOps.WithLabelValues("assignments").Inc()

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf(
			`attachment; filename="assignments-%s.csv"`, safeFilename(id)))

		if err := tlreport.AssignmentsCSV(instance, result, w); err != nil {
			a.logl.Error.Printf("AssignmentsCSV: %v", err)
		}
	}).Methods(http.MethodGet)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	a.registerUI(router)

	return router
}

func (a *app) instanceSummaries() ([]tlserverclient.InstanceSummary, error) {
	ids, err := a.store.InstanceIDs()
	if err != nil {
		return nil, err
	}

	summaries := []tlserverclient.InstanceSummary{}
	for _, id := range ids {
		instance, err := a.store.Instance(id)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, summarizeInstance(id, instance))
	}

	return summaries, nil
}

func summarizeInstance(id string, instance *tl.ProblemInstance) tlserverclient.InstanceSummary {
	capacityOK, capacityNote := instance.CheckCapacityFeasibility()

	return tlserverclient.InstanceSummary{
		ID:            id,
		Name:          instance.Name,
		FacultyCount:  len(instance.Faculty),
		ActivityCount: len(instance.Activities),
		TotalDemand:   instance.TotalDemand(),
		TotalCapacity: instance.TotalCapacity(),
		CapacityOK:    capacityOK,
		CapacityNote:  capacityNote,
	}
}

func summarizeResult(id string, result *tl.OptimizationResult) tlserverclient.ResultSummary {
	return tlserverclient.ResultSummary{
		ID:             id,
		InstanceID:     result.InstanceID,
		SolverName:     result.SolverName,
		Status:         result.Status,
		ObjectiveValue: result.ObjectiveValue,
		TotalDeviation: result.TotalDeviation,
		Seconds:        result.ComputationTime.Seconds(),
		Feasible:       result.Feasible,
		Unassigned:     len(result.Unassigned),
	}
}

func summarizeTimetable(id string, timetable *tl.Timetable) tlserverclient.TimetableSummary {
	return tlserverclient.TimetableSummary{
		ID:        id,
		Scheduled: len(timetable.Scheduled),
		Unplaced:  len(timetable.Unplaced),
		Rooms:     len(timetable.Rooms),
		Conflicts: len(timetable.Conflicts()),
	}
}

func (a *app) respondXlsx(w http.ResponseWriter, file *excelize.File, filename string) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := file.Write(w); err != nil {
		a.logl.Error.Printf("respondXlsx: %v", err)
	}
}

// result ids embed the instance id ("small-42/greedy")
func safeFilename(id string) string {
	return strings.ReplaceAll(id, "/", "_")
}

var respondJson = httputils.RespondJson // shorthand
