package tlserver

import (
	"context"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/function61/gokit/net/http/ezhttp"
	"github.com/function61/gokit/testing/assert"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlenv"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlserver/tlserverclient"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlstore"
	"github.com/xuri/excelize/v2"
)

// prometheus collectors register once per test binary
var testMetrics = NewMetrics()

func discardLogger() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

func testServer(t *testing.T) (*tlserverclient.Client, *httptest.Server, func()) {
	dir, err := ioutil.TempDir("", "tlserver")
	assert.Ok(t, err)

	env, err := tlenv.Resolve(filepath.Join(dir, "env"))
	assert.Ok(t, err)
	assert.Ok(t, env.Init())

	conf, err := env.LoadConfig()
	assert.Ok(t, err)

	store, err := tlstore.Open(env.DatabasePath())
	assert.Ok(t, err)

	handler := createHttpHandler(env, conf, store, testMetrics, func(task func(context.Context) error) {
		t.Error("mqtt task must not start without an address")
	}, discardLogger())

	srv := httptest.NewServer(handler)

	return tlserverclient.New(srv.URL, discardLogger()), srv, func() {
		srv.Close()
		store.Close()
		os.RemoveAll(dir)
	}
}

func generateSmall(t *testing.T, client *tlserverclient.Client) tlserverclient.InstanceSummary {
	summary, err := client.GenerateInstance(context.Background(), tlserverclient.GenerateInstanceInput{
		Size: "small",
		Seed: 42,
	})
	assert.Ok(t, err)

	return *summary
}

func TestHealth(t *testing.T) {
	client, _, cleanup := testServer(t)
	defer cleanup()

	health, err := client.Health(context.Background())
	assert.Ok(t, err)
	assert.EqualString(t, health.Status, "ok")
	assert.Assert(t, health.Instances == 0)
	assert.Assert(t, health.Results == 0)

	generateSmall(t, client)

	health, err = client.Health(context.Background())
	assert.Ok(t, err)
	assert.Assert(t, health.Instances == 1)
}

func TestGenerateAndFetchInstance(t *testing.T) {
	client, _, cleanup := testServer(t)
	defer cleanup()

	summary := generateSmall(t, client)

	assert.EqualString(t, summary.ID, "small-42")
	assert.Assert(t, summary.FacultyCount == 15)
	assert.Assert(t, summary.ActivityCount > 0)
	assert.Assert(t, summary.TotalDemand > 0)

	summaries, err := client.Instances(context.Background())
	assert.Ok(t, err)
	assert.Assert(t, len(summaries) == 1)
	assert.EqualString(t, summaries[0].ID, "small-42")

	instance, err := client.Instance(context.Background(), "small-42")
	assert.Ok(t, err)
	assert.EqualString(t, instance.Name, summary.Name)
	assert.Assert(t, len(instance.Faculty) == 15)

	_, err = client.Instance(context.Background(), "small-43")
	assert.Assert(t, os.IsNotExist(err))
}

func TestSolveStoresResult(t *testing.T) {
	client, _, cleanup := testServer(t)
	defer cleanup()

	generateSmall(t, client)

	summary, err := client.Solve(context.Background(), tlserverclient.SolveInput{
		InstanceID: "small-42",
		Solver:     "greedy",
	})
	assert.Ok(t, err)
	assert.EqualString(t, summary.ID, "small-42/greedy")
	assert.EqualString(t, summary.InstanceID, "small-42")
	assert.EqualString(t, summary.SolverName, "Greedy")
	assert.Assert(t, summary.Status != "")

	summaries, err := client.Results(context.Background(), "small-42")
	assert.Ok(t, err)
	assert.Assert(t, len(summaries) == 1)

	result, err := client.Result(context.Background(), "small-42/greedy")
	assert.Ok(t, err)

	instance, err := client.Instance(context.Background(), "small-42")
	assert.Ok(t, err)
	assert.Assert(t, len(result.Assignments) == len(instance.Activities))

	_, err = client.Result(context.Background(), "small-42/genetic")
	assert.Assert(t, os.IsNotExist(err))
}

func TestSolveRejectsUnknownSolver(t *testing.T) {
	client, _, cleanup := testServer(t)
	defer cleanup()

	generateSmall(t, client)

	_, err := client.Solve(context.Background(), tlserverclient.SolveInput{
		InstanceID: "small-42",
		Solver:     "simplex",
	})
	assert.Assert(t, err != nil)
	assert.Assert(t, ezhttp.ErrorIs(err, http.StatusBadRequest))
}

func TestSolveUnknownInstanceIsNotFound(t *testing.T) {
	client, _, cleanup := testServer(t)
	defer cleanup()

	_, err := client.Solve(context.Background(), tlserverclient.SolveInput{
		InstanceID: "small-42",
		Solver:     "greedy",
	})
	assert.Assert(t, os.IsNotExist(err))
}

func TestTimetableFlow(t *testing.T) {
	client, srv, cleanup := testServer(t)
	defer cleanup()

	generateSmall(t, client)

	_, err := client.Solve(context.Background(), tlserverclient.SolveInput{
		InstanceID: "small-42",
		Solver:     "greedy",
	})
	assert.Ok(t, err)

	summary, err := client.BuildTimetable(context.Background(), tlserverclient.TimetableInput{
		ResultID: "small-42/greedy",
		Seed:     1,
	})
	assert.Ok(t, err)
	assert.EqualString(t, summary.ID, "small-42/greedy")
	assert.Assert(t, summary.Scheduled > 0)
	assert.Assert(t, summary.Rooms > 0)
	assert.Assert(t, summary.Conflicts == 0)

	timetable, err := client.Timetable(context.Background(), "small-42/greedy")
	assert.Ok(t, err)
	assert.Assert(t, len(timetable.Scheduled) == summary.Scheduled)

	res, err := http.Get(srv.URL + "/api/timetable/grid?id=small-42%2Fgreedy")
	assert.Ok(t, err)
	defer res.Body.Close()
	assert.Assert(t, res.StatusCode == http.StatusOK)

	body, err := ioutil.ReadAll(res.Body)
	assert.Ok(t, err)
	assert.Assert(t, strings.Contains(string(body), "Дүйсенбі"))
}

func TestOfficialReportDownload(t *testing.T) {
	client, srv, cleanup := testServer(t)
	defer cleanup()

	generateSmall(t, client)

	_, err := client.Solve(context.Background(), tlserverclient.SolveInput{
		InstanceID: "small-42",
		Solver:     "greedy",
	})
	assert.Ok(t, err)

	res, err := http.Get(srv.URL + "/api/reports/official?result=small-42%2Fgreedy")
	assert.Ok(t, err)
	defer res.Body.Close()

	assert.Assert(t, res.StatusCode == http.StatusOK)
	assert.EqualString(
		t,
		res.Header.Get("Content-Disposition"),
		`attachment; filename="teaching-load-small-42_greedy.xlsx"`)

	workbook, err := excelize.OpenReader(res.Body)
	assert.Ok(t, err)

	title, err := workbook.GetCellValue("Жүктеме бөлу", "A1")
	assert.Ok(t, err)
	assert.Assert(t, strings.Contains(title, "Распределение учебно-педагогической нагрузки"))
}

func TestDeleteInstanceCascades(t *testing.T) {
	client, srv, cleanup := testServer(t)
	defer cleanup()

	generateSmall(t, client)

	_, err := client.Solve(context.Background(), tlserverclient.SolveInput{
		InstanceID: "small-42",
		Solver:     "greedy",
	})
	assert.Ok(t, err)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/instances/small-42", nil)
	assert.Ok(t, err)

	res, err := http.DefaultClient.Do(req)
	assert.Ok(t, err)
	res.Body.Close()
	assert.Assert(t, res.StatusCode == http.StatusOK)

	health, err := client.Health(context.Background())
	assert.Ok(t, err)
	assert.Assert(t, health.Instances == 0)
	assert.Assert(t, health.Results == 0)
}

func TestUIPages(t *testing.T) {
	client, srv, cleanup := testServer(t)
	defer cleanup()

	generateSmall(t, client)

	pageContains := map[string]string{
		"/":                 "Басты бет",
		"/data":             "small-42",
		"/optimize":         "Simulated Annealing",
		"/results":          "Нәтижелер",
		"/about":            "Жүйе туралы",
		"/static/style.css": "font-family",
	}

	for path, want := range pageContains {
		res, err := http.Get(srv.URL + path)
		assert.Ok(t, err)

		body, err := ioutil.ReadAll(res.Body)
		res.Body.Close()
		assert.Ok(t, err)

		assert.Assert(t, res.StatusCode == http.StatusOK)

		if !strings.Contains(string(body), want) {
			t.Errorf("%s: expected body to contain %q", path, want)
		}
	}
}
