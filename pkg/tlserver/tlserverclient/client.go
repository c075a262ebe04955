// Client for the teachload HTTP API. Used by the launcher's readiness probe
// and the `status` CLI command; the server imports the request/response
// shapes so both sides stay in sync.
package tlserverclient

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/function61/gokit/log/logex"
	"github.com/function61/gokit/net/http/ezhttp"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

type HealthOutput struct {
	Status    string `json:"status"`
	Instances int    `json:"instances"`
	Results   int    `json:"results"`
}

type GenerateInstanceInput struct {
	Size string `json:"size"`
	Seed int64  `json:"seed"`
	Name string `json:"name,omitempty"`
}

type InstanceSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	FacultyCount  int     `json:"faculty_count"`
	ActivityCount int     `json:"activity_count"`
	TotalDemand   float64 `json:"total_demand"`
	TotalCapacity float64 `json:"total_capacity"`
	CapacityOK    bool    `json:"capacity_ok"`
	CapacityNote  string  `json:"capacity_note"`
}

type SolveInput struct {
	InstanceID       string `json:"instance_id"`
	Solver           string `json:"solver"`
	TimeLimitSeconds int    `json:"time_limit_seconds,omitempty"`
	Seed             int64  `json:"seed,omitempty"`
}

type ResultSummary struct {
	ID             string          `json:"id"`
	InstanceID     string          `json:"instance_id"`
	SolverName     string          `json:"solver_name"`
	Status         tl.SolverStatus `json:"status"`
	ObjectiveValue float64         `json:"objective_value"`
	TotalDeviation float64         `json:"total_deviation"`
	Seconds        float64         `json:"seconds"`
	Feasible       bool            `json:"feasible"`
	Unassigned     int             `json:"unassigned"`
}

type TimetableInput struct {
	ResultID string `json:"result_id"`
	Seed     int64  `json:"seed,omitempty"`
}

type TimetableSummary struct {
	ID        string `json:"id"`
	Scheduled int    `json:"scheduled"`
	Unplaced  int    `json:"unplaced"`
	Rooms     int    `json:"rooms"`
	Conflicts int    `json:"conflicts"`
}

type Client struct {
	baseUrl string
	logl    *logex.Leveled
}

func New(baseUrl string, logger *log.Logger) *Client {
	return &Client{
		baseUrl: baseUrl,
		logl:    logex.Levels(logger),
	}
}

func (c *Client) Health(ctx context.Context) (*HealthOutput, error) {
	res := &HealthOutput{}
	if _, err := ezhttp.Get(
		ctx,
		c.baseUrl+"/api/health",
		ezhttp.RespondsJson(res, false),
	); err != nil {
		return nil, fmt.Errorf("Health: %w", err)
	}

	return res, nil
}

func (c *Client) GenerateInstance(
	ctx context.Context,
	input GenerateInstanceInput,
) (*InstanceSummary, error) {
	c.logl.Debug.Printf("GenerateInstance %s seed=%d", input.Size, input.Seed)

	res := &InstanceSummary{}
	if _, err := ezhttp.Post(
		ctx,
		c.baseUrl+"/api/instances/generate",
		ezhttp.SendJson(input),
		ezhttp.RespondsJson(res, false),
	); err != nil {
		return nil, fmt.Errorf("GenerateInstance: %w", err)
	}

	return res, nil
}

func (c *Client) Instances(ctx context.Context) ([]InstanceSummary, error) {
	res := []InstanceSummary{}
	if _, err := ezhttp.Get(
		ctx,
		c.baseUrl+"/api/instances",
		ezhttp.RespondsJson(&res, false),
	); err != nil {
		return nil, fmt.Errorf("Instances: %w", err)
	}

	return res, nil
}

func (c *Client) Instance(ctx context.Context, id string) (*tl.ProblemInstance, error) {
	res := &tl.ProblemInstance{}
	if _, err := ezhttp.Get(
		ctx,
		c.baseUrl+"/api/instances/"+url.PathEscape(id),
		ezhttp.RespondsJson(res, false),
	); err != nil {
		if ezhttp.ErrorIs(err, http.StatusNotFound) {
			return nil, os.ErrNotExist
		}

		return nil, fmt.Errorf("Instance(%s): %w", id, err)
	}

	return res, nil
}

func (c *Client) Solve(ctx context.Context, input SolveInput) (*ResultSummary, error) {
	c.logl.Debug.Printf("Solve %s with %s", input.InstanceID, input.Solver)

	res := &ResultSummary{}
	if _, err := ezhttp.Post(
		ctx,
		c.baseUrl+"/api/solve",
		ezhttp.SendJson(input),
		ezhttp.RespondsJson(res, false),
	); err != nil {
		if ezhttp.ErrorIs(err, http.StatusNotFound) {
			return nil, os.ErrNotExist
		}

		return nil, fmt.Errorf("Solve: %w", err)
	}

	return res, nil
}

// Results lists result summaries, optionally scoped to one instance.
func (c *Client) Results(ctx context.Context, instanceID string) ([]ResultSummary, error) {
	endpoint := c.baseUrl + "/api/results"
	if instanceID != "" {
		endpoint += "?instance=" + url.QueryEscape(instanceID)
	}

	res := []ResultSummary{}
	if _, err := ezhttp.Get(
		ctx,
		endpoint,
		ezhttp.RespondsJson(&res, false),
	); err != nil {
		return nil, fmt.Errorf("Results: %w", err)
	}

	return res, nil
}

func (c *Client) Result(ctx context.Context, id string) (*tl.OptimizationResult, error) {
	res := &tl.OptimizationResult{}
	if _, err := ezhttp.Get(
		ctx,
		c.baseUrl+"/api/result?id="+url.QueryEscape(id),
		ezhttp.RespondsJson(res, false),
	); err != nil {
		if ezhttp.ErrorIs(err, http.StatusNotFound) {
			return nil, os.ErrNotExist
		}

		return nil, fmt.Errorf("Result(%s): %w", id, err)
	}

	return res, nil
}

func (c *Client) BuildTimetable(
	ctx context.Context,
	input TimetableInput,
) (*TimetableSummary, error) {
	c.logl.Debug.Printf("BuildTimetable %s", input.ResultID)

	res := &TimetableSummary{}
	if _, err := ezhttp.Post(
		ctx,
		c.baseUrl+"/api/timetables",
		ezhttp.SendJson(input),
		ezhttp.RespondsJson(res, false),
	); err != nil {
		if ezhttp.ErrorIs(err, http.StatusNotFound) {
			return nil, os.ErrNotExist
		}

		return nil, fmt.Errorf("BuildTimetable: %w", err)
	}

	return res, nil
}

func (c *Client) Timetable(ctx context.Context, id string) (*tl.Timetable, error) {
	res := &tl.Timetable{}
	if _, err := ezhttp.Get(
		ctx,
		c.baseUrl+"/api/timetable?id="+url.QueryEscape(id),
		ezhttp.RespondsJson(res, false),
	); err != nil {
		if ezhttp.ErrorIs(err, http.StatusNotFound) {
			return nil, os.ErrNotExist
		}

		return nil, fmt.Errorf("Timetable(%s): %w", id, err)
	}

	return res, nil
}
