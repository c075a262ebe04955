package tlcli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/function61/gokit/log/logex"
	"github.com/function61/gokit/os/osutil"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlsolver"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlstore"
	"github.com/scylladb/termtables"
	"github.com/spf13/cobra"
)

func solveEntrypoint() *cobra.Command {
	solverKey := "greedy"
	timeLimit := tlsolver.DefaultTimeLimit
	seed := int64(0)

	cmd := &cobra.Command{
		Use:   "solve [instanceId]",
		Short: "Distribute an instance's teaching load over its faculty",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()

			osutil.ExitIfError(solve(
				osutil.CancelOnInterruptOrTerminate(rootLogger),
				args[0],
				solverKey,
				timeLimit,
				seed,
				rootLogger))
		},
	}
	cmd.Flags().StringVarP(&solverKey, "solver", "", solverKey, "Engine: "+strings.Join(tlsolver.Keys(), ", "))
	cmd.Flags().DurationVarP(&timeLimit, "time-limit", "", timeLimit, "Cut the search short after this long (best found so far wins)")
	cmd.Flags().Int64VarP(&seed, "seed", "", seed, "Seed for the metaheuristic engines")

	return cmd
}

func solve(
	ctx context.Context,
	instanceID string,
	solverKey string,
	timeLimit time.Duration,
	seed int64,
	logger *log.Logger,
) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	solver, err := tlsolver.New(solverKey, tlsolver.Options{
		TimeLimit: timeLimit,
		Seed:      seed,
	})
	if err != nil {
		return err
	}

	instance, err := store.Instance(instanceID)
	if err != nil {
		return err
	}

	logex.Levels(logger).Info.Printf("%s: running %s", instanceID, solver.Name())

	result, err := solver.Solve(ctx, instance)
	if err != nil {
		return err
	}

	result.InstanceID = instanceID

	id := tlstore.ResultID(instanceID, solverKey)

	if err := store.PutResult(id, result); err != nil {
		return err
	}

	fmt.Printf(
		"%s: %s objective=%.1f deviation=%.1f in %s\n",
		id,
		result.Status,
		result.ObjectiveValue,
		result.TotalDeviation,
		result.ComputationTime)

	if len(result.Unassigned) > 0 {
		fmt.Fprintf(os.Stderr, "WARNING: %d activity(ies) left unassigned\n", len(result.Unassigned))
	}

	return nil
}

func resultEntrypoint() *cobra.Command {
	parentCmd := &cobra.Command{
		Use:   "result",
		Short: "Optimization result management",
	}

	parentCmd.AddCommand(&cobra.Command{
		Use:   "ls [instanceId]",
		Short: "List results, optionally for one instance only",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			instanceID := ""
			if len(args) == 1 {
				instanceID = args[0]
			}

			osutil.ExitIfError(resultList(instanceID))
		},
	})

	parentCmd.AddCommand(&cobra.Command{
		Use:   "show [id]",
		Short: "Show a result with its per-faculty loads",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(resultShow(args[0]))
		},
	})

	parentCmd.AddCommand(&cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a result and its timetable",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(resultRm(args[0]))
		},
	})

	return parentCmd
}

func resultList(instanceID string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ids, err := store.ResultIDs(instanceID)
	if err != nil {
		return err
	}

	view := termtables.CreateTable()
	view.AddHeaders("Id", "Solver", "Status", "Objective", "Deviation", "Time", "Feasible")

	for _, id := range ids {
		result, err := store.Result(id)
		if err != nil {
			return err
		}

		view.AddRow(
			id,
			result.SolverName,
			string(result.Status),
			fmt.Sprintf("%.1f", result.ObjectiveValue),
			fmt.Sprintf("%.1f", result.TotalDeviation),
			result.ComputationTime.String(),
			fmt.Sprintf("%t", result.Feasible),
		)
	}

	fmt.Println(view.Render())

	return nil
}

func resultShow(id string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.Result(id)
	if err != nil {
		return err
	}

	instance, err := store.Instance(result.InstanceID)
	if err != nil {
		return err
	}

	fmt.Printf(
		"%s: %s objective=%.1f deviation=%.1f assignments=%d in %s\n",
		id,
		result.Status,
		result.ObjectiveValue,
		result.TotalDeviation,
		len(result.Assignments),
		result.ComputationTime)

	view := termtables.CreateTable()
	view.AddHeaders("Faculty", "Rank", "Load", "Target", "Deviation")

	for _, person := range instance.Faculty {
		load := result.FacultyLoads[person.ID]

		view.AddRow(
			person.Name,
			person.Rank.Title(),
			fmt.Sprintf("%.1f h", load),
			fmt.Sprintf("%.1f h", person.TargetLoad),
			fmt.Sprintf("%+.1f h", load-person.TargetLoad),
		)
	}

	fmt.Println(view.Render())

	if len(result.Unassigned) > 0 {
		fmt.Fprintln(os.Stderr, "WARNING: unassigned: "+strings.Join(result.Unassigned, ", "))
	}

	return nil
}

func resultRm(id string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.DeleteResult(id)
}
