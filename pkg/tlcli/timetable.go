package tlcli

import (
	"fmt"
	"os"
	"strings"

	"github.com/function61/gokit/os/osutil"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tltimetable"
	"github.com/scylladb/termtables"
	"github.com/spf13/cobra"
)

func timetableEntrypoint() *cobra.Command {
	parentCmd := &cobra.Command{
		Use:   "timetable",
		Short: "Weekly timetable management",
	}

	seed := int64(1)
	mkCmd := &cobra.Command{
		Use:   "mk [resultId]",
		Short: "Place a result's classroom assignments into the week",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(timetableMk(args[0], seed))
		},
	}
	mkCmd.Flags().Int64VarP(&seed, "seed", "", seed, "Slot shuffle seed (same seed, same week)")
	parentCmd.AddCommand(mkCmd)

	facultyID := 0
	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a timetable (shares its result's id)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(timetableShow(args[0], facultyID))
		},
	}
	showCmd.Flags().IntVarP(&facultyID, "faculty", "", facultyID, "Show one teacher's week only")
	parentCmd.AddCommand(showCmd)

	return parentCmd
}

func timetableMk(resultID string, seed int64) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.Result(resultID)
	if err != nil {
		return err
	}

	instance, err := store.Instance(result.InstanceID)
	if err != nil {
		return err
	}

	timetable := tltimetable.New(seed).Generate(instance, result, nil)
	timetable.ResultID = resultID

	if err := store.PutTimetable(resultID, timetable); err != nil {
		return err
	}

	fmt.Printf(
		"%s: scheduled %d into %d room(s), %d unplaced, %d conflict(s)\n",
		resultID,
		len(timetable.Scheduled),
		len(timetable.Rooms),
		len(timetable.Unplaced),
		len(timetable.Conflicts()))

	return nil
}

func timetableShow(id string, facultyID int) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	timetable, err := store.Timetable(id)
	if err != nil {
		return err
	}

	result, err := store.Result(id)
	if err != nil {
		return err
	}

	instance, err := store.Instance(result.InstanceID)
	if err != nil {
		return err
	}

	if facultyID != 0 {
		person, err := instance.FacultyByID(facultyID)
		if err != nil {
			return err
		}

		timetable.Scheduled = timetable.FacultySchedule(facultyID)

		fmt.Println("week of " + person.Name)
	}

	view := termtables.CreateTable()
	view.AddHeaders("Day", "Time", "Course", "Kind", "Faculty", "Room")

	for _, entry := range tltimetable.Entries(timetable, instance) {
		view.AddRow(entry.Day, entry.Time, entry.Course, entry.Kind, entry.Faculty, entry.Room)
	}

	fmt.Println(view.Render())

	if conflicts := timetable.Conflicts(); len(conflicts) > 0 {
		fmt.Fprintln(os.Stderr, "WARNING: conflicts: "+strings.Join(conflicts, "; "))
	}

	if len(timetable.Unplaced) > 0 {
		fmt.Fprintln(os.Stderr, "WARNING: unplaced: "+strings.Join(timetable.Unplaced, ", "))
	}

	return nil
}
