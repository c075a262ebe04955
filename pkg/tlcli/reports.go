package tlcli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/function61/gokit/log/logex"
	"github.com/function61/gokit/os/osutil"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlarchive"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlenv"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlreport"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

func reportEntrypoint() *cobra.Command {
	parentCmd := &cobra.Command{
		Use:   "report",
		Short: "Excel report generation",
	}

	department := ""
	year := ""
	archive := false
	officialCmd := &cobra.Command{
		Use:   "official [resultId]",
		Short: "Department-wide load distribution workbook",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()

			osutil.ExitIfError(reportOfficial(
				osutil.CancelOnInterruptOrTerminate(rootLogger),
				args[0],
				department,
				year,
				archive,
				rootLogger))
		},
	}
	officialCmd.Flags().StringVarP(&department, "department", "", department, "Department name override")
	officialCmd.Flags().StringVarP(&year, "year", "", year, "Academic year override")
	officialCmd.Flags().BoolVarP(&archive, "archive", "", archive, "Also upload to the configured S3 bucket")
	parentCmd.AddCommand(officialCmd)

	archivePlan := false
	planCmd := &cobra.Command{
		Use:   "plan [resultId] [facultyId]",
		Short: "One teacher's individual plan workbook",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()

			facultyID, err := parseFacultyID(args[1])
			osutil.ExitIfError(err)

			osutil.ExitIfError(reportPlan(
				osutil.CancelOnInterruptOrTerminate(rootLogger),
				args[0],
				facultyID,
				archivePlan,
				rootLogger))
		},
	}
	planCmd.Flags().BoolVarP(&archivePlan, "archive", "", archivePlan, "Also upload to the configured S3 bucket")
	parentCmd.AddCommand(planCmd)

	parentCmd.AddCommand(&cobra.Command{
		Use:   "assignments [resultId]",
		Short: "Assignment list as CSV (written to the exports dir)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(reportAssignments(args[0]))
		},
	})

	return parentCmd
}

func reportAssignments(resultID string) error {
	env, store, err := openStore()
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

	path := filepath.Join(env.ExportsDir(), "assignments-"+safeFilename(resultID)+".csv")

	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	if err := tlreport.AssignmentsCSV(instance, result, fd); err != nil {
		return err
	}

	fmt.Println(path)

	return nil
}

func reportOfficial(
	ctx context.Context,
	resultID string,
	department string,
	year string,
	archive bool,
	logger *log.Logger,
) error {
	env, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	conf, err := env.LoadConfig()
	if err != nil {
		return err
	}

	if department == "" {
		department = conf.DepartmentName
	}
	if year == "" {
		year = conf.AcademicYear
	}

	result, err := store.Result(resultID)
	if err != nil {
		return err
	}

	instance, err := store.Instance(result.InstanceID)
	if err != nil {
		return err
	}

	workbook, err := tlreport.Official(instance, result, tlreport.Options{
		DepartmentName: department,
		AcademicYear:   year,
	})
	if err != nil {
		return err
	}

	filename := "teaching-load-" + safeFilename(resultID) + ".xlsx"

	if err := saveWorkbook(workbook, env.ExportsDir(), filename); err != nil {
		return err
	}

	if archive {
		return archiveWorkbook(ctx, conf, year, filename, workbook)
	}

	return nil
}

func reportPlan(
	ctx context.Context,
	resultID string,
	facultyID int,
	archive bool,
	logger *log.Logger,
) error {
	env, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	conf, err := env.LoadConfig()
	if err != nil {
		return err
	}

	result, err := store.Result(resultID)
	if err != nil {
		return err
	}

	instance, err := store.Instance(result.InstanceID)
	if err != nil {
		return err
	}

	workbook, err := tlreport.IndividualPlan(instance, result, facultyID, conf.AcademicYear)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("individual-plan-%s-%d.xlsx", safeFilename(resultID), facultyID)

	if err := saveWorkbook(workbook, env.ExportsDir(), filename); err != nil {
		return err
	}

	if archive {
		return archiveWorkbook(ctx, conf, conf.AcademicYear, filename, workbook)
	}

	return nil
}

func saveWorkbook(workbook *excelize.File, dir string, filename string) error {
	path := filepath.Join(dir, filename)

	if err := workbook.SaveAs(path); err != nil {
		return err
	}

	fmt.Println(path)

	return nil
}

func archiveWorkbook(
	ctx context.Context,
	conf *tlenv.Config,
	year string,
	filename string,
	workbook *excelize.File,
) error {
	opts, err := tlarchive.OptionsFromEnv(conf.S3Bucket, conf.S3Region)
	if err != nil {
		return err
	}

	key, err := tlarchive.New(opts).ArchiveReport(ctx, year, filename, workbook)
	if err != nil {
		return err
	}

	fmt.Println("archived: s3://" + conf.S3Bucket + "/" + key)

	return nil
}

func parseFacultyID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("facultyId: %w", err)
	}

	return id, nil
}

// result ids contain a slash ("small-42/greedy")
func safeFilename(id string) string {
	return strings.ReplaceAll(id, "/", "_")
}
