package tlcli

import (
	"fmt"
	"os"

	"github.com/function61/gokit/encoding/jsonfile"
	"github.com/function61/gokit/os/osutil"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlgen"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tlstore"
	"github.com/scylladb/termtables"
	"github.com/spf13/cobra"
)

func instanceEntrypoint() *cobra.Command {
	parentCmd := &cobra.Command{
		Use:   "instance",
		Short: "Problem instance management",
	}

	seed := int64(42)
	name := ""
	mkCmd := &cobra.Command{
		Use:   "mk [size]",
		Short: "Generate an instance (size: small, medium or large)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(instanceMk(args[0], seed, name))
		},
	}
	mkCmd.Flags().Int64VarP(&seed, "seed", "", seed, "Generator seed (same seed, same instance)")
	mkCmd.Flags().StringVarP(&name, "name", "", name, "Display name")
	parentCmd.AddCommand(mkCmd)

	parentCmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List stored instances",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(instanceList())
		},
	})

	parentCmd.AddCommand(&cobra.Command{
		Use:   "show [id]",
		Short: "Dump an instance as JSON",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(instanceShow(args[0]))
		},
	})

	parentCmd.AddCommand(&cobra.Command{
		Use:   "rm [id]",
		Short: "Delete an instance along with its results and timetables",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(instanceRm(args[0]))
		},
	})

	parentCmd.AddCommand(&cobra.Command{
		Use:   "export [id] [file]",
		Short: "Write an instance to a JSON file",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(instanceExport(args[0], args[1]))
		},
	})

	return parentCmd
}

func instanceMk(size string, seed int64, name string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	instance, err := tlgen.New(seed).Instance(size, name)
	if err != nil {
		return err
	}

	id := tlstore.InstanceID(instance)

	if err := store.PutInstance(id, instance); err != nil {
		return err
	}

	if ok, note := instance.CheckCapacityFeasibility(); !ok {
		fmt.Fprintln(os.Stderr, "WARNING: "+note)
	}

	fmt.Println(id)

	return nil
}

func instanceList() error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ids, err := store.InstanceIDs()
	if err != nil {
		return err
	}

	view := termtables.CreateTable()
	view.AddHeaders("Id", "Name", "Faculty", "Activities", "Demand", "Capacity", "Fits")

	for _, id := range ids {
		instance, err := store.Instance(id)
		if err != nil {
			return err
		}

		ok, _ := instance.CheckCapacityFeasibility()

		view.AddRow(
			id,
			instance.Name,
			len(instance.Faculty),
			len(instance.Activities),
			fmt.Sprintf("%.0f h", instance.TotalDemand()),
			fmt.Sprintf("%.0f h", instance.TotalCapacity()),
			fmt.Sprintf("%t", ok),
		)
	}

	fmt.Println(view.Render())

	return nil
}

func instanceShow(id string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	instance, err := store.Instance(id)
	if err != nil {
		return err
	}

	return jsonfile.Marshal(os.Stdout, instance)
}

func instanceRm(id string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.DeleteInstance(id)
}

func instanceExport(id string, path string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	instance, err := store.Instance(id)
	if err != nil {
		return err
	}

	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	return jsonfile.Marshal(fd, instance)
}
