package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/go-task-manager/internal/client"
)

func newTasksCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "tasks",
		Short:             "Manage the tasks of a project",
		PersistentPreRunE: chainPreRun(e, e.requireSession),
	}

	var status string
	list := &cobra.Command{
		Use:   "list PROJECT_ID",
		Short: "List the tasks of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := e.api.Tasks(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tDUE")
			for _, t := range tasks {
				due := ""
				if t.DueDate != nil {
					due = t.DueDate.Format(time.DateOnly)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, due)
			}
			return w.Flush()
		},
	}
	list.Flags().StringVar(&status, "status", "", "only show tasks with this status")

	var input client.TaskInput
	var due string
	create := &cobra.Command{
		Use:   "create PROJECT_ID",
		Short: "Add a task to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input.Project = args[0]
			if due != "" {
				t, err := time.Parse(time.DateOnly, due)
				if err != nil {
					return fmt.Errorf("invalid --due %q: want YYYY-MM-DD", due)
				}
				input.DueDate = &t
			}

			task, err := e.api.CreateTask(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), task.ID)
			return nil
		},
	}
	create.Flags().StringVar(&input.Title, "title", "", "task title")
	create.Flags().StringVar(&input.Description, "description", "", "task description")
	create.Flags().StringVar(&due, "due", "", "due date, YYYY-MM-DD")
	_ = create.MarkFlagRequired("title")

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := client.TaskPatch{
				Title:       stringFlag(cmd, "title"),
				Description: stringFlag(cmd, "description"),
				Status:      stringFlag(cmd, "status"),
			}
			if v := stringFlag(cmd, "due"); v != nil {
				t, err := time.Parse(time.DateOnly, *v)
				if err != nil {
					return fmt.Errorf("invalid --due %q: want YYYY-MM-DD", *v)
				}
				patch.DueDate = &t
			}

			task, err := e.api.UpdateTask(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", task.ID, task.Title, task.Status)
			return nil
		},
	}
	update.Flags().String("title", "", "new title")
	update.Flags().String("description", "", "new description")
	update.Flags().String("status", "", "todo, in-progress or done")
	update.Flags().String("due", "", "new due date, YYYY-MM-DD")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := e.api.DeleteTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}
