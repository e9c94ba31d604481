package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/go-task-manager/internal/client"
)

func newProjectsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "projects",
		Short:             "Manage your projects",
		PersistentPreRunE: chainPreRun(e, e.requireSession),
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects, err := e.api.Projects(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tDESCRIPTION")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Status, p.Description)
			}
			return w.Flush()
		},
	}

	var input client.ProjectInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			project, err := e.api.CreateProject(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), project.ID)
			return nil
		},
	}
	create.Flags().StringVar(&input.Title, "title", "", "project title")
	create.Flags().StringVar(&input.Description, "description", "", "project description")
	_ = create.MarkFlagRequired("title")

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := e.api.UpdateProject(cmd.Context(), args[0], client.ProjectPatch{
				Title:       stringFlag(cmd, "title"),
				Description: stringFlag(cmd, "description"),
				Status:      stringFlag(cmd, "status"),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", project.ID, project.Title, project.Status)
			return nil
		},
	}
	update.Flags().String("title", "", "new title")
	update.Flags().String("description", "", "new description")
	update.Flags().String("status", "", "active or completed")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := e.api.DeleteProject(cmd.Context(), args[0])
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
