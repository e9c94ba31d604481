// Package cli implements taskctl, a terminal client for the task manager API.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/go-task-manager/internal/client"
	"github.com/adanyl0v/go-task-manager/internal/config"
)

// env is shared by every command of one invocation.
type env struct {
	apiURL      string
	sessionFile string
	session     *client.Session
	api         *client.Client
}

// NewRootCommand builds the taskctl command tree. Defaults for the API URL
// and session file come from TASKCTL_API_URL and TASKCTL_SESSION_FILE.
func NewRootCommand() *cobra.Command {
	e := new(env)

	root := &cobra.Command{
		Use:           "taskctl",
		Short:         "Manage projects and tasks from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.open(cmd)
		},
	}

	root.PersistentFlags().StringVar(&e.apiURL, "api-url", "", "base URL of the API")
	root.PersistentFlags().StringVar(&e.sessionFile, "session-file", "", "where the login session is kept")

	root.AddCommand(
		newRegisterCommand(e),
		newLoginCommand(e),
		newLogoutCommand(e),
		newProfileCommand(e),
		newProjectsCommand(e),
		newTasksCommand(e),
	)
	return root
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func (e *env) open(cmd *cobra.Command) error {
	cfg, err := config.ReadClientEnv()
	if err != nil {
		return fmt.Errorf("failed to read env: %w", err)
	}
	if !cmd.Flags().Changed("api-url") {
		e.apiURL = cfg.APIURL
	}
	if !cmd.Flags().Changed("session-file") {
		e.sessionFile = cfg.SessionFile
	}
	if e.sessionFile == "" {
		e.sessionFile, err = client.DefaultSessionPath()
		if err != nil {
			return err
		}
	}

	e.session, err = client.LoadSession(e.sessionFile)
	if err != nil {
		return err
	}
	e.api = client.New(e.apiURL, e.session)
	return nil
}

// requireSession mirrors the web UI: pages behind login are
// refused locally when no credential is stored.
func (e *env) requireSession(*cobra.Command, []string) error {
	if !e.session.Authenticated() {
		return fmt.Errorf("%w: run taskctl login first", client.ErrNotAuthenticated)
	}
	return nil
}

// chainPreRun keeps the root's PersistentPreRunE, which cobra would
// otherwise skip when a child defines its own.
func chainPreRun(e *env, next func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := e.open(cmd)
		if err != nil {
			return err
		}
		return next(cmd, args)
	}
}

func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
