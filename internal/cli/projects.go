package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rpggio/mockdata/internal/client"
	"github.com/spf13/cobra"
)

func (a *app) projectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects; the selected one is marked with *",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withSession(ctx, a.console(), func(s *session) error {
				env, err := s.api.ListProjects(ctx)
				if err == nil {
					err = env.Err()
				}
				if err != nil {
					return fmt.Errorf("list projects: %w", err)
				}

				selected := ""
				if prj := s.store.Project(); prj != nil {
					selected = prj.ID
				}

				table := tablewriter.NewWriter(a.out)
				table.Header("", "ID", "NAME", "PATH", "RECORDS", "CREATED")
				for _, p := range env.Data {
					mark := ""
					if p.ID == selected {
						mark = "*"
					}
					if err := table.Append([]string{
						mark, p.ID, p.Name, p.Path, strconv.Itoa(p.RecordCount), formatTime(p.CreatedAt),
					}); err != nil {
						return err
					}
				}
				return table.Render()
			})
		},
	}
}

func (a *app) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(a.projectCreateCmd())
	return cmd
}

func (a *app) projectCreateCmd() *cobra.Command {
	var (
		req client.CreateProjectRequest
		use bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withSession(ctx, a.console(), func(s *session) error {
				env, err := s.api.CreateProject(ctx, req)
				if err == nil {
					err = env.Err()
				}
				if err != nil {
					return fmt.Errorf("create project: %w", err)
				}
				fmt.Fprintln(a.out, env.Data.ID)
				if use {
					s.store.SetProject(ctx, env.Data)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.ID, "id", "", "project id (generated when empty)")
	cmd.Flags().StringVar(&req.Name, "name", "", "project name")
	cmd.Flags().StringVar(&req.Path, "path", "", "base path of the project's mocks, e.g. /shop")
	cmd.Flags().StringVar(&req.Description, "description", "", "description")
	cmd.Flags().BoolVar(&use, "use", false, "select the project after creating it")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) useCmd() *cobra.Command {
	var clearSelection bool
	cmd := &cobra.Command{
		Use:   "use <project-id>",
		Short: "Select the project the other commands work on",
		Args: func(cmd *cobra.Command, args []string) error {
			if clearSelection {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return a.withSession(ctx, a.console(), func(s *session) error {
				if clearSelection {
					s.store.SetProject(ctx, nil)
					return nil
				}

				env, err := s.api.GetProject(ctx, args[0])
				if err == nil {
					err = env.Err()
				}
				if err != nil {
					return fmt.Errorf("get project %s: %w", args[0], err)
				}
				s.store.SetProject(ctx, env.Data)
				fmt.Fprintf(a.out, "using %s (%d records)\n", env.Data.ID, len(s.store.Records()))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&clearSelection, "clear", false, "clear the selection")
	return cmd
}
