package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rpggio/mockdata/internal/domain/mockdata"
	"github.com/rpggio/mockdata/internal/store"
	"github.com/spf13/cobra"
)

func (a *app) listCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the mock data of the selected project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withSession(ctx, a.console(), func(s *session) error {
				if s.store.Project() == nil {
					s.store.Refresh(ctx)
					return ErrFailed
				}
				// The restore already reported why the list did not load.
				if !s.store.LastRefreshOK() {
					return ErrFailed
				}

				records := s.store.Records()
				if asJSON {
					return writeJSON(a, records)
				}

				table := tablewriter.NewWriter(a.out)
				table.Header("ID", "NAME", "TYPE", "ENABLED", "DELAY", "CREATED", "URL")
				for _, r := range records {
					if err := table.Append([]string{
						strconv.FormatInt(r.ID, 10), r.Name, r.Type, strconv.FormatBool(r.Enabled),
						strconv.FormatInt(r.Delay, 10), r.CreatedAt, r.URL,
					}); err != nil {
						return err
					}
				}
				return table.Render()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")
	return cmd
}

func (a *app) draftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "draft",
		Short: "Print a blank record for the selected project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withSession(ctx, a.console(), func(s *session) error {
				draft, err := s.store.NewDraft()
				if err != nil {
					return err
				}
				return writeJSON(a, draft)
			})
		},
	}
}

// recordFlags are the writable fields of a record as command flags.
type recordFlags struct {
	name         string
	typ          string
	path         string
	description  string
	delay        int64
	contentType  string
	response     string
	responseFile string
	disabled     bool
}

func (f *recordFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "display name")
	cmd.Flags().StringVar(&f.typ, "type", mockdata.DefaultType, "HTTP method the mock answers, or all")
	cmd.Flags().StringVar(&f.path, "path", "", "request path below the project path, e.g. /users")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().Int64Var(&f.delay, "delay", 0, "response delay in milliseconds")
	cmd.Flags().StringVar(&f.contentType, "content-type", mockdata.DefaultContentType, "response content type")
	cmd.Flags().StringVar(&f.response, "response", "", "response body")
	cmd.Flags().StringVar(&f.responseFile, "response-file", "", "read the response body from a file")
	cmd.Flags().BoolVar(&f.disabled, "disabled", false, "store the mock without serving it")
	cmd.MarkFlagsMutuallyExclusive("response", "response-file")
}

// apply copies the flags onto rec. With onlyChanged set, flags left at their
// defaults keep rec's current values.
func (f *recordFlags) apply(cmd *cobra.Command, rec *mockdata.Record, onlyChanged bool) error {
	set := func(name string) bool {
		return !onlyChanged || cmd.Flags().Changed(name)
	}
	if set("name") {
		rec.Name = f.name
	}
	if set("type") {
		rec.Type = f.typ
	}
	if set("path") {
		rec.Path = f.path
	}
	if set("description") {
		rec.Description = f.description
	}
	if set("delay") {
		rec.Delay = f.delay
	}
	if set("content-type") {
		rec.ContentType = f.contentType
	}
	if set("response") {
		rec.Response = f.response
	}
	if f.responseFile != "" {
		data, err := os.ReadFile(f.responseFile)
		if err != nil {
			return fmt.Errorf("read response file: %w", err)
		}
		rec.Response = string(data)
	}
	if set("disabled") {
		rec.Enabled = !f.disabled
	}
	return nil
}

func (a *app) createCmd() *cobra.Command {
	var flags recordFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create mock data in the selected project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return a.withSession(ctx, a.console(), func(s *session) error {
				rec, err := s.store.NewDraft()
				if err != nil {
					return err
				}
				if err := flags.apply(cmd, &rec, false); err != nil {
					return err
				}
				if !s.store.Create(ctx, rec) {
					return ErrFailed
				}
				return nil
			})
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	var flags recordFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change mock data of the selected project; unset flags keep their values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return a.withSession(ctx, a.console(), func(s *session) error {
				rec, ok := findRecord(s.store.Records(), id)
				if !ok {
					return fmt.Errorf("mock data %d not found in the selected project", id)
				}
				if err := flags.apply(cmd, &rec, true); err != nil {
					return err
				}
				if !s.store.Edit(ctx, rec) {
					return ErrFailed
				}
				return nil
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete mock data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return a.withSession(ctx, a.console(), func(s *session) error {
				if !s.store.Delete(ctx, mockdata.Record{ID: id}) {
					return ErrFailed
				}
				return nil
			})
		},
	}
}

func parseRecordID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid mock data id %q", raw)
	}
	return id, nil
}

func findRecord(records []mockdata.Record, id int64) (mockdata.Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return mockdata.Record{}, false
}

func writeJSON(a *app, v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(store.DisplayTimeLayout)
}
