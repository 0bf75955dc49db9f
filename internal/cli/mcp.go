package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/mockdata/internal/notify"
	mockmcp "github.com/rpggio/mockdata/internal/mcp"
	"github.com/spf13/cobra"
)

func (a *app) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the mock data tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			notes := &notify.Recorder{}
			notifier := notify.Multi{notify.NewLogger(a.logger), notes}

			return a.withSession(ctx, notifier, func(s *session) error {
				server := mockmcp.NewServer(mockmcp.Config{
					Store:    s.store,
					Projects: s.api,
					Notes:    notes,
					Version:  a.version,
					Logger:   a.logger,
				})
				a.logger.Info("starting stdio transport")
				return server.Run(ctx, &mcp.StdioTransport{})
			})
		},
	}
}
