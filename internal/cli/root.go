// Package cli holds the devstreams-cli command tree. Commands answer through the
// same dispatcher the skill endpoint uses
package cli

import (
	"context"
	"io"
	"os"

	"devstreams/internal/core/version"
	adom "devstreams/internal/services/api/assistant/domain"

	"github.com/spf13/cobra"
)

// OpenFunc builds a dispatcher. The returned func releases what it acquired
type OpenFunc func(ctx context.Context) (adom.ServicePort, func(), error)

// Env is what commands need from the process
type Env struct {
	Out  io.Writer
	Open OpenFunc
}

// RootCmd returns the devstreams-cli root command
func RootCmd(env Env) *cobra.Command {
	if env.Out == nil {
		env.Out = os.Stdout
	}
	if env.Open == nil {
		env.Open = OpenFromEnv
	}

	root := &cobra.Command{
		Use:     "devstreams-cli",
		Short:   "Ask DevStreams from the terminal",
		Version: version.Info().Version,
		Long: `devstreams-cli answers the same questions the voice skill does:
when a channel streams next and who is live right now.
Storage and Twitch settings come from the environment or a .env file.`,
		SilenceUsage: true,
	}
	root.SetOut(env.Out)

	root.AddCommand(KeyCmd())
	root.AddCommand(WhenNextCmd(env))
	root.AddCommand(LiveCmd(env))
	return root
}
