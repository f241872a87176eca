package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"devstreams/internal/core/phonetic"
	"devstreams/internal/platform/net/http/bind"
	adom "devstreams/internal/services/api/assistant/domain"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ErrUnavailable is returned when the answer was an apology, so scripts see a
// non zero exit
var ErrUnavailable = errors.New("devstreams unavailable")

var (
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed)
	titleColor = color.New(color.FgCyan, color.Bold)
)

// KeyCmd prints the phonetic key of a name and, given a second name, how close they are
func KeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key <name> [other]",
		Short: "Show the phonetic key used to match spoken channel names",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			a := args[0]
			fmt.Fprintf(out, "%s  %s\n", titleColor.Sprint(phonetic.Key(a)), a)
			if len(args) == 1 {
				return nil
			}
			b := args[1]
			fmt.Fprintf(out, "%s  %s\n", titleColor.Sprint(phonetic.Key(b)), b)
			fmt.Fprintf(out, "difference %d/%d, similarity %.2f\n",
				phonetic.Difference(a, b), phonetic.KeyLen, phonetic.Similarity(a, b))
			return nil
		},
	}
}

// WhenNextCmd asks when a channel streams next
func WhenNextCmd(env Env) *cobra.Command {
	var tz string

	cmd := &cobra.Command{
		Use:   "when-next <channel>",
		Short: "Say when a channel streams next",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := adom.IntentInput{
				Type:     "IntentRequest",
				Intent:   adom.NameWhenNext,
				Channel:  strings.Join(args, " "),
				Timezone: tz,
			}
			if err := bind.Struct(in); err != nil {
				return err
			}
			return ask(cmd, env, in)
		},
	}
	cmd.Flags().StringVar(&tz, "tz", "", "IANA time zone for the answer, e.g. Europe/London")
	return cmd
}

// LiveCmd lists who is live now
func LiveCmd(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "live",
		Short: "Say which known channels are live right now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ask(cmd, env, adom.IntentInput{Type: "IntentRequest", Intent: adom.NameWhoIsLive})
		},
	}
}

func ask(cmd *cobra.Command, env Env, in adom.IntentInput) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d, release, err := env.Open(ctx)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer release()

	out := d.Handle(ctx, in.ToIntentRequest(time.Now()))
	render(cmd.OutOrStdout(), out)
	if out.Outcome == adom.OutcomeUnavailable {
		return ErrUnavailable
	}
	return nil
}

func render(w io.Writer, out adom.IntentResponse) {
	if out.Card != nil {
		fmt.Fprintln(w, titleColor.Sprint(out.Card.Title))
	}
	var c *color.Color
	switch out.Outcome {
	case adom.OutcomeNextStream, adom.OutcomeLiveNow:
		c = okColor
	case adom.OutcomeUnavailable:
		c = errColor
	default:
		c = warnColor
	}
	fmt.Fprintln(w, c.Sprint(out.Speech))
}
