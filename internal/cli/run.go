package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tessro/spot/internal/app"
	"github.com/tessro/spot/internal/dispatch"
	spoterrors "github.com/tessro/spot/internal/errors"
	"github.com/tessro/spot/internal/script"
)

var (
	runStrict     bool
	runTimestamps bool
	runEmoji      bool
	runFormat     string
)

var runCmd = &cobra.Command{
	Use:   "run [FILE]",
	Short: "Apply a script of actions and print the resulting events",
	Long: `Reads actions from FILE (or stdin when FILE is omitted or "-"), applies
them in order and prints every event produced.

Each line is either a shorthand command or a JSON object:

  load spotify:track:abc
  play
  seek 1m30s
  {"action": "load_playlist", "tracks": [{"uri": "spotify:track:abc"}]}

Lines that fail to parse are reported and skipped unless --strict is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "fail if any line cannot be parsed")
	runCmd.Flags().BoolVar(&runTimestamps, "timestamps", false, "show timestamps")
	runCmd.Flags().BoolVar(&runEmoji, "emoji", true, "show emoji icons")
	runCmd.Flags().StringVar(&runFormat, "format", "", "custom output template (Go text/template)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	in, closeIn, err := openScript(cmd, args)
	if err != nil {
		return err
	}
	defer closeIn()

	parsed, err := script.Parse(in)
	if err != nil {
		return err
	}
	if parsed.HasErrors() {
		if runStrict {
			return spoterrors.WithSuggestion(
				fmt.Errorf("invalid lines in script: %w", parsed.Err()),
				"Run 'spot run --help' for the script format",
			)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Skipping invalid lines:", parsed.ErrorSummary())
	}

	sess, err := newSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	start := time.Now()
	count, err := sess.run(cmd.Context(), parsed.Data, recordPrinter(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	if Verbose() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Applied %s actions, %s events in %s\n",
			humanize.Comma(int64(len(parsed.Data))),
			humanize.Comma(int64(count)),
			time.Since(start).Round(time.Millisecond),
		)
	}
	return nil
}

func openScript(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open script: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// recordPrinter returns an emit function writing records to out, either as
// JSON lines or through the event formatter.
func recordPrinter(out io.Writer) func(dispatch.Record) error {
	if JSONOutput() {
		enc := json.NewEncoder(out)
		return func(r dispatch.Record) error {
			return enc.Encode(recordJSON(r))
		}
	}

	var opts []dispatch.FormatterOption
	opts = append(opts, dispatch.WithEmoji(runEmoji), dispatch.WithTimestamp(runTimestamps))
	if runFormat != "" {
		opts = append(opts, dispatch.WithTemplate(runFormat))
	}
	formatter := dispatch.NewFormatter(opts...)

	return func(r dispatch.Record) error {
		_, err := fmt.Fprintln(out, formatter.Format(r))
		return err
	}
}

// applyAndPrint runs actions through the session and prints the events.
func applyAndPrint(cmd *cobra.Command, sess *session, actions ...app.Action) error {
	_, err := sess.run(cmd.Context(), actions, recordPrinter(cmd.OutOrStdout()))
	return err
}
