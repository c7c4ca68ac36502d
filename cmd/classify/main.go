package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"analyse-juridique/classifier"
	"analyse-juridique/config"
	"analyse-juridique/logging"
	"analyse-juridique/service"
	"analyse-juridique/view"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		labels string
		file   string
	)

	cmd := &cobra.Command{
		Use:   "classify [text]",
		Short: "Classify a judgment into branches of law from the command line",
		Long: `Reads a judgment from the argument, --file, or stdin and prints the
dominant branch of law followed by the remaining scores.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			config.LoadDotEnv()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			clf, err := classifier.New(ctx, cfg.Classifier, logger)
			if err != nil {
				return err
			}
			if closer, ok := clf.(io.Closer); ok {
				defer closer.Close()
			}

			svc := service.NewAnalysisService(
				service.WithClassifier(clf),
				service.WithLogger(logger),
			)
			return run(ctx, svc, text, labels, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&labels, "labels", "l", service.DefaultLabels, "comma-separated branches of law")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the judgment from a file ('-' for stdin)")
	return cmd
}

// readText picks the judgment from the argument, the file flag, or stdin
func readText(args []string, file string, stdin io.Reader) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case file != "" && file != "-":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}

// run classifies text and prints the result the way the page shows it
func run(ctx context.Context, svc *service.AnalysisService, text, labels string, out io.Writer) error {
	result, err := svc.Analyze(ctx, service.AnalyzeRequest{
		Text:      text,
		RawLabels: labels,
	})
	if err != nil {
		return err
	}

	rv, err := view.BuildResultView(result.Result)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, rv.Headline)
	fmt.Fprintf(out, "Conclusion : %s\n", rv.Conclusion)
	for _, line := range rv.Others {
		fmt.Fprintf(out, "  %s\n", line.Text)
	}
	return nil
}
