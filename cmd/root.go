package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/diggity/internal/config"
	"github.com/oakwood-commons/diggity/internal/formatter"
	"github.com/oakwood-commons/diggity/pkg/core"
	"github.com/oakwood-commons/diggity/pkg/dig"
	"github.com/oakwood-commons/diggity/pkg/loader"
	"github.com/oakwood-commons/diggity/pkg/logger"
	"github.com/oakwood-commons/diggity/pkg/settings"
)

// exitCodeMiss is returned in strict mode when the path does not resolve.
const exitCodeMiss = 3

var (
	pathFlag     string
	separator    string
	keysFlag     string
	fallbackFlag string
	output       string
	inputFormat  string
	yamlNodes    bool
	strict       bool
	explain      bool
	debug        bool
	configFile   string
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file] [path]",
	Short: "Resolve a path inside JSON, YAML, TOML, NDJSON or HCL data",
	Long: `Resolve a delimited path (or an explicit key sequence) inside structured data.

Each key is tried as an item lookup (map key or sequence index), then as a
member (struct field or HCL attribute), then as a numeric position. The first
key that cannot be resolved stops the walk and the fallback is printed.

With one argument, the argument is the file when it exists or stdin is a
terminal; otherwise it is the path and data is read from stdin.`,
	Example: `  diggity deploy.yaml spec.replicas
  kubectl get pod web -o json | diggity metadata.labels.app
  diggity vars.tfvars tags.team -o json
  diggity --keys '["servers", 0, "host"]' config.toml
  diggity data.json a/b/c --sep / --default none`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// Map CLI debug flag to log level: debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
		var level int8
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		cmd.SetContext(logger.WithLogger(ctx, lgr))
	},
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	run, cfg, err := runSettings(cmd)
	if err != nil {
		return err
	}
	ctx := settings.IntoContext(cmd.Context(), run)
	lgr := logger.FromContext(ctx)

	in := cmd.InOrStdin()
	piped := stdinIsPiped(in)
	file, path, err := splitArgs(args, piped, cmd.Flags().Changed("path"))
	if err != nil {
		return err
	}
	if file == "" && !piped {
		return cmd.Help()
	}
	if cmd.Flags().Changed("path") {
		path = pathFlag
	}
	run.Input.Path = file
	run.Input.FromStdin = file == "" || file == stdinName

	keys, err := parseKeys(keysFlag)
	if err != nil {
		return err
	}
	req := core.Request{Path: path, Keys: keys}
	switch {
	case cmd.Flags().Changed("default"):
		if req.Fallback, err = parseFallback(fallbackFlag); err != nil {
			return err
		}
		req.HasFallback = true
	case cfg.Fallback != nil:
		req.Fallback, req.HasFallback = cfg.Fallback, true
	}

	root, err := loadInput(run.Input, in)
	if err != nil {
		return err
	}
	lgr.V(1).Info("input loaded", logger.InputKey, inputName(run.Input), "format", run.Input.Format, "rootType", fmt.Sprintf("%T", root))

	engine := core.New(
		core.WithLogger(*lgr),
		core.WithSeparator(run.Separator),
		core.WithRenderOptions(formatter.Options{YAML: formatter.YAMLFormatOptions{
			Indent:              cfg.YAML.Indent,
			LiteralBlockStrings: cfg.YAML.LiteralBlockStrings,
		}}),
	)
	outcome, err := engine.Trace(root, req)
	if err != nil {
		return err
	}
	lgr.V(1).Info("path resolved", logger.PathKey, path, logger.SeparatorKey, run.Separator, "found", outcome.Found)

	if run.Explain {
		fmt.Fprint(cmd.ErrOrStderr(), formatter.StepTable(explainRows(outcome)))
	}
	if !outcome.Found && run.Strict {
		return &ExitError{
			Code: exitCodeMiss,
			Err:  fmt.Errorf("key %q at position %d did not resolve", outcome.FailedKey, outcome.FailedAt),
		}
	}

	rendered, err := engine.Render(outcome.Value, formatter.Output(run.Output))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

// runSettings merges the config file with flags. Flags win when set.
func runSettings(cmd *cobra.Command) (*settings.Run, config.Config, error) {
	cfg, err := config.Load(config.ResolvePath(configFile))
	if err != nil {
		return nil, cfg, err
	}
	run := settings.NewCliParams()
	cfg.Apply(run)

	flags := cmd.Flags()
	if flags.Changed("sep") {
		run.Separator = separator
	}
	if flags.Changed("output") {
		run.Output = output
	}
	if flags.Changed("input-format") {
		run.Input.Format = inputFormat
	}
	if flags.Changed("strict") {
		run.Strict = strict
	}
	run.Explain = explain
	run.Input.YAMLNodes = yamlNodes
	if debug {
		run.MinLogLevel = -1
	}

	if err := formatter.ValidateOutput(run.Output); err != nil {
		return nil, cfg, err
	}
	format, err := loader.ParseFormat(run.Input.Format)
	if err != nil {
		return nil, cfg, err
	}
	run.Input.Format = string(format)
	return run, cfg, nil
}

func explainRows(out dig.Outcome) [][]string {
	rows := [][]string{{"#", "key", "access"}}
	for i, s := range out.Steps {
		rows = append(rows, []string{strconv.Itoa(i), s.Key.String(), string(s.Access)})
	}
	if !out.Found {
		rows = append(rows, []string{strconv.Itoa(out.FailedAt), out.FailedKey.String(), "miss"})
	}
	return rows
}

func init() {
	rootCmd.Flags().StringVarP(&pathFlag, "path", "p", "", "path to resolve (alternative to the positional path)")
	rootCmd.Flags().StringVarP(&separator, "sep", "s", dig.DefaultSeparator, "delimiter used to split the path into keys")
	rootCmd.Flags().StringVar(&keysFlag, "keys", "", `JSON array of keys, e.g. '["items", 0, "name"]'; overrides the path`)
	rootCmd.Flags().StringVarP(&fallbackFlag, "default", "d", "", "value printed when the path does not resolve (parsed as YAML)")
	rootCmd.Flags().StringVarP(&output, "output", "o", string(formatter.OutputAuto), "output format: auto|yaml|json|toml|raw|go")
	rootCmd.Flags().StringVarP(&inputFormat, "input-format", "f", string(loader.FormatAuto), "input format: auto|json|yaml|ndjson|toml|hcl")
	rootCmd.Flags().BoolVar(&yamlNodes, "yaml-nodes", false, "resolve against the YAML node tree (keeps key order and comments)")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "exit with status 3 when the path does not resolve")
	rootCmd.Flags().BoolVar(&explain, "explain", false, "print how each key was resolved to stderr")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "path to a YAML config file")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
