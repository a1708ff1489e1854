package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/fieldlint/fieldlint/internal/loader"
	"github.com/fieldlint/fieldlint/internal/report"
	"github.com/fieldlint/fieldlint/pkg/check"
)

// CheckConfig holds the configuration for one lint run.
type CheckConfig struct {
	Paths      []string `validate:"-"`
	Jobs       int      `validate:"gte=0"`
	Color      string   `validate:"oneof=auto always never"`
	SkipTests  bool     `validate:"-"`
	FromJSON   string   `validate:"-"`
	ConfigPath string   `validate:"-"`
}

func newCheckCommand() *cobra.Command {
	var config CheckConfig

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check docstrings in the given files or directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				config.Paths = args
			}
			return runCheck(cmd, &config)
		},
	}

	cmd.Flags().StringVar(&config.ConfigPath, "config", "", "Path to .fieldlint.yml config file")
	cmd.Flags().IntVar(&config.Jobs, "jobs", 0, "Number of files analyzed in parallel (0 = NumCPU)")
	cmd.Flags().StringVar(&config.Color, "color", "auto", "Colorize severity markers: auto, always or never")
	cmd.Flags().BoolVar(&config.SkipTests, "skip-tests", true, "Skip _test.go files")
	cmd.Flags().StringVar(&config.FromJSON, "from-json", "", "Read signature trees from a JSON file ('-' for stdin) instead of parsing Go source")

	return cmd
}

func runCheck(cmd *cobra.Command, config *CheckConfig) error {
	if err := loadConfigFile(cmd, config); err != nil {
		return err
	}
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	applyColor(config.Color)

	rep := report.New()
	if config.FromJSON != "" {
		if err := checkJSON(cmd, config.FromJSON, rep); err != nil {
			return err
		}
	} else {
		if err := checkSource(config, rep); err != nil {
			return err
		}
	}

	rep.Render(cmd.OutOrStdout())
	if errors, _ := rep.Totals(); errors > 0 {
		return errIssuesFound
	}
	return nil
}

// fileConfig mirrors the .fieldlint.yml layout. Pointer fields distinguish
// "absent" from a zero value.
type fileConfig struct {
	Paths     []string `yaml:"paths"`
	Jobs      int      `yaml:"jobs"`
	Color     string   `yaml:"color"`
	SkipTests *bool    `yaml:"skip-tests"`
}

func loadConfigFile(cmd *cobra.Command, config *CheckConfig) error {
	path := config.ConfigPath
	if path == "" {
		if _, err := os.Stat(".fieldlint.yml"); err != nil {
			return nil
		}
		path = ".fieldlint.yml"
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	// Config values apply only where flags weren't set.
	if len(config.Paths) == 0 {
		config.Paths = cfg.Paths
	}
	if !cmd.Flags().Changed("jobs") && cfg.Jobs != 0 {
		config.Jobs = cfg.Jobs
	}
	if !cmd.Flags().Changed("color") && cfg.Color != "" {
		config.Color = cfg.Color
	}
	if !cmd.Flags().Changed("skip-tests") && cfg.SkipTests != nil {
		config.SkipTests = *cfg.SkipTests
	}
	return nil
}

func applyColor(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

// checkSource discovers Go files under the configured paths and lints them.
// Files are independent, so they run on a bounded worker pool; per-file
// reports are folded back in input order to keep output deterministic.
func checkSource(config *CheckConfig, rep *report.Report) error {
	paths := config.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	files, err := loader.Discover(paths, loader.DiscoverOptions{SkipTests: config.SkipTests})
	if err != nil {
		return err
	}

	jobs := config.Jobs
	if jobs == 0 {
		jobs = runtime.NumCPU()
	}

	perFile := make([]*report.File, len(files))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			perFile[i] = lintFile(path)
			return nil
		})
	}
	_ = g.Wait()

	for _, f := range perFile {
		rep.Add(f)
	}
	return nil
}

// lintFile analyzes one file. Parse failures are recorded against the file
// and never abort the batch.
func lintFile(path string) *report.File {
	display := path
	if abs, err := filepath.Abs(path); err == nil {
		display = abs
	}
	f := report.NewFile(display)

	root, err := loader.ParseFile(path)
	if err != nil {
		f.Fail(err)
		return f
	}
	for _, res := range check.Tree(root) {
		f.Add(res)
	}
	return f
}

// checkJSON lints signature trees supplied by an external parser through
// the JSON input contract.
func checkJSON(cmd *cobra.Command, path string, rep *report.Report) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("open signature input: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	files, err := loader.DecodeJSON(r)
	if err != nil {
		return err
	}
	for _, file := range files {
		f := report.NewFile(file.Path)
		for _, res := range check.Tree(file.Root) {
			f.Add(res)
		}
		rep.Add(f)
	}
	return nil
}
