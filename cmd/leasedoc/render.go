package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	leasedoc "github.com/alnah/go-leasedoc"
	"github.com/alnah/go-leasedoc/internal/assets"
	"github.com/alnah/go-leasedoc/internal/browserpdf"
	"github.com/alnah/go-leasedoc/internal/config"
	"github.com/alnah/go-leasedoc/internal/fileutil"
	"github.com/alnah/go-leasedoc/internal/hints"
	"github.com/alnah/go-leasedoc/internal/translate"
	"github.com/alnah/go-leasedoc/internal/yamlutil"
)

// Sentinel errors for the render command.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrTooManyInputs      = errors.New("render takes a single input file")
	ErrReadInput          = errors.New("failed to read lease input")
	ErrWriteArtifact      = errors.New("failed to write artifact")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
	ErrTranslationsFailed = errors.New("translations failed")
)

// runRenderCmd parses flags, runs the render and maps the outcome to an
// exit code.
func runRenderCmd(args []string, env *Environment) int {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runRender(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runRender orchestrates one render: config, input, assembly, output.
func runRender(ctx context.Context, args []string, flags *renderFlags, env *Environment) (err error) {
	apiKeyEnv := config.DefaultAPIKeyEnv
	defer func() {
		if err != nil {
			err = withHint(err, flags.common.config, apiKeyEnv)
		}
	}()

	if err := validateWorkers(flags.translation.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	apiKeyEnv = cfg.LLM.APIKeyEnv

	timeout, err := resolveTimeoutWithEnv(flags.translation.timeout, envCfg.Timeout, cfg.LLM.Timeout)
	if err != nil {
		return err
	}

	if flags.printConfig {
		cfg.LLM.Timeout = timeout.String()
		out, err := yamlutil.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(out)
		return err
	}

	inputPath, err := resolveInput(args)
	if err != nil {
		return err
	}
	draft, err := readDraft(inputPath, flags.envelope)
	if err != nil {
		return err
	}
	// Fail before starting a browser or contacting the model.
	if err := draft.Validate(); err != nil {
		return err
	}

	start := env.Now()
	svc, err := buildServices(ctx, cfg, flags, timeout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := svc.Close(); cerr != nil && !flags.common.quiet {
			fmt.Fprintf(env.Stderr, "warning: releasing resources: %v\n", cerr)
		}
	}()

	res, err := svc.assembler.Assemble(ctx, draft, cfg.Languages...)
	if err != nil {
		return err
	}

	css, err := svc.assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return err
	}
	w := &artifactWriter{dir: cfg.Output.Dir, base: fileutil.BaseName(inputPath), css: css}
	reports, err := w.writeResult(ctx, res)
	if err != nil {
		return err
	}

	failed := printReports(reports, flags.common.quiet, env)
	if flags.common.verbose && !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "\nbatch %s: %d language(s) in %v\n",
			res.BatchID, len(reports), env.Now().Sub(start).Round(time.Millisecond))
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrTranslationsFailed, failed, len(res.Translations))
	}
	return nil
}

// loadConfig loads the named config, falling back to LEASEDOC_CONFIG and
// then to the defaults.
func loadConfig(name string, env *envConfig) (*config.Config, error) {
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values;
// languages are appended to the configured ones.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}

	// Translation
	cfg.Languages = append(cfg.Languages, flags.translation.languages...)
	if flags.translation.workers > 0 {
		cfg.Translation.Workers = flags.translation.workers
	}
	if flags.translation.mockLLM {
		cfg.LLM.Provider = "mock"
	}
	if flags.translation.noCache {
		cfg.Translation.Cache.Backend = "none"
	}

	// PDF
	if flags.pdf.fontSet != "" {
		cfg.PDF.FontSet = flags.pdf.fontSet
	}
	if flags.pdf.unicodeEngine != "" {
		cfg.PDF.UnicodeEngine = flags.pdf.unicodeEngine
	}
	if flags.pdf.noCompress {
		compress := false
		cfg.PDF.Compress = &compress
	}
}

// resolveTimeoutWithEnv picks the per-language translation timeout.
// Priority: flag > LEASEDOC_TIMEOUT > config > default.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	if configValue != "" {
		d, err := time.ParseDuration(configValue)
		if err != nil {
			return 0, fmt.Errorf("%w in config %q: %v", ErrInvalidTimeout, configValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, configValue)
		}
		return d, nil
	}
	return config.DefaultTimeout, nil
}

// validateWorkers rejects worker counts outside [0, config.MaxWorkers].
func validateWorkers(n int) error {
	if n < 0 || n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// resolveInput returns the single positional input path.
func resolveInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: got %d", ErrTooManyInputs, len(args))
	}
}

// readDraft reads a Markdown lease, or a generator envelope when asked to
// or when the file has a .json extension.
func readDraft(path string, envelope bool) (leasedoc.LeaseDraft, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return leasedoc.LeaseDraft{}, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if envelope || strings.EqualFold(filepath.Ext(path), ".json") {
		return leasedoc.ParseDraft(string(data))
	}
	return leasedoc.LeaseDraft{Body: string(data)}, nil
}

// hintedError appends an actionable hint to an error message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

// withHint attaches the hint matching err, if any.
func withHint(err error, configName, apiKeyEnv string) error {
	if hint := hintFor(err, configName, apiKeyEnv); hint != "" {
		return &hintedError{err: err, hint: hint}
	}
	return err
}

// hintFor returns the hint for a failed render, or "".
func hintFor(err error, configName, apiKeyEnv string) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchedPaths(configName))
	case errors.Is(err, translate.ErrMissingAPIKey):
		return hints.ForMissingAPIKey(apiKeyEnv)
	case errors.Is(err, leasedoc.ErrMalformedEnvelope):
		return hints.ForMalformedEnvelope()
	case errors.Is(err, browserpdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, ErrWriteArtifact):
		return hints.ForOutputDirectory()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, leasedoc.ErrUnsupportedScript), errors.Is(err, leasedoc.ErrLanguageExcluded):
		return hints.ForUnsupportedScript()
	}
	return ""
}
