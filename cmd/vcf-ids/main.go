// Package main provides the vcf-ids command-line tool.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/vcf-ids/internal/idgen"
	"github.com/inodb/vcf-ids/internal/vcf"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Config keys shared by flags and the config file.
const (
	keyDelim    = "delim"
	keyPrefix   = "prefix"
	keySHA1Hash = "sha1-hash"
	keyHashFunc = "hash-func"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		var openErr *vcf.OpenError
		if errors.As(err, &openErr) && errors.Is(openErr.Err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "Hint: Check that the file path is correct\n")
		}

		var ue *usageError
		if errors.As(err, &ue) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

// usageError marks errors caused by invalid command-line usage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

type rootOptions struct {
	cfgFile    string
	inputPath  string
	outputPath string
	verbose    bool
	quiet      bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	defaults := idgen.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "vcf-ids --input <file> [options]",
		Short: "Set VCF record IDs from position and alleles",
		Long: `Sets the ID column of every record in a VCF to an identifier built from
CHROM, POS, REF and ALT. All other columns and the header are written unchanged
to standard output.`,
		Example: `  vcf-ids --input input.vcf.gz > output.vcf
  vcf-ids -i input.vcf --delim : --prefix var_
  vcf-ids -i input.vcf --sha1-hash
  cat input.vcf | vcf-ids -i -`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(opts.cfgFile); err != nil {
				return err
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose, opts.quiet)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, opts)
		},
	}
	cmd.SetVersionTemplate("vcf-ids version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", "", "Config file (default: ~/.vcf-ids.yaml)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug messages to stderr")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "Only log errors to stderr")

	f := cmd.Flags()
	f.StringVarP(&opts.inputPath, "input", "i", "", "Input VCF file, optionally gzipped (.gz), or '-' for stdin")
	f.StringVarP(&opts.outputPath, "output", "o", "", "Output file (default: stdout)")
	f.BoolP(keySHA1Hash, "s", false, "Use the first 4 bytes of a hash of chrom/pos/ref/alt as the ID")
	f.String(keyHashFunc, defaults.HashFunc, "Hash function for --sha1-hash: sha1, xxhash, xxh3, murmur3")
	f.StringP(keyDelim, "d", defaults.Delimiter, "Delimiter between ID parts")
	f.StringP(keyPrefix, "p", "", "Prefix for every ID")

	for _, key := range []string{keyDelim, keyPrefix, keySHA1Hash, keyHashFunc} {
		if err := viper.BindPFlag(key, f.Lookup(key)); err != nil {
			panic(err)
		}
	}

	cmd.AddCommand(newConfigCmd())

	return cmd
}

// newLogger builds a console logger on w. stdout is reserved for VCF output.
func newLogger(w io.Writer, verbose, quiet bool) *zap.Logger {
	level := zapcore.InfoLevel
	switch {
	case quiet:
		level = zapcore.ErrorLevel
	case verbose:
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

func runRewrite(cmd *cobra.Command, opts *rootOptions) (retErr error) {
	if opts.inputPath == "" {
		return &usageError{err: errors.New("--input is required")}
	}

	cfg := idgen.Config{
		Delimiter: viper.GetString(keyDelim),
		UseHash:   viper.GetBool(keySHA1Hash),
		HashFunc:  viper.GetString(keyHashFunc),
		Prefix:    viper.GetString(keyPrefix),
	}
	rw, err := idgen.NewRewriter(cfg)
	if err != nil {
		return &usageError{err: err}
	}
	rw.SetLogger(opts.logger)

	parser, err := vcf.NewParser(opts.inputPath)
	if err != nil {
		return err
	}
	defer parser.Close()

	out := cmd.OutOrStdout()
	if opts.outputPath != "" {
		f, err := os.Create(opts.outputPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() { retErr = closeOutput(f, retErr) }()
		out = f
	}

	opts.logger.Debug("rewriting ids",
		zap.String("input", opts.inputPath),
		zap.String("delim", cfg.Delimiter),
		zap.Bool("hash", cfg.UseHash),
		zap.String("hash_func", cfg.HashFunc),
		zap.String("prefix", cfg.Prefix))

	writer, err := vcf.NewWriter(out, parser.Header())
	if err != nil {
		return err
	}

	_, err = rw.Run(parser, writer)
	return err
}

// closeOutput closes an output file and reports its error unless the run
// already failed.
func closeOutput(c io.Closer, runErr error) error {
	if err := c.Close(); err != nil && runErr == nil {
		return &vcf.EncodeError{Err: fmt.Errorf("closing output file: %w", err)}
	}
	return runErr
}
