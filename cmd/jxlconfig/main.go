// Command jxlconfig runs the libjxl build resolution ahead of go build. It
// decides between a discovered system library and a vendored build of the
// bundled tree, then prints (or writes) the cgo environment the decision
// implies. The binding packages themselves carry matching #cgo directives;
// jxlconfig exists so a build can fail fast, with a real diagnostic, instead
// of dying inside the C toolchain.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/coreos/go-semver/semver"
	"github.com/spf13/cobra"

	"github.com/imagecodecs/jpegxl-go/internal/resolve"
	"github.com/imagecodecs/jpegxl-go/pkg/jxl"
)

var (
	flagThreads    bool
	flagVendored   bool
	flagSourceDir  string
	flagBuildDir   string
	flagMinVersion string
	flagMaxVersion string
	flagEnvFile    string
	flagVerbose    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jxlconfig",
		Short:         "Resolve the native libjxl library for building jpegxl-go",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flagVerbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newResolveCmd(), newVersionCmd())
	return root
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Locate or build a compatible libjxl and emit the cgo environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := resolve.Spec{
				Threads:       flagThreads,
				AllowVendored: flagVendored,
				SourceDir:     flagSourceDir,
				BuildDir:      flagBuildDir,
			}
			var err error
			if spec.MinVersion, err = parseVersionFlag(flagMinVersion); err != nil {
				return err
			}
			if spec.MaxVersion, err = parseVersionFlag(flagMaxVersion); err != nil {
				return err
			}

			out, err := resolve.NewResolver().Resolve(cmd.Context(), spec)
			if err != nil {
				return err
			}

			if flagEnvFile != "" {
				f, err := os.Create(flagEnvFile)
				if err != nil {
					return fmt.Errorf("write env file: %w", err)
				}
				defer f.Close()
				return out.WriteEnv(f)
			}
			return out.WriteEnv(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&flagThreads, "threads", false, "require threaded-execution support")
	cmd.Flags().BoolVar(&flagVendored, "vendored", false, "allow building the bundled libjxl source tree")
	cmd.Flags().StringVar(&flagSourceDir, "source", "libjxl", "bundled libjxl source tree for vendored builds")
	cmd.Flags().StringVar(&flagBuildDir, "build-dir", "", "vendored build output directory")
	cmd.Flags().StringVar(&flagMinVersion, "min-version", "", "minimum accepted libjxl version (inclusive)")
	cmd.Flags().StringVar(&flagMaxVersion, "max-version", "", "maximum accepted libjxl version (exclusive)")
	cmd.Flags().StringVar(&flagEnvFile, "env-file", "", "write the environment to a file instead of stdout")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print tool and supported libjxl range information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jxlconfig %s\n", jxl.WrapperVersion())
			fmt.Fprintf(cmd.OutOrStdout(), "supported libjxl: >=%s <%s\n",
				resolve.DefaultMinVersion, resolve.DefaultMaxVersion)
		},
	}
}

func parseVersionFlag(s string) (*semver.Version, error) {
	if s == "" {
		return nil, nil
	}
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return v, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("resolution failed", "err", err)
		os.Exit(1)
	}
}
