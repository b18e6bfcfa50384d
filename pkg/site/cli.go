package site

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/soar/internal/config"
	"github.com/vango-dev/soar/internal/errors"
)

// Version information, set at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Command returns the command line interface of a site: build, serve,
// publish and version.
func Command(s *Site) *cobra.Command {
	root := &cobra.Command{
		Use:   "soar",
		Short: "Build, serve and publish a Soar site",
		Long: `Soar renders Go component trees to static HTML pages with
component-scoped CSS.

Commands:
  build    render every page into the output directory
  serve    render pages on request in a development server
  publish  upload the output directory to an S3 bucket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		buildCmd(s),
		serveCmd(s),
		publishCmd(s),
		versionCmd(),
	)
	return root
}

// Execute runs the command line interface and exits non-zero on failure.
func Execute(s *Site) {
	if err := Command(s).Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func buildCmd(s *Site) *cobra.Command {
	var (
		output string
		clean  bool
	)

	cmd := &cobra.Command{
		Use:     "build",
		Aliases: []string{"b"},
		Short:   "Render every page into the output directory",
		Long: `Render every registered page to <output>/<url>/index.html, copy the
static directory and write manifest.json.

Examples:
  soar build
  soar build --output=public --clean`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := s.Config()
			if output == "" {
				output = cfg.OutputPath()
			}
			if !cmd.Flags().Changed("clean") {
				clean = cfg.Build.Clean
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			out := cmd.OutOrStdout()
			result, err := s.Build(ctx, output, BuildOptions{
				Clean: clean,
				OnProgress: func(step string) {
					info(out, step)
				},
			})
			if err != nil {
				return err
			}

			success(out, "Built %d pages and %d files in %s", len(result.Pages), len(result.Assets), result.Duration.Round(time.Millisecond))
			info(out, "Output: "+result.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (default from "+config.ConfigFileName+")")
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove the output directory before building")

	return cmd
}

func serveCmd(s *Site) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s", "dev"},
		Short:   "Serve the site, rendering pages on request",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *s.Config()
			if port != 0 {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			success(cmd.OutOrStdout(), "Serving %d pages at %s", len(s.Pages()), cfg.DevURL())
			return s.Serve(ctx, cfg.DevAddress())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Server port (default from "+config.ConfigFileName+")")
	cmd.Flags().StringVar(&host, "host", "", "Server host (default from "+config.ConfigFileName+")")

	return cmd
}

func publishCmd(s *Site) *cobra.Command {
	var (
		dir      string
		bucket   string
		prefix   string
		region   string
		endpoint string
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the output directory to an S3 bucket",
		Long: `Upload every file of a finished build to an S3 (or S3-compatible)
bucket. Credentials are read from the AWS_* environment variables.

Examples:
  soar build && soar publish --bucket=my-site
  soar publish --bucket=docs --prefix=v2 --endpoint=http://localhost:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *s.Config()
			for _, o := range []struct {
				flag string
				dst  *string
				val  string
			}{
				{"bucket", &cfg.Publish.Bucket, bucket},
				{"prefix", &cfg.Publish.Prefix, prefix},
				{"region", &cfg.Publish.Region, region},
				{"endpoint", &cfg.Publish.Endpoint, endpoint},
			} {
				if cmd.Flags().Changed(o.flag) {
					*o.dst = o.val
				}
			}
			if err := cfg.ValidatePublish(); err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.OutputPath()
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			result, err := Publish(ctx, NewS3Client(cfg.Publish), cfg.Publish.Bucket, cfg.Publish.Prefix, dir)
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Uploaded %d files (%d bytes) to s3://%s/%s",
				len(result.Keys), result.Bytes, cfg.Publish.Bucket, ObjectKey(cfg.Publish.Prefix, ""))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to upload (default: build output)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Destination bucket")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix")
	cmd.Flags().StringVar(&region, "region", "", "Bucket region")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Endpoint of an S3-compatible service")

	return cmd
}

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, Version)
				return
			}
			fmt.Fprintf(out, "  Version:    %s\n", Version)
			fmt.Fprintf(out, "  Commit:     %s\n", Commit)
			fmt.Fprintf(out, "  Built:      %s\n", Date)
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}

// signalContext derives a context canceled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, msg string) {
	fmt.Fprintf(w, "  %s\n", msg)
}
