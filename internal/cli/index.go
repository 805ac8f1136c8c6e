package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqctl/internal/app"
)

type indexOptions struct {
	Output           string
	IndexURL         string
	User             string
	APIKey           string
	Packages         []string
	Max              int
	Workers          int
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

func newIndexCommand() *cobra.Command {
	opts := indexOptions{}
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Generate a package index from a simple index feed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIndex(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Output, "output", "package-index.yaml", "Output path for the package index YAML")
	cmd.Flags().StringVar(&opts.IndexURL, "index-url", "", "Simple index base URL (e.g., https://pypi.org/simple)")
	cmd.Flags().StringVar(&opts.User, "user", "", "Basic auth user (defaults to api)")
	cmd.Flags().StringVar(&opts.APIKey, "api-key", "", "Basic auth password/API key")
	cmd.Flags().StringSliceVar(&opts.Packages, "package", nil, "Limit indexing to specified package(s)")
	cmd.Flags().IntVar(&opts.Max, "max", 0, "Maximum number of packages to index (0 = all)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 8, "Concurrent fetch workers (0 = default)")
	cmd.Flags().IntVar(&opts.HTTPTimeoutSec, "http-timeout", 60, "HTTP timeout in seconds (0 = default)")
	cmd.Flags().IntVar(&opts.HTTPRetries, "http-retries", 3, "HTTP retries (0 = default)")
	cmd.Flags().IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay-ms", 200, "HTTP retry base delay in ms (0 = default)")

	_ = viper.BindPFlag("index_output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("index_url", cmd.Flags().Lookup("index-url"))
	_ = viper.BindPFlag("index_user", cmd.Flags().Lookup("user"))
	_ = viper.BindPFlag("index_api_key", cmd.Flags().Lookup("api-key"))
	_ = viper.BindPFlag("index_packages", cmd.Flags().Lookup("package"))
	_ = viper.BindPFlag("index_max", cmd.Flags().Lookup("max"))
	_ = viper.BindPFlag("index_workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("http_timeout_sec", cmd.Flags().Lookup("http-timeout"))
	_ = viper.BindPFlag("http_retries", cmd.Flags().Lookup("http-retries"))
	_ = viper.BindPFlag("http_retry_delay_ms", cmd.Flags().Lookup("http-retry-delay-ms"))

	return cmd
}

func runIndex(ctx context.Context, cmd *cobra.Command, opts indexOptions) error {
	service := newAppService()
	result, err := service.BuildIndex(ctx, app.IndexBuildRequest{
		Output:           resolveString(cmd, opts.Output, "index_output", "output"),
		IndexURL:         resolveString(cmd, opts.IndexURL, "index_url", "index-url"),
		User:             resolveString(cmd, opts.User, "index_user", "user"),
		APIKey:           resolveString(cmd, opts.APIKey, "index_api_key", "api-key"),
		Packages:         resolveStrings(cmd, opts.Packages, "index_packages", "package"),
		MaxPackages:      resolveInt(cmd, opts.Max, "index_max", "max"),
		Workers:          resolveInt(cmd, opts.Workers, "index_workers", "workers"),
		HTTPTimeoutSec:   resolveInt(cmd, opts.HTTPTimeoutSec, "http_timeout_sec", "http-timeout"),
		HTTPRetries:      resolveInt(cmd, opts.HTTPRetries, "http_retries", "http-retries"),
		HTTPRetryDelayMs: resolveInt(cmd, opts.HTTPRetryDelayMs, "http_retry_delay_ms", "http-retry-delay-ms"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("wrote package index: %s (%d packages)\n", result.OutputPath, result.PackageCount)
	return nil
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}
