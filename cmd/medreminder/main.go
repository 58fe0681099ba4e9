package main

import (
	"context"
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"medreminder/internal/analysis"
	"medreminder/internal/di"
	"medreminder/internal/providers"
	"medreminder/internal/structures"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medreminder",
		Short: "Medication reminder daemon",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(analyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	flags := &structures.CliFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reminder scheduler and HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := di.InitApp(flags)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			return app.Run()
		},
	}
	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "Path to the YAML config file")
	cmd.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "Log to the console at debug level")
	return cmd
}

func analyzeCmd() *cobra.Command {
	var file, analysisType, url, configPath string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Upload a medical image to the analysis service",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := &structures.Config{Analysis: structures.AnalysisConfig{BaseURL: url, Timeout: timeout}}
			if url == "" {
				loaded, err := providers.NewConfigProvider(&structures.CliFlags{ConfigPath: configPath})
				if err != nil {
					return err
				}
				conf.Analysis.BaseURL = loaded.Analysis.BaseURL
			}

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stderr := cmd.ErrOrStderr()
			result, err := analysis.NewClient(conf).Analyze(ctx, file, f, info.Size(), analysisType, func(p int) {
				fmt.Fprintf(stderr, "\ruploading %3d%%", p)
			})
			fmt.Fprintln(stderr)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Image to upload")
	cmd.Flags().StringVarP(&analysisType, "type", "t", "", "Analysis type, e.g. xray or mri")
	cmd.Flags().StringVar(&url, "url", "", "Analysis service base url (defaults to analysis.baseURL from the config)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Request timeout")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
