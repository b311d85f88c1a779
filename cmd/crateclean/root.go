package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tobyrandall/crateclean/pkg/crateclean/config"
	"github.com/tobyrandall/crateclean/pkg/crateclean/logging"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "crateclean",
		Short: "Reconcile a Rekordbox collection against your music folders",
		Long: `Crateclean compares the tracks referenced by a Rekordbox XML export with
the audio files actually on disk, then quarantines unreferenced files into a
flat holding directory. Every move is logged to an append-only manifest, so
quarantine is fully reversible with 'crateclean restore'.

Examples:
  crateclean preview -x collection.xml -r ~/Music/DJ_MUSIC
  crateclean move --dry-run -x collection.xml -r ~/Music/DJ_MUSIC
  crateclean move -x collection.xml -r ~/Music/DJ_MUSIC
  crateclean restore -r ~/Music/DJ_MUSIC
  crateclean history -r ~/Music/DJ_MUSIC`,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/crateclean/config.yaml)")
	rootCmd.PersistentFlags().StringP("rekordbox-xml", "x", "", "path to the Rekordbox exported collection XML")
	rootCmd.PersistentFlags().StringSliceP("scan-root", "r", nil, "directory to scan for audio files (repeatable)")
	rootCmd.PersistentFlags().StringSliceP("ext", "e", nil, "allowed audio extensions (overrides config)")
	rootCmd.PersistentFlags().StringP("output", "o", "pretty", "output format (pretty, plain, json, yaml)")
	rootCmd.PersistentFlags().Bool("case-insensitive", false, "compare paths case-insensitively")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	_ = viper.BindPFlag("rekordbox_xml", rootCmd.PersistentFlags().Lookup("rekordbox-xml"))
	_ = viper.BindPFlag("scan_roots", rootCmd.PersistentFlags().Lookup("scan-root"))
	_ = viper.BindPFlag("extensions", rootCmd.PersistentFlags().Lookup("ext"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("case_insensitive", rootCmd.PersistentFlags().Lookup("case-insensitive"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in the config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if dir, err := config.ConfigDir(); err == nil {
			viper.AddConfigPath(dir)
		}
		if homeDir, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "crateclean"))
		}
	}

	viper.SetEnvPrefix("CRATECLEAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	// Config file is optional; defaults apply when absent.
	_ = viper.ReadInConfig()
}

// setupLogging initializes the logging system from config and flags.
func setupLogging(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	consoleLevel := ""
	if viper.GetBool("verbose") {
		consoleLevel = "debug"
	}
	return logging.Init(logging.Config{
		Level:        cfg.Logging.Level,
		Path:         cfg.Logging.Path,
		Components:   cfg.Logging.Components,
		ConsoleLevel: consoleLevel,
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printInfo prints a message unless quiet mode is enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}
