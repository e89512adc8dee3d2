package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tapas",
	Short: "tapas episode library",
	Long:  `tapas keeps track of watched episodes and downloads them in the background`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
}

const (
	defaultReconcileTicker = time.Minute
	defaultStaleAfter      = time.Minute * 30
)

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("TAPAS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.username", "")
	viper.SetDefault("server.password", "")

	viper.SetDefault("storage.filePath", "tapas.sqlite")

	viper.SetDefault("library.mediaDir", "public")

	viper.SetDefault("download.binary", "curl")
	viper.SetDefault("download.args", []string{"-sSL", "--trace-ascii", "{trace}", "-o", "{dest}", "{url}"})
	viper.SetDefault("download.traceDir", filepath.Join(os.TempDir(), "tapas"))
	viper.SetDefault("download.staleAfter", defaultStaleAfter)

	viper.SetDefault("manager.jobs.downloadReconcile", defaultReconcileTicker)
}
