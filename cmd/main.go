package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/syncromatics/go-kit/v2/log"

	"psychrometric-calculator/internal/server"
)

var (
	rootCmd = cobra.Command{
		Use:           "psychrometric-calculator",
		Short:         "host a web form computing moist-air properties from dry-bulb temperature and relative humidity",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			settings := &server.Settings{}
			err := viper.Unmarshal(settings)
			if err != nil {
				return errors.Wrap(err, "failed to parse settings")
			}
			log.Info("using settings",
				"settings", settings)

			return server.Execute(settings)
		},
	}
)

func init() {
	server.ConfigureFlags(rootCmd.Flags())

	viper.SetEnvPrefix("PSYCHRO")
	replacer := strings.NewReplacer("-", "_")
	viper.SetEnvKeyReplacer(replacer)
	viper.AutomaticEnv()
	viper.BindPFlags(rootCmd.Flags())
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal("failed to terminate cleanly",
			"err", err)
	}
}
