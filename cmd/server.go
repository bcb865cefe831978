package cmd

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/rolodexd/rolodex/server"
	"github.com/rolodexd/rolodex/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serverCfgFile string

func createServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start a rolodex server",
		Long:  `The rolodex server exposes the contact CRUD & email-verification API`,
		Run: func(cmd *cobra.Command, args []string) {
			server.Start(serverConfig(), isDevEnv)
		},
	}

	cmd.Flags().StringVar(&serverCfgFile, "config", "", "config file (default is $HOME/.rolodex.yaml)")

	return cmd
}

func serverConfig() *viper.Viper {
	config = viper.New()

	if isDevEnv {
		serverCfgFile = devConfigFilePath()
	}

	if serverCfgFile == "" {
		var err error
		serverCfgFile, err = defaultConfigFilePath()
		cobra.CheckErr(err)
	}

	config.SetConfigFile(serverCfgFile)

	// BIND secrets to env vars, so the values don't need to be stored in the
	// config file. FYI: The env var overrides whatever is in the config file
	config.BindEnv("hunter.apiKey", "HUNTER_IO_API_KEY")
	config.BindEnv("google.applicationCredentials", "GOOGLE_APPLICATION_CREDENTIALS")

	config.AutomaticEnv() // read in environment variables that match

	if err := config.ReadInConfig(); err != nil {
		cobra.CheckErr(formattedError("error reading server config file: %v", err))
	}

	return config
}

// defaultConfigFilePath returns $HOME/.rolodex.yaml, creating the file with
// default content on first run.
func defaultConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configFilePath := filepath.Join(homeDir, ".rolodex.yaml")
	if !utils.FileExist(configFilePath) {
		if err := ioutil.WriteFile(configFilePath, []byte(defaultConfigValue()), 0600); err != nil {
			return "", err
		}
	}

	return configFilePath, nil
}

func devConfigFilePath() string {
	configDir, err := os.Getwd()
	cobra.CheckErr(err)

	return filepath.Join(configDir, "dev", "config", "server.yml")
}

// defaultConfigValue returns the default content for .rolodex.yaml
func defaultConfigValue() string {
	return `listener:
  port: 3000

sqlite:
  # Optional passphrase used to encrypt the contacts database on disk.
  passPhrase: ""

hunter:
  # hunter.io API key. Leave empty to run with deterministic mock scores,
  # or provide it via the HUNTER_IO_API_KEY env var.
  apiKey: ""

cors:
  allowedOrigins:
    - "http://localhost:8000"
    - "http://127.0.0.1:8000"
    - "http://localhost:5500"

cron:
  timeZone: "UTC"

google:
  # Path to a service account key file. Can also be provided via the
  # GOOGLE_APPLICATION_CREDENTIALS env var.
  applicationCredentials: ""
  storage:
    bucket: ""
    prefix: "rolodex-backups"
    sqliteBackupSchedule: "0 */6 * * *"
    enableSqliteBackupAndSync: false
`
}
