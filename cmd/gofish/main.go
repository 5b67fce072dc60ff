package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gofish/internal/config"
	"gofish/internal/logutil"
	"gofish/internal/shell"
)

var (
	command    string
	configPath string
	noConfig   bool
)

var rootCmd = &cobra.Command{
	Use:           "gofish [script [args...]]",
	Short:         "An interactive fish-flavoured shell",
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

var exitCode int

func init() {
	rootCmd.Flags().StringVarP(&command, "command", "c", "", "run command string and exit")
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/gofish/config.yaml)")
	rootCmd.Flags().BoolVar(&noConfig, "no-config", false, "ignore the config file and use defaults")
	// 脚本之后的参数原样交给脚本
	rootCmd.Flags().SetInterspersed(false)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gofish: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}

func loadConfig() (*config.Config, error) {
	switch {
	case noConfig:
		return config.DefaultConfig(), nil
	case configPath != "":
		return config.LoadFrom(configPath)
	default:
		return config.Load()
	}
}

func runShell(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := logutil.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	sh := shell.New(cfg, logger)
	defer sh.Close()

	switch {
	case command != "":
		err = sh.ExecuteReader(strings.NewReader(command))
	case len(args) > 0:
		err = sh.ExecuteScript(args[0], args[1:]...)
	default:
		err = sh.Run()
	}
	exitCode = sh.ExitCode()
	return err
}
