package main

import (
	"errors"
	"fmt"

	"github.com/spg2143/QuantFinance/cmd"

	"github.com/spf13/viper"
)

func configureViper() {
	// read config file
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath("/etc/quantfinance/")
	viper.AddConfigPath("$HOME/.config/quantfinance")
	viper.AddConfigPath(".")

	// a missing config file is fine; all settings have flag or env defaults
	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}
}

func main() {
	configureViper()
	cmd.Execute()
}
