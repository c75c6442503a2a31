// Package config defines the application configuration structure and the
// viper-based loading logic that populates it from the environment and an
// optional config file.
package config
