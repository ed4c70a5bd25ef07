// Package config loads the widget's configuration from an optional YAML file,
// a .env file and environment variables. It defines the endpoint to poll, the
// poll interval and timeout, the HTTP host settings and logging.
package config
