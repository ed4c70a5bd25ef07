// Package logger builds the structured slog logger used across the widget.
// Production environments get JSON output; everything else gets text.
package logger
