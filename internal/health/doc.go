// Package health defines the health report returned by the backend's
// health_check endpoint and the fetcher that retrieves it. It also provides
// the staleness computation used when the report is rendered.
package health
