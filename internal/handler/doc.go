// Package handler serves a widget over HTTP: as a full page, as an
// embeddable fragment and as JSON.
package handler
