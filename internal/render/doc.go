// Package render turns a widget.View into terminal text, HTML or a data
// encoding.
package render
