// Package domain translates MCP tool calls into dice service operations.
//
// Handlers parse tool input, call the dice service and shape structured
// output. Domain failures are returned as tool errors carrying the localized
// message for the caller's locale.
package domain
