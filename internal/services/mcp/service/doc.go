// Package service wires MCP transports to the dice tools.
//
// It knows how to run MCP over stdio or streamable HTTP and delegates every
// tool call to the handlers in the domain package.
package service
