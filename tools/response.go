package tools

import (
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cwikio/Hexa-Puffs/config"
	"github.com/cwikio/Hexa-Puffs/identity"
	"github.com/cwikio/Hexa-Puffs/resolve"
)

// Error codes of the response envelope. Every tool returns the same
// {success, data} / {success, error, errorCode} shape so callers can parse
// responses uniformly.
const (
	codeValidation    = "VALIDATION_ERROR"
	codeNotFound      = "NOT_FOUND"
	codeConfiguration = "CONFIGURATION_ERROR"
	codeUpstream      = "LINKEDIN_ERROR"
)

type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

func successResult(data any) (*mcp.CallToolResult, error) {
	return render(envelope{Success: true, Data: data})
}

func errorResult(code, message string) (*mcp.CallToolResult, error) {
	return render(envelope{Success: false, Error: message, ErrorCode: code})
}

// failure maps a core error to the envelope. Messages state the error kind
// in plain language; raw upstream payloads never leak through here.
func failure(err error) (*mcp.CallToolResult, error) {
	var cfgErr *config.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		return errorResult(codeConfiguration, err.Error())
	case errors.Is(err, resolve.ErrNotFound):
		return errorResult(codeNotFound, "recipient not found: no matching profile or conversation participant")
	case errors.Is(err, identity.ErrUndeterminable):
		return errorResult(codeUpstream, err.Error())
	default:
		return errorResult(codeUpstream, "LinkedIn request failed: "+err.Error())
	}
}

func render(e envelope) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
