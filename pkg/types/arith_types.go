package types

import (
	"math/big"
	"time"
)

// Width selects the integer arithmetic an operation runs in
type Width string

const (
	WidthUnbounded Width = "unbounded" // math/big, exact
	WidthInt64     Width = "int64"     // two's-complement with wraparound
)

// OperationContext provides shared context across all arithmetic responses
type OperationContext struct {
	Timestamp time.Time `json:"timestamp"`         // Operation timestamp
	Operation string    `json:"operation"`         // "add" or "subtract"
	Width     Width     `json:"width"`             // Arithmetic the operation ran in
	Summary   string    `json:"summary,omitempty"` // Human-readable description of the outcome
}

// ResultResponse is returned by the add and subtract tools.
//
// Integers are encoded as decimal strings so values beyond 2^53 survive
// JSON clients that decode numbers as float64.
type ResultResponse struct {
	Status    string           `json:"status"` // "success" or "error"
	Context   OperationContext `json:"context"`
	A         string           `json:"a,omitempty"`
	B         string           `json:"b,omitempty"`
	Result    string           `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	ErrorKind string           `json:"errorKind,omitempty"` // "type" for any invalid argument, "overflow" for the subtraction guard
}

// NewResultResponse builds a successful response.
func NewResultResponse(op string, width Width, a, b, result *big.Int) ResultResponse {
	return ResultResponse{
		Status: "success",
		Context: OperationContext{
			Timestamp: time.Now(),
			Operation: op,
			Width:     width,
			Summary:   op + "(" + a.String() + ", " + b.String() + ") = " + result.String(),
		},
		A:      a.String(),
		B:      b.String(),
		Result: result.String(),
	}
}

// ServerInfo describes the running server
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// OperationCounts tallies tool invocations since start
type OperationCounts struct {
	Add      int `json:"add"`
	Subtract int `json:"subtract"`
	Failures int `json:"failures"`
}

// StatusResponse is returned by the status tool
type StatusResponse struct {
	Server     ServerInfo      `json:"server"`
	Operations OperationCounts `json:"operations"`
	Threshold  string          `json:"overflowThreshold"`
}
