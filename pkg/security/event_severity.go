package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of a security event.
// It is derived from EventType, never supplied by the caller.
type Severity string

const (
	SeverityINFO     Severity = "INFO"
	SeverityMEDIUM   Severity = "MEDIUM"
	SeverityWARN     Severity = "WARN"
	SeverityHIGH     Severity = "HIGH"
	SeverityCRITICAL Severity = "CRITICAL"
)

// EventSeverityMap defines the hard-coded severity for each event type
var EventSeverityMap = map[EventType]Severity{
	EventLoginSuccess:  SeverityINFO,
	EventRegistered:    SeverityINFO,
	EventTokenIssued:   SeverityINFO,
	EventTokenRevoked:  SeverityINFO,
	EventTokensRevoked: SeverityMEDIUM,
	EventRoleAssigned:  SeverityMEDIUM,

	EventLoginFailed:  SeverityWARN,
	EventAuthFailed:   SeverityWARN,
	EventAccessDenied: SeverityWARN,
	EventRateLimited:  SeverityWARN,

	EventLoginThrottled:  SeverityHIGH,
	EventThrottleFailure: SeverityHIGH,
}

// SeverityOf returns the severity of event; unknown events are WARN.
func SeverityOf(event EventType) Severity {
	if s, ok := EventSeverityMap[event]; ok {
		return s
	}
	return SeverityWARN
}

func (s Severity) level() zapcore.Level {
	switch s {
	case SeverityINFO, SeverityMEDIUM:
		return zapcore.InfoLevel
	case SeverityHIGH, SeverityCRITICAL:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
