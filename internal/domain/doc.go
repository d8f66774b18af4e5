// Package domain models National Weather Service (NWS) forecast and alert data
// as served by api.weather.gov.
//
// # API Conventions
//
// Forecast retrieval is a two-step indirection: GET /points/{lat},{lon} returns
// location metadata whose properties.forecast field is the URL of the actual
// forecast resource for that grid cell. The forecast resource carries an
// ordered list of named periods ("Tonight", "Saturday", ...); the API's own
// ordering is authoritative and is never reordered here, only truncated to
// [MaxForecastPeriods] for display.
//
// Active alerts come from GET /alerts/active/area/{STATE} as a GeoJSON feature
// collection. Alert properties of interest: event, areaDesc, severity,
// description, and the optional instruction. An absent instruction is rendered
// as [NoInstructionsMessage].
//
// # Validation Policy
//
// Coordinate and state-code validation is deliberately permissive: out-of-range
// or malformed input produces warnings in a [ValidationResult] and the request
// proceeds. Callers log the warnings and let the upstream API have the final
// word. Nothing here hard-rejects a request.
package domain
