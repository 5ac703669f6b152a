// Package common provides shared constants, types, utilities, and interfaces
// used throughout the OpenCami desktop shell.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: application identity, URL sources, window geometry
//   - Errors: sentinel errors checked with errors.Is across packages
//   - Interfaces: small abstractions for notifications and logging
//   - Logger: leveled logging to stdout and a rotating log file
//   - Utils: configuration directory helpers
//
// # Usage
//
//	common.LogInfo("Opening %s", url)
//
//	if errors.Is(err, common.ErrInvalidURL) {
//	    // reject the request
//	}
package common
