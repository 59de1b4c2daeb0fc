// Package logging provides the structured logging interface of the breakfast
// order simulator, backed by zerolog. Orchestration code logs through Logger;
// the application builds a console logger on stderr, and tests or callers that
// want silence use NopLogger.
package logging
