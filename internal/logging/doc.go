// Package logging provides opt-in file logging with rotation for devdoctor.
// When --debug is set, structured JSON logs are written to
// ~/.devdoctor/logs/devdoctor.log; otherwise log records are discarded so
// that the report stays the only output.
package logging
