// Package logger holds the process-wide logger for one side of the
// hamcycle protocol. cmd/prover and cmd/verifier each call SetLogger
// once at startup with their own "component" field and read it back
// through Logger(); the library packages (entropy, commitment,
// protocol/prover, protocol/verifier) do not log.
package logger

import "github.com/getamis/sirius/log"

var logger = log.New("component", "hamcycle")

func Logger() log.Logger {
	return logger
}

func SetLogger(log log.Logger) {
	logger = log
}
