package storage

import "errors"

// Error kinds for the benchmark harness failure taxonomy. Record and
// query failures are contained by their unit of work; batch failures
// lose the batch but never the run; index-build failures are terminal
// for that table's search capability.
var (
	ErrRecordWrite = errors.New("record write failed")
	ErrBatchWrite  = errors.New("batch write failed")
	ErrIndexBuild  = errors.New("index build failed")
	ErrQueryExec   = errors.New("query execution failed")
)
