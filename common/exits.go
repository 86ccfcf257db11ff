package common

import (
	"encoding/json"
	"fmt"
)

type PanicStatus struct {
	ExitCode int
	Error    error
	Message  string
}

const (
	EXIT_SUCCESS        = 0
	EXIT_COMMON_FAILURE = 1
	EXIT_INVALID_ARGS   = 2
	// ops
	EXIT_OPERATION_FAILED   = 5
	EXIT_OPERATION_CANCELED = 6
	EXIT_PARTIAL_FAILURE    = 7

	// reports
	EXIT_REPORT_WRITE_FAILURE = 10

	// configuration
	EXIT_CONFIGURATION_LOAD_FAILURE = 20
	EXIT_SECRETS_LOAD_FAILURE       = 21
	EXIT_ENGINES_LOAD_FAILURE       = 22

	EXIT_STATE_LOAD_FAILURE = 30
	EXIT_RUN_LOCK_FAILURE   = 31

	EXIT_UNHANDLED_ERROR = 100
)

func RaceConditionPanicWithMetadata(reason string, id string, metadata ...any) {
	fmt.Printf("%s - metadata %s:\n", reason, id)
	for _, m := range metadata {
		data, err := json.Marshal(m)
		if err == nil {
			fmt.Println(string(data))
			continue
		}
		fmt.Printf("Failed to marshal metadata: %s\n", err)
	}
	fmt.Printf("Please report above metadata to the developers.\n")
	panic(PanicStatus{
		ExitCode: EXIT_UNHANDLED_ERROR,
		Error:    fmt.Errorf("%s - metadata %s", reason, id),
	})
}
