package utils

import "errors"

var ErrorRecordNotFound = errors.New("record not found")

// ErrorInvalidTransition is returned when a compliance status change is not
// part of the lifecycle contract (e.g. marking a FILED item overdue).
var ErrorInvalidTransition = errors.New("invalid status transition")

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
