package camcal

import "fmt"

// A CalibrationLoadError means a calibration file was missing, or didn't
// have the shape we needed. Line is the 0-based line in the file, or -1
// if the problem isn't about a particular line.
type CalibrationLoadError struct {
	File string
	Line int
	Err  error
}

func (e *CalibrationLoadError)Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("calibration '%s': %v", e.File, e.Err)
	}
	return fmt.Sprintf("calibration '%s' line %d: %v", e.File, e.Line, e.Err)
}

func (e *CalibrationLoadError)Unwrap() error { return e.Err }

func loadErr(file string, line int, format string, args ...interface{}) error {
	return &CalibrationLoadError{File: file, Line: line, Err: fmt.Errorf(format, args...)}
}
