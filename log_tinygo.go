//go:build tinygo

package onepin

import "fmt"

// Debug prints the calibration results on the console when set.
var Debug bool

func debugf(format string, args ...interface{}) {
	if Debug {
		println(fmt.Sprintf(format, args...))
	}
}

func warnf(format string, args ...interface{}) {
	println(fmt.Sprintf(format, args...))
}
