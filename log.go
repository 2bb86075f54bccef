//go:build !tinygo

package onepin

import "github.com/golang/glog"

func debugf(format string, args ...interface{}) {
	glog.V(1).Infof(format, args...)
}

func warnf(format string, args ...interface{}) {
	glog.Warningf(format, args...)
}
