// Package satlog is the thin structured-logging seam shared by solver and
// portfolio. It exists so neither package hardcodes a *logrus.Logger at
// package-init time, which would make tests noisy and would make it
// impossible for a caller embedding satkit to redirect output.
package satlog

import "github.com/sirupsen/logrus"

// Default returns a logrus entry with no fields set, backed by the
// standard logger. Callers typically pass logger.WithField("component", ...)
// down into whichever solver or worker they construct.
func Default() *logrus.Entry {
	return logrus.NewEntry(logrus.StandardLogger())
}

// Or returns entry if non-nil, otherwise Default(). Every constructor in
// solver and portfolio that accepts an optional *logrus.Entry funnels it
// through this so nil is always a safe zero value.
func Or(entry *logrus.Entry) *logrus.Entry {
	if entry == nil {
		return Default()
	}
	return entry
}
