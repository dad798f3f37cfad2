package history

import (
	"github.com/lazharichir/drawpoker/domain/events"
	"github.com/sanity-io/litter"
	"github.com/sirupsen/logrus"
)

// LogHandler writes every table event to the operational log. Payloads are
// dumped at debug level, and only at trace level for private events.
func LogHandler(logger *logrus.Logger) events.EventHandler {
	return func(event events.Event) {
		fields := logrus.Fields{
			"event": event.Name(),
		}
		if id := events.ExtractTableID(event); id != "" {
			fields["table_id"] = id
		}
		if id := events.ExtractHandID(event); id != "" {
			fields["hand_id"] = id
		}
		if name := events.ExtractPlayerName(event); name != "" {
			fields["player"] = name
		}

		dumpLevel := logrus.DebugLevel
		if events.IsPrivate(event) {
			fields["private"] = true
			dumpLevel = logrus.TraceLevel
		}

		entry := logger.WithFields(fields)
		if logger.IsLevelEnabled(dumpLevel) {
			entry = entry.WithField("payload", litter.Sdump(event))
		}
		entry.Info("table event")
	}
}
