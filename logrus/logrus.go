package logrus

import (
	"fmt"
	"github.com/lukasz-zimnoch/dexly/history"
	"github.com/sirupsen/logrus"
	"io"
)

type wrapper struct {
	*logrus.Entry
}

func (w *wrapper) WithField(key string, value interface{}) history.Logger {
	return &wrapper{w.Entry.WithField(key, value)}
}

func (w *wrapper) WithFields(fields map[string]interface{}) history.Logger {
	return &wrapper{w.Entry.WithFields(fields)}
}

// NewLogger configures a dedicated logrus logger writing to the given
// output. Format is either `json` or anything else for text.
func NewLogger(format, level string, output io.Writer) (history.Logger, error) {
	logger := logrus.New()

	fieldMap := logrus.FieldMap{
		logrus.FieldKeyLevel: "severity",
		logrus.FieldKeyMsg:   "message",
	}

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			FieldMap: fieldMap,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			FieldMap:      fieldMap,
		})
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("could not parse log level: [%v]", err)
	}

	logger.SetLevel(logLevel)
	logger.SetOutput(output)

	return &wrapper{logger.WithFields(map[string]interface{}{})}, nil
}
