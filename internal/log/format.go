package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// textFormatter renders one line per record:
//
//	2006-01-02 15:04:05 LEVEL caller.go:42 message key=value key=value
type textFormatter struct{}

func (f *textFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	caller, _ := e.Data[callerField].(string)
	fmt.Fprintf(&b, "%s %-7s %s %s",
		e.Time.Format("2006-01-02 15:04:05"),
		strings.ToUpper(e.Level.String()),
		caller,
		e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		if k == callerField {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// jsonFormatter renders one JSON object per record with timestamp, level,
// message, and caller keys plus any structured fields.
type jsonFormatter struct{}

func (f *jsonFormatter) Format(e *logrus.Entry) ([]byte, error) {
	record := map[string]interface{}{
		"timestamp": e.Time.Format(time.RFC3339),
		"level":     strings.ToUpper(e.Level.String()),
		"message":   e.Message,
	}
	if caller, ok := e.Data[callerField].(string); ok {
		record["caller"] = caller
	}
	for k, v := range e.Data {
		if k == callerField {
			continue
		}
		if err, ok := v.(error); ok {
			record[k] = err.Error()
			continue
		}
		record[k] = v
	}

	out, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal log record: %w", err)
	}
	return append(out, '\n'), nil
}
