package log

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
)

var levelColors = map[Level]*color.Color{
	DebugLevel: color.New(color.FgCyan),
	InfoLevel:  color.New(color.FgGreen),
	WarnLevel:  color.New(color.FgYellow),
	ErrorLevel: color.New(color.FgRed),
	FatalLevel: color.New(color.FgRed, color.Bold),
}

// TextFormatter renders entries as a human-readable line:
//
//	2012-01-25T14:03:07Z INFO  object file opened object_type=user blocks=1
type TextFormatter struct {
	// DisableColors turns off level colorization regardless of terminal
	// detection.
	DisableColors bool
}

func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(entry.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"))
	buf.WriteByte(' ')

	level := fmt.Sprintf("%-5s", entry.Level)
	if f.DisableColors {
		buf.WriteString(level)
	} else {
		buf.WriteString(levelColors[entry.Level].Sprint(level))
	}
	buf.WriteByte(' ')
	buf.WriteString(entry.Message)

	for _, field := range entry.Fields {
		fmt.Fprintf(&buf, " %s=%v", field.Key, field.Value)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// JSONFormatter renders entries as one JSON object per line.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	obj := make(map[string]any, len(entry.Fields)+3)
	obj["ts"] = entry.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z")
	obj["level"] = entry.Level.String()
	obj["msg"] = entry.Message
	for _, field := range entry.Fields {
		obj[field.Key] = field.Value
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
