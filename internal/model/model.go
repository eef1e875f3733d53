// Package model holds the records served by the API: pets, orders and the
// acknowledgement body returned by form updates.
//
// Records encode as JSON and XML. Lists encode as JSON arrays and as XML
// documents with a plural root element (<pets>, <orders>).
package model

import (
	"encoding/xml"
	"strings"
)

// Record is anything a Store can hold.
type Record interface {
	RecordID() int64
}

// SplitCSV splits a comma separated query value, trimming blanks and
// dropping empty entries.
func SplitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// encodeList writes items under a root element named root, each item in an
// element named item.
func encodeList[T any](e *xml.Encoder, root, item string, items []T) error {
	start := xml.StartElement{Name: xml.Name{Local: root}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for i := range items {
		if err := e.EncodeElement(items[i], xml.StartElement{Name: xml.Name{Local: item}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}
