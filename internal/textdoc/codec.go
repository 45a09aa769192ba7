package textdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
	"workspace.busmate.lk/internal/models"
)

// ParseError locates one structural problem in an edited document.
// Location is a path such as "schedules[1].exceptions[0].date" so a
// caller can highlight the offending region.
type ParseError struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (e ParseError) Error() string {
	return e.Location + ": " + e.Message
}

// Encode renders the document as canonical YAML. The output is a pure
// function of the document: same model, byte-identical text.
func Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding schedule document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding schedule document: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses edited text back into a document. It returns a non-empty
// error list instead of failing fast, and it never panics: a document
// that does not parse cleanly yields errors, not a best-guess model.
func Decode(data []byte) (doc Document, errs []ParseError) {
	defer func() {
		if r := recover(); r != nil {
			doc = Document{}
			errs = []ParseError{{Location: "document", Message: fmt.Sprintf("malformed document: %v", r)}}
		}
	}()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, []ParseError{{Location: "document", Message: "document is empty"}}
		}
		return Document{}, []ParseError{{Location: "document", Message: err.Error()}}
	}

	errs = checkStructure(doc)
	if len(errs) > 0 {
		return Document{}, errs
	}
	return doc, nil
}

// checkStructure verifies enum values and date/time formats, which YAML
// itself cannot. Anything beyond format — required times, calendar
// rules, duplicates — belongs to the validation engine, not the parser.
func checkStructure(doc Document) []ParseError {
	var errs []ParseError

	addErr := func(location, format string, args ...any) {
		errs = append(errs, ParseError{Location: location, Message: fmt.Sprintf(format, args...)})
	}

	for i, sd := range doc.Schedules {
		loc := fmt.Sprintf("schedules[%d]", i)

		if sd.Type != "" && !models.ScheduleType(sd.Type).Valid() {
			addErr(loc+".type", "unknown schedule type %q, use %s or %s", sd.Type, models.ScheduleTypeRegular, models.ScheduleTypeSpecial)
		}
		if sd.EffectiveStartDate != "" {
			if _, err := time.Parse(models.DateFormat, sd.EffectiveStartDate); err != nil {
				addErr(loc+".effectiveStartDate", "invalid date %q, use YYYY-MM-DD", sd.EffectiveStartDate)
			}
		}
		if sd.EffectiveEndDate != "" {
			if _, err := time.Parse(models.DateFormat, sd.EffectiveEndDate); err != nil {
				addErr(loc+".effectiveEndDate", "invalid date %q, use YYYY-MM-DD", sd.EffectiveEndDate)
			}
		}

		for j, e := range sd.Exceptions {
			eloc := fmt.Sprintf("%s.exceptions[%d]", loc, j)
			if _, err := time.Parse(models.DateFormat, e.Date); err != nil {
				addErr(eloc+".date", "invalid date %q, use YYYY-MM-DD", e.Date)
			}
			if !models.ExceptionType(e.Type).Valid() {
				addErr(eloc+".type", "unknown exception type %q, use %s or %s", e.Type, models.ExceptionAdded, models.ExceptionRemoved)
			}
		}

		for j, ss := range sd.Stops {
			sloc := fmt.Sprintf("%s.stops[%d]", loc, j)
			if ss.StopID == "" {
				addErr(sloc+".stopId", "stopId is required")
			}
			if ss.StopOrder < 0 {
				addErr(sloc+".stopOrder", "stopOrder must not be negative")
			}
			if ss.ArrivalTime != "" {
				if _, err := models.ParseTimeOfDay(ss.ArrivalTime); err != nil {
					addErr(sloc+".arrivalTime", "%v", err)
				}
			}
			if ss.DepartureTime != "" {
				if _, err := models.ParseTimeOfDay(ss.DepartureTime); err != nil {
					addErr(sloc+".departureTime", "%v", err)
				}
			}
		}
	}
	return errs
}
