package address

import (
	"bytes"
	"encoding/json"
	"errors"
)

// DecodeRecord parses a JSON request body into a Record. Every field must be
// present and hold a JSON string; all offending fields are reported together.
// Fields outside the record are ignored. An empty body counts as a missing one.
func DecodeRecord(body []byte) (Record, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Record{}, &ValidationError{Issues: []Issue{{Loc: []string{"body"}, Msg: "field required", Type: IssueMissing}}}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		issue := Issue{Loc: []string{"body"}, Msg: "JSON decode error: " + err.Error(), Type: IssueJSONInvalid}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			issue.Msg, issue.Type = "input should be an object", IssueModelType
		}
		return Record{}, &ValidationError{Issues: []Issue{issue}}
	}
	if raw == nil { // literal null
		return Record{}, &ValidationError{Issues: []Issue{{Loc: []string{"body"}, Msg: "input should be an object", Type: IssueModelType}}}
	}

	var issues []Issue
	fields := make(map[string]string, len(FieldNames))
	for _, name := range FieldNames {
		value, err := stringField(raw, name)
		if err != nil {
			issues = append(issues, *err)
			continue
		}
		fields[name] = value
	}
	if len(issues) > 0 {
		return Record{}, &ValidationError{Issues: issues}
	}

	return recordFromFields(fields), nil
}

func stringField(raw map[string]json.RawMessage, name string) (string, *Issue) {
	data, ok := raw[name]
	if !ok {
		return "", &Issue{Loc: []string{"body", name}, Msg: "field required", Type: IssueMissing}
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil || string(data) == "null" {
		return "", &Issue{Loc: []string{"body", name}, Msg: "input should be a valid string", Type: IssueStringType}
	}

	return value, nil
}
