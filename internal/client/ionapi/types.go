package ionapi

import (
	"encoding/json"
	"strings"
)

type InvokeMethodResponse struct {
	Message     flexString   `json:"Message"`
	ReturnValue flexString   `json:"ReturnValue"`
	Parameters  []flexString `json:"Parameters"`
}

type MongooseError struct {
	Message string `json:"Message"`
}

// flexString accepts a JSON string, null, or any scalar, which Mongoose
// emits interchangeably for parameter values.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(raw)
	return nil
}
