package sportmonks

import (
	crerr "github.com/cockroachdb/errors"

	sonic "github.com/bytedance/sonic"
)

// Country is one row of /core/countries; other provider fields are ignored.
type Country struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

type CountriesResponse struct {
	Data []Country `json:"data"`
}

// DecodeCountries parses a countries payload strictly: the body must be
// JSON with a data array whose entries all carry an integer id.
func DecodeCountries(raw []byte) (CountriesResponse, error) {
	var out CountriesResponse
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return CountriesResponse{}, crerr.Wrap(err, "decode countries payload")
	}
	if out.Data == nil {
		return CountriesResponse{}, crerr.New("decode countries payload: missing data array")
	}
	for i, item := range out.Data {
		if item.ID == nil {
			return CountriesResponse{}, crerr.Newf("decode countries payload: entry %d has no id", i)
		}
	}
	return out, nil
}

// DecodeEnvelope parses a payload into a loose JSON object. The data key is
// reported separately so callers can tell "absent" from "empty".
func DecodeEnvelope(raw []byte) (data any, present bool, err error) {
	var root map[string]any
	if err := sonic.Unmarshal(raw, &root); err != nil {
		return nil, false, crerr.Wrap(err, "decode provider payload")
	}
	data, present = root["data"]
	return data, present, nil
}
