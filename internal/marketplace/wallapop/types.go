package wallapop

import "encoding/json"

// searchResponse mirrors the API envelope:
// {data: {section: {payload: {items: [...]}}}, meta: {next_page: cursor}}.
type searchResponse struct {
	Data searchData `json:"data"`
	Meta searchMeta `json:"meta"`
}

type searchData struct {
	Section searchSection `json:"section"`
}

type searchSection struct {
	Payload searchPayload `json:"payload"`
}

type searchPayload struct {
	// Items stays raw so a missing or non-array value degrades to an empty
	// page instead of failing the decode.
	Items json.RawMessage `json:"items"`
}

type searchMeta struct {
	NextPage string `json:"next_page"`
}
