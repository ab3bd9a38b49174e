package model

import "github.com/mitchellh/mapstructure"

// Envelope is the decoded body of a platform response:
// {"status": "success", "message": "...", "data": ..., "meta": {"pagination": ...}}.
type Envelope map[string]any

func (e Envelope) IsSuccess() bool {
	s, _ := e["status"].(string)
	return s == "success"
}

func (e Envelope) Message() string {
	s, _ := e["message"].(string)
	return s
}

// Data returns the data member, or the whole body when there is none.
func (e Envelope) Data() any {
	if d, ok := e["data"]; ok {
		return d
	}
	return map[string]any(e)
}

// Pagination returns meta.pagination, or nil.
func (e Envelope) Pagination() *Pagination {
	meta, ok := e["meta"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := meta["pagination"].(map[string]any)
	if !ok {
		return nil
	}
	var p Pagination
	if err := mapstructure.WeakDecode(raw, &p); err != nil {
		return nil
	}
	return &p
}

// Decode copies the data member into out, which must be a pointer.
func (e Envelope) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(e.Data())
}

type Pagination struct {
	CurrentPage int `json:"current_page" mapstructure:"current_page"`
	PerPage     int `json:"per_page" mapstructure:"per_page"`
	Total       int `json:"total" mapstructure:"total"`
	LastPage    int `json:"last_page" mapstructure:"last_page"`
}

func (p *Pagination) HasMore() bool {
	return p != nil && p.CurrentPage < p.LastPage
}
