package models

type Quote struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author,omitempty"`
}
