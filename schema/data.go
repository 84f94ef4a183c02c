package schema

// KeyEvent is one key transition sent by a remote pad.
type KeyEvent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
	Down bool   `json:"down"`
}
