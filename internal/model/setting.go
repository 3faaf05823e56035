package model

// Setting is a process-wide key/value pair (theme, dark mode, ...).
type Setting struct {
	ID    uint64 `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}
