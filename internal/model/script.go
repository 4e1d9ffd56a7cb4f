// Package model holds the types that cross layer boundaries: the persisted
// Script row and the JSON envelope every endpoint answers with.
package model

// Script is a row of the scripts table.
type Script struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Position string `json:"position"`
	Status   string `json:"status"`
}

// ScriptColumns lists the scripts table columns in scan order.
var ScriptColumns = []string{"id", "title", "position", "status"}
