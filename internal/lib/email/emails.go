package email

import (
	"fmt"
	"strconv"

	"github.com/deppfellow/scripts/internal/model"
)

// SendScriptChangedEmail tells the recipient a script was created, updated
// or deleted. action is the past-tense verb used in the subject line.
func (c *Client) SendScriptChangedEmail(to, action string, script model.Script) error {
	data := map[string]string{
		"Action":   action,
		"ID":       strconv.FormatInt(script.ID, 10),
		"Title":    script.Title,
		"Position": script.Position,
		"Status":   script.Status,
	}

	return c.SendEmail(
		to,
		fmt.Sprintf("Script #%d %s", script.ID, action),
		TemplateScriptChanged,
		data,
	)
}
