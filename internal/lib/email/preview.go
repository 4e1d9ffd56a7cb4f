package email

// PreviewData contains sample template data for local preview/testing.
//
//	PreviewData[TemplateScriptChanged]["Title"] == "Opening scene"
var PreviewData = map[Template]map[string]string{
	TemplateScriptChanged: {
		"Action":   "updated",
		"ID":       "42",
		"Title":    "Opening scene",
		"Position": "1",
		"Status":   "active",
	},
}

// Preview renders a template with its PreviewData.
func Preview(name Template) (string, error) {
	return Render(name, PreviewData[name])
}
