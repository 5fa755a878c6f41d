package validator

// checkStringFormat validates the format keyword. Only date-time is supported;
// other formats are reported to the diagnostic sink and accepted.
func checkStringFormat(node map[string]any, instance JSONDocument, o options) error {
	s, ok := instance.(string)
	if !ok {
		return nil
	}
	format, ok := node["format"].(string)
	if !ok {
		return nil
	}

	if format != "date-time" {
		o.diag.Warn("unsupported format, skipping", "format", format)
		return nil
	}

	if _, err := o.dateTime(s); err != nil {
		return &WrongFormatError{Data: s, Format: format}
	}
	return nil
}
