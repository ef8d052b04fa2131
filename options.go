package vobject

// DecodeOptions holds configuration for decoding vObject streams.
type DecodeOptions struct {
	// Character handling
	charsetLabel string // explicit source charset; empty means sniff

	// Error handling
	strict bool // fail on structural problems instead of warning
}

// defaultOptions returns the default decode options.
func defaultOptions() DecodeOptions {
	return DecodeOptions{
		charsetLabel: "",
		strict:       false,
	}
}

// clone creates a copy of DecodeOptions.
func (o DecodeOptions) clone() DecodeOptions {
	return DecodeOptions{
		charsetLabel: o.charsetLabel,
		strict:       o.strict,
	}
}
