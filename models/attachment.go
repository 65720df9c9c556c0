package models

// Attachment is an uploaded image that accompanies a chat message.
type Attachment struct {
	// Filename is the name the client sent; used only for logging and
	// to derive an extension for staged objects.
	Filename string

	// ContentType is the MIME type, e.g. "image/png".
	ContentType string

	// Data holds the raw bytes of the upload.
	Data []byte
}

// Size returns the payload length in bytes.
func (a *Attachment) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Data)
}
