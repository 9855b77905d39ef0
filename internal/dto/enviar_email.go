package dto

// EmailAttachment is one file carried by an e-mail message, base64-encoded.
type EmailAttachment struct {
	Filename string `json:"filename"`
	Base64   string `json:"base64"`
}

// EmailContext feeds the template variables of the mail worker.
type EmailContext struct {
	Name string `json:"name"`
}

// EnviarEmail is the message handed to the asynchronous mail channel. The
// field layout matches what the mail worker consumes.
type EnviarEmail struct {
	Subject     string            `json:"subject"`
	To          string            `json:"to"`
	Template    string            `json:"template"`
	Context     EmailContext      `json:"context"`
	Attachments []EmailAttachment `json:"attachments"`
}
