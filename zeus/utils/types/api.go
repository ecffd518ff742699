// zeus/utils/types/api.go
package types

type UploadResponse struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type TranslateRequest struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

type TranslateResponse struct {
	Translated string `json:"translated"`
}

// AnalyzeRequest is the JSON form of an analysis request. Multipart
// requests carry the same fields as form values plus a "file" part.
type AnalyzeRequest struct {
	Mode        string   `json:"mode"`
	Text        string   `json:"text"`
	ImageURL    string   `json:"image_url"`
	Temperature *float64 `json:"temperature,omitempty"`
}
