package dto

// FileContentRequest carries file or config content.
type FileContentRequest struct {
	Content string `json:"content"`
}

// FileCreatedResponse reports an auto-named file creation.
type FileCreatedResponse struct {
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

// FileContentResponse returns a file with its content.
type FileContentResponse struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}
