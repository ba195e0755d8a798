package models

// QuestionRequest is the JSON body of POST /query.
type QuestionRequest struct {
	Question string `json:"question" binding:"required"`
}

// AnswerResponse is the success body of POST /query.
type AnswerResponse struct {
	Answer string `json:"answer"`
}

// UploadResponse is the success body of POST /upload.
type UploadResponse struct {
	Message string `json:"message"`
}
