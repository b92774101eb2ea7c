package dto

type CreateStoryRequest struct {
	// Media имя файла, полученное от /api/upload
	Media string `json:"media"`
	Text  string `json:"text"`
}
