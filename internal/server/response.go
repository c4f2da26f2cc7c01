package server

import (
	"github.com/emrgen/peps/internal/model"
)

const createdFormat = "2006-01-02"

type AuthorResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type PEPResponse struct {
	Number        int              `json:"number"`
	Title         string           `json:"title"`
	Status        string           `json:"status"`
	Type          string           `json:"type"`
	Topic         string           `json:"topic"`
	Created       *string          `json:"created"`
	PythonVersion *string          `json:"python_version"`
	URL           string           `json:"url"`
	Authors       []AuthorResponse `json:"authors"`
}

type PEPListResponse struct {
	PEPs  []PEPResponse `json:"peps"`
	Total int64         `json:"total"`
	Skip  int           `json:"skip"`
	Limit int           `json:"limit"`
}

type SearchResponse struct {
	PEPs  []PEPResponse `json:"peps"`
	Total int           `json:"total"`
	Query string        `json:"query"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

func pepResponse(pep *model.PEP) PEPResponse {
	res := PEPResponse{
		Number:        pep.Number,
		Title:         pep.Title,
		Status:        pep.Status,
		Type:          pep.Type,
		Topic:         pep.Topic,
		PythonVersion: pep.PythonVersion,
		URL:           pep.URL,
		Authors:       make([]AuthorResponse, 0, len(pep.Authors)),
	}

	if pep.Created != nil {
		created := pep.Created.Format(createdFormat)
		res.Created = &created
	}

	for _, author := range pep.Authors {
		res.Authors = append(res.Authors, AuthorResponse{
			ID:   author.ID,
			Name: author.Name,
		})
	}

	return res
}

func pepResponses(peps []*model.PEP) []PEPResponse {
	res := make([]PEPResponse, 0, len(peps))
	for _, pep := range peps {
		res = append(res, pepResponse(pep))
	}

	return res
}
