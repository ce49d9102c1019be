package core

import (
	"encoding/json"
	"net/http"
)

// JsonBasic contains the basic response fields all JSON responses carry.
type JsonBasic struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JsonWithData is used for structured JSON responses with data.
type JsonWithData struct {
	JsonBasic
	Data interface{} `json:"data,omitempty"`
}

var errorNotFound = JsonBasic{
	Status:  http.StatusNotFound,
	Code:    "error_not_found",
	Message: "Requested resource not found",
}

func writeJsonError(w http.ResponseWriter, resp JsonBasic) {
	setHeaders(w, headersJson)
	w.WriteHeader(resp.Status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeJsonWithData(w http.ResponseWriter, resp JsonWithData) {
	setHeaders(w, headersJson)
	w.WriteHeader(resp.Status)
	_ = json.NewEncoder(w).Encode(resp)
}
