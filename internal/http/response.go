package http

import (
	"encoding/json"
	"log"
	"net/http"
)

type errorBody struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("response encode failed: %v", err)
	}
}

func Fail(w http.ResponseWriter, status int, msg string) {
	if status >= 500 {
		log.Printf("server error %d: %s", status, msg)
	}
	WriteJSON(w, status, errorBody{Message: msg})
}
