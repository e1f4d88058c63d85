package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// errorBody はエラーレスポンスの統一形。クライアントは error キーだけ見ればよい。
type errorBody struct {
	Error string `json:"error"`
}

// RespondJSON はペイロードをJSONとして書き出す。nil のときはステータスだけ返す。
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode json response: %v", err)
	}
}

// RespondError はエラーメッセージを統一形で返す。
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, errorBody{Error: message})
}
