package resp

import (
	"encoding/json"
	"net/http"
)

// WriteJSONResponse пишет статус и JSON тело ответа
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
