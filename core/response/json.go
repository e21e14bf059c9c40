package response

import (
	"encoding/json"
	"net/http"

	"github.com/travelcraft/travelcraft/core/handler"
)

// JSON encodes v with 200 OK.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// Created encodes v with 201 Created.
func Created(v any) handler.Response {
	return JSONWithStatus(v, http.StatusCreated)
}

// JSONWithStatus encodes v straight into the writer with a custom status.
// A zero status resolves to 204 for nil payloads and 200 otherwise.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if status == 0 {
			status = http.StatusOK
			if v == nil {
				status = http.StatusNoContent
			}
		}

		w.WriteHeader(status)

		switch status {
		case http.StatusNoContent, http.StatusNotModified:
			return nil
		}

		return json.NewEncoder(w).Encode(v)
	}
}

// Message is the {"message": "..."} envelope used by the auth and contact routes.
func Message(msg string) handler.Response {
	return JSON(map[string]string{"message": msg})
}
