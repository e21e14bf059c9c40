package response

import (
	"net/http"

	"github.com/travelcraft/travelcraft/core/handler"
)

// Error propagates err to the router's error handler.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
