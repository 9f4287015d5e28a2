package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// pathID parses a positive int64 path variable
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
