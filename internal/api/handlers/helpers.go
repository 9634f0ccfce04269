package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/proftrack/internal/api/middleware"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/pkg/utils"
	"github.com/pratik-mahalle/proftrack/internal/pkg/validator"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a size-limited JSON body into dst and validates it
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return errors.BadRequest("Request body is empty")
		}
		return errors.BadRequest("Invalid request body")
	}
	return validator.Check(dst)
}

// pathID parses the {id} URL parameter
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.BadRequest("Invalid id")
	}
	return id, nil
}

// requireUser returns the caller's id. The gate guarantees a principal on
// every route that calls this, so a miss is a wiring fault.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthenticated("Authentication required"))
		return 0, false
	}
	return userID, true
}

// writeServiceError logs unexpected failures and writes err to the client
func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error, msg string) {
	if appErr, ok := errors.AsAppError(err); ok && appErr.StatusCode < http.StatusInternalServerError {
		utils.WriteError(w, appErr)
		return
	}
	log.ErrorWithErr(err, msg)
	utils.WriteErrorFrom(w, err)
}

func queryInt64(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 1 {
		return nil, errors.BadRequest("Invalid " + key)
	}
	return &v, nil
}
