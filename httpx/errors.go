package httpx

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	"github.com/truthtechno/lockerroom-evals/log"
	"github.com/truthtechno/lockerroom-evals/model"
)

type errorBody struct {
	Error   string             `json:"error"`
	Details []model.FieldError `json:"details,omitempty"`
}

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.Errorf("%s: %s", code, err)
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, errorBody{Error: http.StatusText(http.StatusInternalServerError)})
}

// Will log a debug message, and send an HTTP response with status 404
func LogNotFound(w http.ResponseWriter, r *http.Request, code string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, errorBody{Error: "not found"})
}

// Will log an error code at the given level, and send
// an HTTP response with status and default text
func LogStatus(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string) {
	log.Log(level, code)
	render.Status(r, status)
	render.JSON(w, r, errorBody{Error: http.StatusText(status)})
}

// Will log an error code and message at the given level,
// and send an HTTP response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	render.Status(r, status)
	render.JSON(w, r, errorBody{Error: errMsg})
}

// ValidationFailed renders a 422 whose details name every offending
// payload path, so clients can highlight fields instead of guessing.
func ValidationFailed(w http.ResponseWriter, r *http.Request, code string, verr *model.ValidationError) {
	log.Debugf("%s: %s", code, verr.Msg)
	render.Status(r, http.StatusUnprocessableEntity)
	render.JSON(w, r, errorBody{Error: verr.Msg, Details: verr.Fields})
}
