package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mealview/internal/viewer"
)

type stateResponse struct {
	viewer.State
	CanLoadAnother bool `json:"canLoadAnother"`
}

func newStateResponse(s viewer.State) stateResponse {
	return stateResponse{State: s, CanLoadAnother: s.CanLoadAnother()}
}

// GetState handles GET /api/state. With ?wait=1 it waits briefly for an
// in-flight fetch to settle.
func (h *Handler) GetState(c *gin.Context) {
	v := viewerFrom(c)

	var s viewer.State
	if wait, _ := strconv.ParseBool(c.Query("wait")); wait {
		s = h.settle(c.Request.Context(), v)
	} else {
		s = v.State()
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, newStateResponse(s))
}

// PostReloadAPI handles POST /api/reload. It answers 202 when a fetch started
// and 200 with accepted=false when the request was ignored.
func (h *Handler) PostReloadAPI(c *gin.Context) {
	v := viewerFrom(c)
	accepted := v.LoadAnother()

	status := http.StatusOK
	if accepted {
		status = http.StatusAccepted
	}
	c.JSON(status, gin.H{"accepted": accepted, "state": newStateResponse(v.State())})
}
