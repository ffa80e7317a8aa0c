package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/maxviazov/league-service/pkg/response"
)

// APIV1Prefix is the canonical base path for public HTTP API v1.
// Keep a single source of truth to avoid path drift across handlers and tests.
const APIV1Prefix = "/api/v1"

const msgInvalidBody = "invalid request body"

// bindJSON decodes a JSON object body into dst. An empty body leaves dst zeroed,
// and members that are not JSON strings are dropped, so the validation rules
// report those fields like missing ones. Only unparsable JSON is rejected here.
func bindJSON(c *gin.Context, dst any) bool {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.WriteMessage(c, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	body, err = stringMembers(body)
	if err == nil {
		err = binding.JSON.BindBody(body, dst)
	}
	if err != nil {
		response.WriteMessage(c, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// stringMembers re-encodes a JSON object keeping only its string-valued members.
func stringMembers(body []byte) ([]byte, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return nil, err
	}
	if members == nil {
		members = map[string]json.RawMessage{}
	}
	for k, v := range members {
		if len(v) == 0 || v[0] != '"' {
			delete(members, k)
		}
	}
	return json.Marshal(members)
}

// optionalQuery treats a missing or blank query parameter as absent.
func optionalQuery(c *gin.Context, key string) *string {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return nil
	}
	return &v
}
