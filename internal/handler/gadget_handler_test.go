package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// issueApiToken registers a user, logs in and trades the access token for an
// API token, which is what the gadget routes require.
func issueApiToken(t *testing.T, r *gin.Engine) string {
	accessToken := registerAndLogin(t, r, "agent@x.com", "secret1")

	w := doJSON(r, http.MethodPost, "/api/users/generate-token", nil, accessToken)
	require.Equal(t, http.StatusOK, w.Code)

	return parseBody(t, w)["apiToken"].(string)
}

// createGadget registers a gadget and returns its id.
func createGadget(t *testing.T, r *gin.Engine, apiToken string) string {
	w := doJSON(r, http.MethodPost, "/api/gadgets", nil, apiToken)
	require.Equal(t, http.StatusCreated, w.Code)

	data := parseBody(t, w)["data"].(map[string]interface{})
	return data["id"].(string)
}

func TestGadgetRoutes_RequireApiToken(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/gadgets", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/gadgets", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterGadgetHandler(t *testing.T) {
	r := setupTestServer(t)
	apiToken := issueApiToken(t, r)

	w := doJSON(r, http.MethodPost, "/api/gadgets", nil, apiToken)
	assert.Equal(t, http.StatusCreated, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["id"])
	assert.Contains(t, data["info"], "success probability")
}

func TestFetchGadgetsHandler(t *testing.T) {
	r := setupTestServer(t)
	apiToken := issueApiToken(t, r)

	createGadget(t, r, apiToken)
	createGadget(t, r, apiToken)

	w := doJSON(r, http.MethodGet, "/api/gadgets", nil, apiToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, parseBody(t, w)["data"], 2)

	// All fresh gadgets are Available.
	w = doJSON(r, http.MethodGet, "/api/gadgets?status=Available", nil, apiToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, parseBody(t, w)["data"], 2)

	w = doJSON(r, http.MethodGet, "/api/gadgets?status=Destroyed", nil, apiToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, parseBody(t, w)["data"])

	// Unknown status values are rejected before they reach the service.
	w = doJSON(r, http.MethodGet, "/api/gadgets?status=Broken", nil, apiToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteGadgetHandler(t *testing.T) {
	r := setupTestServer(t)
	apiToken := issueApiToken(t, r)

	id := createGadget(t, r, apiToken)

	// The view model hides the generated name, so rename the gadget to a
	// known value before deleting by name.
	w := doJSON(r, http.MethodPatch, "/api/gadgets", gin.H{"id": id, "name": "KnownName"}, apiToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/gadgets", gin.H{"name": "KnownName"}, apiToken)
	assert.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, true, body["decommissioned"])

	// Decommissioned gadgets render their decommission date.
	w = doJSON(r, http.MethodGet, "/api/gadgets?status=Decommissioned", nil, apiToken)
	require.Equal(t, http.StatusOK, w.Code)
	views := parseBody(t, w)["data"].([]interface{})
	require.Len(t, views, 1)
	info := views[0].(map[string]interface{})["info"].(string)
	assert.Contains(t, info, "KnownName was decommissioned at")

	// Unknown names report decommissioned=false without failing.
	w = doJSON(r, http.MethodDelete, "/api/gadgets", gin.H{"name": "NoSuchGadget"}, apiToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, parseBody(t, w)["decommissioned"])
}

func TestPatchGadgetHandler(t *testing.T) {
	r := setupTestServer(t)
	apiToken := issueApiToken(t, r)

	id := createGadget(t, r, apiToken)

	w := doJSON(r, http.MethodPatch, "/api/gadgets", gin.H{"id": id, "status": "Deployed"}, apiToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// Neither name nor status: rejected.
	w = doJSON(r, http.MethodPatch, "/api/gadgets", gin.H{"id": id}, apiToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown status: binding failure.
	w = doJSON(r, http.MethodPatch, "/api/gadgets", gin.H{"id": id, "status": "Broken"}, apiToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown id: not found.
	w = doJSON(r, http.MethodPatch, "/api/gadgets", gin.H{"id": uuid.NewString(), "status": "Deployed"}, apiToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelfDestructHandler(t *testing.T) {
	r := setupTestServer(t)
	apiToken := issueApiToken(t, r)

	id := createGadget(t, r, apiToken)

	w := doJSON(r, http.MethodPost, "/api/gadgets/"+id+"/self-destruct", nil, apiToken)
	assert.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, true, body["success"])
	firstCode := body["confirmationCode"].(string)
	assert.Regexp(t, `^[0-9A-F]{8}$`, firstCode)

	// Destroyed is terminal: repeating the sequence conflicts and mints no
	// new confirmation code.
	w = doJSON(r, http.MethodPost, "/api/gadgets/"+id+"/self-destruct", nil, apiToken)
	assert.Equal(t, http.StatusConflict, w.Code)
	body = parseBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body, "confirmationCode")

	// Unknown gadget: not found.
	w = doJSON(r, http.MethodPost, "/api/gadgets/"+uuid.NewString()+"/self-destruct", nil, apiToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
