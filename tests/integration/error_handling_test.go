//go:build integration
// +build integration

package integration

import (
	"bytes"
	"net/http"
	"testing"
)

func TestValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		path    string
		payload map[string]interface{}
		field   string
	}{
		{name: "start without user", path: "/game/start", payload: map[string]interface{}{}, field: "userId"},
		{name: "end without user", path: "/game/end", payload: map[string]interface{}{"correct": 1}, field: "userId"},
		{name: "negative tally", path: "/game/end", payload: map[string]interface{}{"userId": "x", "correct": -1}, field: "correct"},
		{name: "bad session id", path: "/game/end", payload: map[string]interface{}{"userId": "x", "sessionId": "nope"}, field: "sessionId"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, tc.path, tc.payload)
			expectStatus(t, resp, http.StatusBadRequest)
			var errResp map[string]interface{}
			decode(t, resp, &errResp)
			if errResp["field"] != tc.field {
				t.Fatalf("expected field %q, got %v", tc.field, errResp["field"])
			}
		})
	}
}

func TestNotFoundErrors(t *testing.T) {
	resp := postJSON(t, "/game/end", map[string]interface{}{"userId": uniqueUser("ghost")})
	expectStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()

	resp = get(t, "/game/sessions/0b7e7d4e-6a1f-4d8e-9a43-1f6a2f0d9c11?userId=ghost")
	expectStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestInvalidJSONPayload(t *testing.T) {
	resp, err := http.Post(baseURL()+"/game/start", "application/json", bytes.NewBufferString("{not json"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	expectStatus(t, resp, http.StatusBadRequest)
	var errResp map[string]interface{}
	decode(t, resp, &errResp)
	if errResp["error"] != "invalid_request" {
		t.Fatalf("unexpected error code: %v", errResp["error"])
	}
}
