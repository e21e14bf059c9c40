package chat_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	chatapp "github.com/travelcraft/travelcraft/app/chat"
	"github.com/travelcraft/travelcraft/core/router"
	"github.com/travelcraft/travelcraft/pkg/chat"
)

type stubCompleter struct {
	answer string
	err    error
}

func (s stubCompleter) Complete(context.Context, string) (string, error) {
	return s.answer, s.err
}

func ask(reg chat.Registry, body string) *httptest.ResponseRecorder {
	r := router.New(router.NewContext)
	chatapp.NewHandler(reg, nil).Register(r)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAsk(t *testing.T) {
	t.Parallel()

	reg := chat.Registry{
		chat.ProviderGemini:   stubCompleter{answer: "Try Porto."},
		chat.ProviderDeepSeek: stubCompleter{err: errors.New("upstream 500")},
		chat.ProviderVenice:   nil,
	}

	cases := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"default provider", `{"message":"Where to?"}`, http.StatusOK, `"response":"Try Porto."`},
		{"missing message", `{"provider":"gemini"}`, http.StatusBadRequest, "Message is required"},
		{"unknown provider", `{"message":"hi","provider":"eliza"}`, http.StatusBadRequest, "Invalid provider"},
		{"disabled provider", `{"message":"hi","provider":"venice"}`, http.StatusServiceUnavailable, "not configured"},
		{"upstream failure", `{"message":"hi","provider":"deepseek"}`, http.StatusBadGateway, "Chat provider request failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := ask(reg, tc.body)
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), tc.want)
		})
	}
}
