package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shunt/internal/engine"
)

func run(t *testing.T, expr string) *engine.Result {
	t.Helper()
	res, err := engine.Run(expr, engine.Postfix)
	require.NoError(t, err)
	return res
}

func TestHTTPAdvisorComment(t *testing.T) {
	var seen Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, err := uuid.Parse(r.Header.Get("X-Request-Id"))
		assert.NoError(t, err)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&seen))
		_, _ = w.Write([]byte(`{"comment": "  operands pass straight through  "}`))
	}))
	defer srv.Close()

	adv := NewHTTP(srv.URL, WithClient(srv.Client()))
	got, err := adv.Comment(context.Background(), Request{Expression: "A", StepIndex: 2, Title: "Output 'A'"})
	require.NoError(t, err)
	assert.Equal(t, "operands pass straight through", got)
	assert.Equal(t, 2, seen.StepIndex)
	assert.Equal(t, "Output 'A'", seen.Title)
}

func TestHTTPAdvisorErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fail":
			http.Error(w, "nope", http.StatusBadGateway)
		case "/garbage":
			_, _ = w.Write([]byte("not json"))
		case "/slow":
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL + "/fail").Comment(context.Background(), Request{})
	assert.ErrorContains(t, err, "502")

	_, err = NewHTTP(srv.URL + "/garbage").Comment(context.Background(), Request{})
	assert.ErrorContains(t, err, "decode")

	_, err = NewHTTP(srv.URL+"/slow", WithTimeout(20*time.Millisecond)).Comment(context.Background(), Request{})
	assert.Error(t, err)
}

func TestAnnotateCollectsWhatSucceeds(t *testing.T) {
	res := run(t, "A + B")
	adv := Func(func(_ context.Context, req Request) (string, error) {
		switch {
		case req.StepIndex == 1:
			return "", errors.New("flaky")
		case req.StepIndex == 2:
			return "", nil
		default:
			return "about " + req.Title, nil
		}
	})

	got := Annotate(context.Background(), adv, "A + B", res, AnnotateOptions{Jobs: 3})
	assert.Len(t, got, len(res.Steps)-2)
	assert.NotContains(t, got, 1)
	assert.NotContains(t, got, 2)
	assert.Equal(t, "about Start", got[0])
	assert.Equal(t, "about Finished", got[len(res.Steps)-1])
}

func TestAnnotateDoesNotMutateSteps(t *testing.T) {
	res := run(t, "A * ( B - C )")
	before := make([]engine.Step, len(res.Steps))
	copy(before, res.Steps)
	Annotate(context.Background(), Func(func(context.Context, Request) (string, error) {
		return "x", nil
	}), "A * ( B - C )", res, AnnotateOptions{})
	assert.Equal(t, before, res.Steps)
}

func TestAnnotateMaxSteps(t *testing.T) {
	res := run(t, "A + B")
	var calls atomic.Int32
	got := Annotate(context.Background(), Func(func(_ context.Context, req Request) (string, error) {
		calls.Add(1)
		assert.Equal(t, "POSTFIX", req.Mode)
		return strings.ToUpper(req.Title), nil
	}), "A + B", res, AnnotateOptions{MaxSteps: 3})
	assert.EqualValues(t, 3, calls.Load())
	assert.Len(t, got, 3)
}

func TestAnnotateStopsWhenContextDone(t *testing.T) {
	res := run(t, "A + B")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32
	got := Annotate(ctx, Func(func(context.Context, Request) (string, error) {
		calls.Add(1)
		return "x", nil
	}), "A + B", res, AnnotateOptions{Jobs: 1})
	assert.Empty(t, got)
	assert.Zero(t, calls.Load())
}

func TestAnnotateNilAdvisor(t *testing.T) {
	assert.Empty(t, Annotate(context.Background(), nil, "A", run(t, "A"), AnnotateOptions{}))
}
