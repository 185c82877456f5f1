package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/models"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

func TestClientUsers_DecodesList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"name":"Ana Pérez"},{"id":2,"name":"Luis Soto"}]`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client(), zap.NewNop())
	users, err := client.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ana Pérez", users[0].Name)
}

func TestClientDo_NonSuccessBecomesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("backend exploded"))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client(), zap.NewNop())
	_, err := client.Documents(context.Background())
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "backend exploded")
}

func TestClientDo_ContextCancellationDiscardsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client(), zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Courses(ctx)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}

func TestClientCreateDocument_PostsWizardPayload(t *testing.T) {
	var got dto.CreateDocumentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/coordination-documents", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":77,"status":"draft"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client(), zap.NewNop())
	doc, err := client.CreateDocument(context.Background(), dto.CreateDocumentRequest{
		AreaID:      3,
		StartDate:   "2026-04-01",
		EndDate:     "2026-04-30",
		NucleusIDs:  []int64{1},
		CategoryIDs: []int64{100},
		SubjectsData: map[int64]models.SubjectPlan{
			5: {SubjectName: "Lengua I", CategoryIDs: []int64{100}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), doc.ID)
	assert.Equal(t, models.StatusDraft, doc.Status)
	assert.Equal(t, []int64{1}, got.NucleusIDs)
	require.Contains(t, got.SubjectsData, int64(5))
}

func TestClientDeleteDocument_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/coordination-documents/9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client(), zap.NewNop())
	require.NoError(t, client.DeleteDocument(context.Background(), 9))
}

func TestClientFonts_OptionalAreaFilter(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"Diseño curricular"}]`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client(), zap.NewNop())

	_, err := client.Fonts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, gotQuery)

	area := int64(3)
	fonts, err := client.Fonts(context.Background(), &area)
	require.NoError(t, err)
	assert.Equal(t, "area_id=3", gotQuery)
	require.Len(t, fonts, 1)
}

func TestClientDocumentChat_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coordination-documents/7/chat", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Hola", payload["content"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":"Hola, ¿en qué te ayudo?"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client(), zap.NewNop())
	reply, err := client.DocumentChat(context.Background(), 7, "Hola")
	require.NoError(t, err)
	assert.Equal(t, "Hola, ¿en qué te ayudo?", reply)
}

func TestClientCoordinationStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/course-subjects/4/coordination-status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"course_subject_id":4,"coordinated":true}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.Client(), zap.NewNop())
	status, err := client.CoordinationStatus(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, status.Coordinated)
}
