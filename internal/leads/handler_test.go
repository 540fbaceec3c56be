package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLead_Success(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, nil)

	reqBody := CreateLeadRequest{
		Name:         "Maria Lopez",
		Email:        "maria@example.com",
		Phone:        "9195551234",
		Message:      "Need help with a green card application",
		PracticeArea: "immigration",
		Source:       "website",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var lead Lead
	require.NoError(t, json.NewDecoder(w.Body).Decode(&lead))
	assert.Equal(t, reqBody.Name, lead.Name)
	assert.Equal(t, reqBody.Email, lead.Email)
	assert.Equal(t, StatusNew, lead.Status)
	assert.NotEmpty(t, lead.ID)
}

func TestCreateLead_InvalidRequest(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), nil)

	body, _ := json.Marshal(CreateLeadRequest{Name: ""})
	req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateLead_MalformedBody(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), nil)

	req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()

	handler.CreateLead(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLead(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, nil)

	created, err := repo.Create(context.Background(), &CreateLeadRequest{
		Name:  "Maria Lopez",
		Phone: "9195551234",
	})
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Get("/leads/{id}", handler.GetLead)

	req := httptest.NewRequest(http.MethodGet, "/leads/"+created.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var lead Lead
	require.NoError(t, json.NewDecoder(w.Body).Decode(&lead))
	assert.Equal(t, created.ID, lead.ID)
}

func TestGetLead_NotFound(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), nil)

	router := chi.NewRouter()
	router.Get("/leads/{id}", handler.GetLead)

	req := httptest.NewRequest(http.MethodGet, "/leads/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
