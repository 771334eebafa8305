package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"pitchcraft/enrichment"
	"pitchcraft/generator"
	"pitchcraft/llm"
	"pitchcraft/publisher"
	"pitchcraft/store"
)

var fixedNow = time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestServer(t *testing.T, backend llm.Backend) (http.Handler, *store.Store) {
	t.Helper()
	return setupTestServerWith(t, backend, nil)
}

func setupTestServerWith(t *testing.T, backend llm.Backend, pub *publisher.Publisher) (http.Handler, *store.Store) {
	t.Helper()
	st, err := store.Open(store.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clock := func() time.Time { return fixedNow }
	srv, err := New(Deps{
		Generator: generator.New(backend, generator.WithClock(clock)),
		Enricher: enrichment.NewAggregator(enrichment.Sources{
			Social:      enrichment.SimulatedLinkedIn{},
			News:        enrichment.SimulatedNews{},
			Competitors: enrichment.SimulatedCompetitors{Now: clock},
		}, enrichment.WithClock(clock)),
		Store:        st,
		Logger:       zaptest.NewLogger(t),
		Publisher:    pub,
		DefaultStyle: generator.Style{"primary_color": "#123456"},
	})
	require.NoError(t, err)
	return srv.Routes(), st
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func createProject(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/projects", map[string]any{
		"title":       "Proposta Acme",
		"description": "ERP para varejo",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["id"].(string)
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Deps{})
	assert.Error(t, err)

	_, err = New(Deps{Generator: generator.New(nil)})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "PitchCraft AI API", body["service"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Equal(t, false, body["llm_available"])
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get(requestIDHeader))
}

func TestMetrics(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})

	rec := doJSON(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProjects_CreateListGet(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})

	rec := doJSON(t, h, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["projects"])

	id := createProject(t, h)

	rec = doJSON(t, h, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["projects"], 1)

	rec = doJSON(t, h, http.MethodGet, "/api/projects/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Proposta Acme", body["title"])
	assert.Equal(t, store.DefaultProjectType, body["project_type"])
	assert.Equal(t, store.StatusDraft, body["status"])
	assert.Nil(t, body["client_profile"])
	assert.Nil(t, body["market_intelligence"])
	assert.Empty(t, body["presentations"])
	assert.Empty(t, body["objections"])
}

func TestProjects_Validation(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})

	rec := doJSON(t, h, http.MethodPost, "/api/projects", map[string]any{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title is required", decode(t, rec)["error"])

	rec = doJSON(t, h, http.MethodGet, "/api/projects/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/projects/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjects_SetStatus(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})
	id := createProject(t, h)

	rec := doJSON(t, h, http.MethodPatch, "/api/projects/"+id+"/status", map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, store.StatusCompleted, decode(t, rec)["status"])

	rec = doJSON(t, h, http.MethodPatch, "/api/projects/"+id+"/status", map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientProfile_ClassifiesMissingDisc(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})
	id := createProject(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/projects/"+id+"/client-profile", map[string]any{
		"company_name":    "Acme",
		"industry":        "tecnologia",
		"decision_makers": []string{"CEO", "CFO"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	profile := body["client_profile"].(map[string]any)
	assert.Equal(t, string(generator.HeuristicDisc("tecnologia")), profile["disc_profile"])
	assert.Equal(t, []any{"CEO", "CFO"}, profile["decision_makers"])
	assert.Equal(t, "fallback", body["disc_outcome"].(map[string]any)["source"])
}

func TestClientProfile_KeepsProvidedDisc(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})
	id := createProject(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/projects/"+id+"/client-profile", map[string]any{
		"company_name": "Acme",
		"disc_profile": "s",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "S", body["client_profile"].(map[string]any)["disc_profile"])
	assert.Equal(t, "provided", body["disc_outcome"].(map[string]any)["source"])

	rec = doJSON(t, h, http.MethodPost, "/api/projects/"+id+"/client-profile", map[string]any{"disc_profile": "X"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateNarrative_FallsBackWithoutBackend(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})
	id := createProject(t, h)
	doJSON(t, h, http.MethodPost, "/api/projects/"+id+"/client-profile", map[string]any{
		"company_name": "Acme",
		"industry":     "varejo",
		"disc_profile": "D",
	})

	rec := doJSON(t, h, http.MethodPost, "/api/projects/"+id+"/generate-narrative", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, id, body["project_id"])
	assert.Equal(t, "fallback", body["outcome"].(map[string]any)["source"])

	want := generator.DemoNarrative(generator.ClientProfileFacts{CompanyName: "Acme", Industry: "varejo"}, fixedNow)
	narrative := body["narrative"].(map[string]any)
	assert.Equal(t, want.Introduction, narrative["introduction"])
	assert.Equal(t, want.CallToAction, narrative["call_to_action"])
}

func TestGenerateNarrative_WithMockBackend(t *testing.T) {
	h, _ := setupTestServer(t, llm.Mock{})
	id := createProject(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/projects/"+id+"/generate-narrative", map[string]any{"personalize": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "generated", body["outcome"].(map[string]any)["source"])
	assert.Contains(t, body["narrative"].(map[string]any)["call_to_action"], "demonstração")
}

func TestEnrichData_SavesMarketIntelligence(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})
	id := createProject(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/projects/"+id+"/enrich-data", map[string]any{
		"company_name": "Acme",
		"industry":     "varejo",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "success", body["status"])
	enriched := body["enriched_data"].(map[string]any)
	assert.Equal(t, "Acme", enriched["company_name"])
	assert.NotNil(t, enriched["linkedin_data"])
	assert.NotNil(t, enriched["competitor_analysis"])

	rec = doJSON(t, h, http.MethodGet, "/api/projects/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	market := decode(t, rec)["market_intelligence"].(map[string]any)
	assert.NotEmpty(t, market["industry_trends"])
	assert.NotEmpty(t, market["market_opportunities"])
}

func TestObjections_PersistsFallbackList(t *testing.T) {
	h, st := setupTestServer(t, llm.Unavailable{})
	id := createProject(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/projects/"+id+"/objections", map[string]any{"count": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, float64(5), body["total_generated"])
	assert.Equal(t, "fallback", body["outcome"].(map[string]any)["source"])

	saved, err := st.ListObjections(context.Background(), uuid.MustParse(id))
	require.NoError(t, err)
	require.Len(t, saved, 5)
	assert.Equal(t, generator.CategoryPrice, saved[0].Category)

	rec = doJSON(t, h, http.MethodPost, "/api/projects/"+id+"/objections", map[string]any{"count": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPresentations_ComposeFromNarrative(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})
	id := createProject(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/projects/"+id+"/presentations", map[string]any{
		"narrative": map[string]any{
			"introduction":   "Olá",
			"call_to_action": "Vamos conversar",
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.NotContains(t, body, "narrative_outcome")
	presentation := body["presentation"].(map[string]any)
	assert.Equal(t, "Apresentação - Proposta Acme", presentation["title"])
	assert.Equal(t, map[string]any{"primary_color": "#123456"}, presentation["style_config"])

	content := presentation["content"].(map[string]any)
	assert.Equal(t, float64(6), content["total_slides"])
	assert.Equal(t, float64(12), content["estimated_duration"])

	presentationID := presentation["id"].(string)
	rec = doJSON(t, h, http.MethodGet, "/api/presentations/"+presentationID+"/html", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Vamos conversar")
	assert.Contains(t, rec.Body.String(), "#123456")
}

func TestPresentations_GeneratesNarrativeWhenMissing(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})
	id := createProject(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/projects/"+id+"/presentations", map[string]any{"title": "Deck"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "fallback", body["narrative_outcome"].(map[string]any)["source"])
	presentation := body["presentation"].(map[string]any)
	assert.Equal(t, "Deck", presentation["title"])

	rec = doJSON(t, h, http.MethodGet, "/api/presentations/"+presentation["id"].(string), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Deck", decode(t, rec)["title"])
}

func TestPresentations_RawContentWithoutSlidesCannotRender(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})
	id := createProject(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/projects/"+id+"/presentations", map[string]any{
		"content": map[string]any{"notes": "rascunho"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	presentationID := decode(t, rec)["presentation"].(map[string]any)["id"].(string)

	rec = doJSON(t, h, http.MethodGet, "/api/presentations/"+presentationID+"/html", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCRM(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})

	rec := doJSON(t, h, http.MethodGet, "/api/crm/hubspot/123", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "hubspot", body["crm_type"])
	assert.Equal(t, "123", body["contact"].(map[string]any)["contact_id"])

	rec = doJSON(t, h, http.MethodGet, "/api/crm/pipedrive/123", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublish_NotConfigured(t *testing.T) {
	h, _ := setupTestServer(t, llm.Unavailable{})

	rec := doJSON(t, h, http.MethodPost, "/api/presentations/"+uuid.NewString()+"/publish", nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestPublish_WritesDeck(t *testing.T) {
	pub, err := publisher.New(publisher.Config{OutDir: t.TempDir()}, nil, nil)
	require.NoError(t, err)
	h, _ := setupTestServerWith(t, llm.Unavailable{}, pub)
	id := createProject(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/projects/"+id+"/presentations", map[string]any{"title": "Deck Acme"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	presentationID := decode(t, rec)["presentation"].(map[string]any)["id"].(string)

	rec = doJSON(t, h, http.MethodPost, "/api/presentations/"+presentationID+"/publish", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	published := decode(t, rec)["published"].(map[string]any)
	assert.FileExists(t, published["html_path"].(string))
	assert.Contains(t, published["html_path"], presentationID)
	assert.NotEmpty(t, published["digest"])

	rec = doJSON(t, h, http.MethodPost, "/api/presentations/"+uuid.NewString()+"/publish", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
