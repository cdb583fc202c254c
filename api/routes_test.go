package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aakanni/portfolio-backend/models"
	"github.com/aakanni/portfolio-backend/services"
)

type fakeAboutStore struct {
	about *models.About
}

func (s *fakeAboutStore) Latest() (*models.About, error) {
	return s.about, nil
}

func (s *fakeAboutStore) Upsert(incoming *models.About) (*models.About, error) {
	s.about = incoming
	return incoming, nil
}

type fakeMailer struct {
	sent int
}

func (m *fakeMailer) SendContactMessage(name, email, subject, message string) error {
	m.sent++
	return nil
}

// newTestRouter wires the full route tree onto in-memory stores, with one
// token bucket of the given burst per limiter.
func newTestRouter(t *testing.T, authBurst, apiBurst int) http.Handler {
	t.Helper()

	handlers := &routeHandlers{
		projectHandler:     newProjectHandler(&fakeProjectStore{}),
		certificateHandler: newCertificateHandler(&fakeCertificateStore{certificates: []models.Certificate{sampleCertificate("cert", "Go")}}),
		publicationHandler: newPublicationHandler(&fakePublicationStore{publications: []models.Publication{samplePublication("paper", "consensus")}}),
		blogPostHandler:    newBlogPostHandler(newFakeBlogStore()),
		aboutHandler:       newAboutHandler(&fakeAboutStore{}),
		authHandler:        newAuthHandler(&fakeUserStore{}, services.NewTokenService("secret", time.Hour)),
		contactHandler:     newContactHandler(&fakeMailer{}),
	}
	auth := newAuthMiddleware(services.NewTokenService("secret", time.Hour))

	r := chi.NewRouter()
	setupRoutes(r, handlers,
		auth,
		newIPRateLimiter(time.Minute, apiBurst),
		newIPRateLimiter(time.Minute, authBurst),
		t.TempDir(),
		time.Now())
	return r
}

func doFrom(router http.Handler, ip, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(method, target, nil)
	r.RemoteAddr = ip + ":51000"
	router.ServeHTTP(w, r)
	return w
}

// The credential endpoints and the rest of the API draw from separate
// budgets: draining one must leave the other untouched.
func TestRateLimiterBudgetsAreDisjoint(t *testing.T) {
	router := newTestRouter(t, 1, 1)
	ip := "203.0.113.10"

	if w := doFrom(router, ip, "GET", "/api/health"); w.Code != http.StatusOK {
		t.Fatalf("first health status = %d", w.Code)
	}
	if w := doFrom(router, ip, "GET", "/api/health"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second health status = %d, want 429", w.Code)
	}

	// The general budget is gone, but login runs on the strict one.
	if w := doFrom(router, ip, "POST", "/api/auth/login"); w.Code == http.StatusTooManyRequests {
		t.Fatal("login consumed the general budget")
	}
	if w := doFrom(router, ip, "POST", "/api/auth/login"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second login status = %d, want 429", w.Code)
	}
}

func TestLoginDoesNotConsumeGeneralBudget(t *testing.T) {
	router := newTestRouter(t, 5, 1)
	ip := "203.0.113.11"

	// Burn the strict budget without touching the general one.
	for i := 0; i < 5; i++ {
		if w := doFrom(router, ip, "POST", "/api/auth/login"); w.Code == http.StatusTooManyRequests {
			t.Fatalf("login %d rate limited early", i+1)
		}
	}
	if w := doFrom(router, ip, "POST", "/api/auth/login"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("sixth login status = %d, want 429", w.Code)
	}

	if w := doFrom(router, ip, "GET", "/api/health"); w.Code != http.StatusOK {
		t.Fatalf("health status = %d, want 200 with a full general budget", w.Code)
	}
}

func TestRoutesResolveSkillAndTagListings(t *testing.T) {
	router := newTestRouter(t, 5, 100)
	ip := "203.0.113.12"

	if w := doFrom(router, ip, "GET", "/api/certificates/skill/go"); w.Code != http.StatusOK {
		t.Errorf("certificates by skill status = %d, body = %s", w.Code, w.Body.String())
	}
	if w := doFrom(router, ip, "GET", "/api/publications/tag/consensus"); w.Code != http.StatusOK {
		t.Errorf("publications by tag status = %d, body = %s", w.Code, w.Body.String())
	}
}
