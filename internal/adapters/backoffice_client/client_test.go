package backoffice_client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"realty-backoffice/internal/constants"
	"realty-backoffice/internal/core/domain"
	"realty-backoffice/internal/core/listing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *MemoryTokenStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	tokens := NewMemoryTokenStore()
	return NewClient(srv.URL, 5*time.Second, tokens), tokens
}

func TestOfferLister_List(t *testing.T) {
	t.Run("Should send only non-default parameters and unwrap the page", func(t *testing.T) {
		var gotPath string
		var gotQuery map[string][]string
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query()
			writeJSON(w, http.StatusOK, `{
				"content":[{"id":7,"nomProprietaire":"Dupont","prenomProprietaire":"Jean","typeBien":"VILLA","statutOffre":"VENDU","prixPropose":250000,"surface":120}],
				"totalElements":31,"totalPages":2,"number":1,"size":30}`)
		})

		min := decimal.NewFromInt(100000)
		res, err := NewOfferLister(c).List(context.Background(), listing.Query{
			Page:     2,
			PageSize: 30,
			Type:     "all",
			City:     "Nice",
			PriceMin: &min,
			Sort:     listing.SortCreatedAt,
			Desc:     true,
		})

		require.NoError(t, err)
		assert.Equal(t, "/api/v1/offres/paginated", gotPath)
		assert.Equal(t, map[string][]string{
			"page":    {"1"},
			"ville":   {"Nice"},
			"prixMin": {"100000"},
		}, gotQuery)

		assert.Equal(t, 2, res.Page)
		assert.Equal(t, 2, res.PageCount)
		assert.Equal(t, 31, res.Total)
		require.Len(t, res.Items, 1)
		assert.Equal(t, "Jean Dupont", res.Items[0].OwnerName)
		assert.Equal(t, domain.PropertyVilla, res.Items[0].PropertyType)
		assert.Equal(t, domain.StatusSold, res.Items[0].Status)
	})

	t.Run("Should turn an error response into APIError", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, `{"error":"Validation failed","fields":{"page":"must be a non-negative integer"},"success":false}`)
		})

		_, err := NewOfferLister(c).List(context.Background(), listing.Query{})

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "Validation failed", apiErr.Message)
		assert.Contains(t, apiErr.Fields, "page")
	})

	t.Run("Should fall back to the status text without a JSON body", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := NewDemandLister(c).List(context.Background(), listing.Query{})

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
	})
}

func TestClient_Records(t *testing.T) {
	t.Run("Should fetch all demands for the loaded variant", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/demandes/all", r.URL.Path)
			writeJSON(w, http.StatusOK, `[{"id":1,"nomClient":"Martin","typeDemande":"LOCATION"},{"id":2}]`)
		})

		demands, err := c.FetchAllDemands(context.Background())

		require.NoError(t, err)
		require.Len(t, demands, 2)
		assert.Equal(t, domain.DemandRental, demands[0].DemandType)
		assert.Equal(t, domain.DemandPurchase, demands[1].DemandType)
	})

	t.Run("Should patch the status with its wire code", func(t *testing.T) {
		var body map[string]string
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/api/v1/offres/3/status", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			writeJSON(w, http.StatusOK, `{"id":3,"statutOffre":"RESERVE"}`)
		})

		o, err := c.ChangeOfferStatus(context.Background(), 3, domain.StatusReserved)

		require.NoError(t, err)
		assert.Equal(t, "RESERVE", body["statutOffre"])
		assert.Equal(t, domain.StatusReserved, o.Status)
	})

	t.Run("Should delete without a response body", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(http.StatusNoContent)
		})

		assert.NoError(t, c.DeleteOffer(context.Background(), 3))
	})

	t.Run("Should upload an image as multipart", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			f, fh, err := r.FormFile("image")
			require.NoError(t, err)
			defer f.Close()
			data, _ := io.ReadAll(f)
			assert.Equal(t, "photo.png", fh.Filename)
			assert.Equal(t, "png-bytes", string(data))
			writeJSON(w, http.StatusOK, `{"success":true,"imageUrl":"http://localhost:8080/uploads/2025/01/x.png"}`)
		})

		url, err := c.UploadImage(context.Background(), "photo.png", strings.NewReader("png-bytes"))

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/uploads/2025/01/x.png", url)
	})

	t.Run("Should wrap transport failures", func(t *testing.T) {
		c := NewClient("http://127.0.0.1:1", time.Second, nil)

		_, err := c.GetOffer(context.Background(), 1)

		require.Error(t, err)
		var apiErr *APIError
		assert.NotErrorAs(t, err, &apiErr)
	})
}

func TestAuthContext(t *testing.T) {
	user := `{"id":"6f1c2d1e-0000-4000-8000-000000000002","name":"Ana Lopez","email":"ana@agence.fr","firstName":"Ana","lastName":"Lopez","role":"ADMIN","createdAt":"2025-01-01T00:00:00Z"}`

	t.Run("Should keep the token and send it on later requests", func(t *testing.T) {
		var authHeaders []string
		var traceIDs []string
		c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			authHeaders = append(authHeaders, r.Header.Get("Authorization"))
			traceIDs = append(traceIDs, r.Header.Get(constants.HeaderTraceID))
			switch r.URL.Path {
			case "/api/v1/auth/login":
				writeJSON(w, http.StatusOK, `{"success":true,"token":"tok-1","expiresAt":"2025-01-02T00:00:00Z","user":`+user+`}`)
			case "/api/v1/auth/logout":
				writeJSON(w, http.StatusOK, `{"success":true,"message":"Logged out"}`)
			}
		})
		auth := NewAuthContext(c)

		u, err := auth.Login(context.Background(), "ana@agence.fr", "secret-password")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, u.Role)
		assert.True(t, auth.IsAdmin())
		assert.Equal(t, "tok-1", tokens.Token())

		require.NoError(t, auth.Logout(context.Background()))

		assert.Equal(t, []string{"", "Bearer tok-1"}, authHeaders)
		assert.NotEmpty(t, traceIDs[0])
		assert.Empty(t, tokens.Token())
		assert.False(t, auth.IsAdmin())
	})

	t.Run("Should load the profile when a token already exists", func(t *testing.T) {
		c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/auth/profile", r.URL.Path)
			writeJSON(w, http.StatusOK, user)
		})
		tokens.SetToken("tok-2")

		u, err := NewAuthContext(c).CurrentUser(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "Ana", u.FirstName)
	})

	t.Run("Should forget the token when the profile is unauthorized", func(t *testing.T) {
		c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"error":"Invalid or expired token"}`)
		})
		tokens.SetToken("stale")

		_, err := NewAuthContext(c).CurrentUser(context.Background())

		assert.True(t, IsUnauthorized(err))
		assert.Empty(t, tokens.Token())
	})

	t.Run("Should not call the server without a token", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})

		_, err := NewAuthContext(c).CurrentUser(context.Background())

		assert.True(t, IsUnauthorized(err))
	})
}

func validOfferDraft() domain.OfferDraft {
	return domain.OfferDraft{
		OwnerName:    "Jean Dupont",
		OwnerPhone:   "0601020304",
		Address:      "3 rue de France",
		City:         "Nice",
		PropertyType: domain.PropertyVilla,
		Surface:      120,
		Price:        decimal.NewFromInt(450000),
	}
}

func TestClient_DraftValidation(t *testing.T) {
	newCountingClient := func(t *testing.T) (*Client, *atomic.Int32) {
		var hits atomic.Int32
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			writeJSON(w, http.StatusOK, `{"id":1}`)
		})
		return c, &hits
	}

	t.Run("Should reject an invalid offer draft before any request", func(t *testing.T) {
		c, hits := newCountingClient(t)

		_, createErr := c.CreateOffer(context.Background(), domain.OfferDraft{})
		draft := validOfferDraft()
		draft.Price = decimal.Zero
		_, updateErr := c.UpdateOffer(context.Background(), 4, draft)

		var verr *domain.ValidationError
		require.ErrorAs(t, createErr, &verr)
		assert.Contains(t, verr.Fields, "ownerName")
		require.ErrorAs(t, updateErr, &verr)
		assert.Equal(t, map[string]string{"price": "must be positive"}, verr.Fields)
		assert.Zero(t, hits.Load())
	})

	t.Run("Should reject an invalid demand draft before any request", func(t *testing.T) {
		c, hits := newCountingClient(t)

		_, createErr := c.CreateDemand(context.Background(), domain.DemandDraft{ClientName: "Martin"})
		_, updateErr := c.UpdateDemand(context.Background(), 2, domain.DemandDraft{})

		var verr *domain.ValidationError
		require.ErrorAs(t, createErr, &verr)
		assert.NotContains(t, verr.Fields, "clientName")
		assert.Contains(t, verr.Fields, "budget")
		assert.ErrorAs(t, updateErr, &verr)
		assert.Zero(t, hits.Load())
	})

	t.Run("Should send a valid draft as the full object", func(t *testing.T) {
		var body map[string]interface{}
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/v1/offres/4", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			writeJSON(w, http.StatusOK, `{"id":4,"nomProprietaire":"Dupont","prenomProprietaire":"Jean","typeBien":"VILLA","prixPropose":450000}`)
		})

		o, err := c.UpdateOffer(context.Background(), 4, validOfferDraft())

		require.NoError(t, err)
		assert.Equal(t, int64(4), o.ID)
		assert.Equal(t, "Dupont", body["nomProprietaire"])
		assert.Equal(t, "VILLA", body["typeBien"])
	})
}
