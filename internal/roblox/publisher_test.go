package roblox

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treeforge/merchant/internal/transport"
	"github.com/treeforge/merchant/pkg/catalog"
	"github.com/treeforge/merchant/pkg/errors"
)

const confirmFragment = `
<div class="modal">
  <div id="DeveloperProductStatus" class="status-confirm">
    Successfully created Developer Product <b>4042</b>.
  </div>
</div>`

const duplicateFragment = `
<div id="DeveloperProductStatus" class="status-error">
  A Developer Product with this name already exists.
</div>`

func newPublisher(t *testing.T, handler http.Handler) *Publisher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	session := transport.NewSession("test-cookie")
	return NewPublisher(session, WithBaseURLs(srv.URL, srv.URL, srv.URL))
}

func TestCreateProduct(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	publisher := newPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(confirmFragment))
	}))

	e := &catalog.Entry{
		Name:        "Sword of Gold",
		Description: catalog.String("shiny"),
		Price:       catalog.Int64(50),
		ImageID:     catalog.Int64(9000),
	}
	id, err := publisher.CreateProduct(context.Background(), 77, e)
	require.NoError(t, err)

	assert.Equal(t, int64(4042), id)
	assert.Equal(t, "/places/developerproducts/add", gotPath)
	assert.Equal(t, "77", gotQuery["universeId"][0])
	assert.Equal(t, "Sword of Gold", gotQuery["name"][0])
	assert.Equal(t, "50", gotQuery["priceInRobux"][0])
	assert.Equal(t, "shiny", gotQuery["description"][0])
	assert.Equal(t, "9000", gotQuery["imageAssetId"][0])
}

func TestCreateProductOmitsAbsentImage(t *testing.T) {
	var gotQuery map[string][]string
	publisher := newPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(confirmFragment))
	}))

	_, err := publisher.CreateProduct(context.Background(), 77, &catalog.Entry{Name: "Plain"})
	require.NoError(t, err)
	assert.NotContains(t, gotQuery, "imageAssetId")
	assert.Equal(t, "0", gotQuery["priceInRobux"][0], "absent price posts as 0 (not for sale)")
}

func TestCreateProductDuplicateName(t *testing.T) {
	publisher := newPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(duplicateFragment))
	}))

	_, err := publisher.CreateProduct(context.Background(), 77, &catalog.Entry{Name: "Sword"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDuplicateName)
	assert.Contains(t, err.Error(), "names must be unique", "the duplicate rejection gets the clearer label")
}

func TestCreateProductPlatformErrorEnvelope(t *testing.T) {
	publisher := newPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"code":4,"message":"Universe not found"}]}`))
	}))

	_, err := publisher.CreateProduct(context.Background(), 77, &catalog.Entry{Name: "Sword"})
	require.Error(t, err)

	var platformErr *errors.PlatformError
	require.ErrorAs(t, err, &platformErr)
	assert.Equal(t, 4, platformErr.Code)
	assert.Equal(t, "Universe not found", platformErr.Message)
}

func TestCreateProductUnknownResponse(t *testing.T) {
	publisher := newPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// An expired session serves the login page instead of the form result.
		_, _ = w.Write([]byte(`<html><body><form id="login">...</form></body></html>`))
	}))

	_, err := publisher.CreateProduct(context.Background(), 77, &catalog.Entry{Name: "Sword"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownResponse)
	assert.Contains(t, err.Error(), "session cookie")
}

func TestUpdateProduct(t *testing.T) {
	var gotPath, gotBody string
	publisher := newPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(`{"isValid":true,"data":{},"error":""}`))
	}))

	e := &catalog.Entry{
		Name:     "Sword of Gold",
		Price:    catalog.Int64(75),
		ImageID:  catalog.Int64(9000),
		RemoteID: catalog.Int64(4042),
	}
	require.NoError(t, publisher.UpdateProduct(context.Background(), 77, e))

	assert.Equal(t, "/v1/universes/77/developerproducts/4042/update", gotPath)
	assert.JSONEq(t, `{"Name":"Sword of Gold","Description":"","PriceInRobux":75,"IconImageAssetId":9000}`, gotBody)
}

func TestUpdateProductInvalid(t *testing.T) {
	publisher := newPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"isValid":false,"data":null,"error":"Price exceeds maximum"}`))
	}))

	err := publisher.UpdateProduct(context.Background(), 77, &catalog.Entry{Name: "Sword", RemoteID: catalog.Int64(1)})
	require.Error(t, err)

	var platformErr *errors.PlatformError
	require.ErrorAs(t, err, &platformErr)
	assert.Equal(t, "Price exceeds maximum", platformErr.Message)
}

func TestUpdateProductEmptyResponse(t *testing.T) {
	publisher := newPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	err := publisher.UpdateProduct(context.Background(), 77, &catalog.Entry{Name: "Sword", RemoteID: catalog.Int64(1)})
	assert.ErrorIs(t, err, errors.ErrMissingResult)
}

func TestUpdateWithoutRemoteIDFailsFast(t *testing.T) {
	called := false
	publisher := newPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	err := publisher.UpdateProduct(context.Background(), 77, &catalog.Entry{Name: "Sword"})
	assert.ErrorIs(t, err, errors.ErrNoRemoteID)
	assert.True(t, errors.IsContract(err))

	err = publisher.UpdatePass(context.Background(), &catalog.Entry{Name: "VIP"})
	assert.ErrorIs(t, err, errors.ErrNoRemoteID)

	assert.False(t, called, "contract violations must not reach the network")
}

func TestUpdatePass(t *testing.T) {
	var gotPath string
	var gotForm map[string][]string
	publisher := newPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		_, _ = w.Write([]byte(`{"isValid":true,"data":{},"error":""}`))
	}))

	e := &catalog.Entry{Name: "VIP", Price: catalog.Int64(100), RemoteID: catalog.Int64(123)}
	require.NoError(t, publisher.UpdatePass(context.Background(), e))

	assert.Equal(t, "/game-pass/update", gotPath)
	assert.Equal(t, "123", gotForm["id"][0])
	assert.Equal(t, "VIP", gotForm["name"][0])
	assert.Equal(t, "100", gotForm["price"][0])
	assert.Equal(t, "true", gotForm["isForSale"][0])
}

func TestFetchProduct(t *testing.T) {
	publisher := newPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/developerproducts/4042", r.URL.Path)
		_, _ = w.Write([]byte(`{"name":"Sword of Gold","description":"shiny","priceInRobux":50}`))
	}))

	state, err := publisher.FetchProduct(context.Background(), 4042)
	require.NoError(t, err)
	assert.Equal(t, "Sword of Gold", state.Name)
	assert.Equal(t, "shiny", state.Description)
	assert.Equal(t, int64(50), state.Price)
}

func TestFetchPass(t *testing.T) {
	publisher := newPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/game-passes/v1/game-passes/123/product-info", r.URL.Path)
		_, _ = w.Write([]byte(`{"Name":"VIP","Description":"","PriceInRobux":null}`))
	}))

	state, err := publisher.FetchPass(context.Background(), 123)
	require.NoError(t, err)
	assert.Equal(t, "VIP", state.Name)
	assert.Zero(t, state.Price, "an off-sale pass reads as price 0")
}

func TestCreateProductRecoversFromStaleToken(t *testing.T) {
	attempts := 0
	publisher := newPublisher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if r.Header.Get("X-CSRF-TOKEN") != "fresh" {
			w.Header().Set("X-CSRF-TOKEN", "fresh")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("Token Validation Failed"))
			return
		}
		_, _ = w.Write([]byte(confirmFragment))
	}))

	id, err := publisher.CreateProduct(context.Background(), 77, &catalog.Entry{Name: "Sword"})
	require.NoError(t, err, "a stale token must be recovered transparently")
	assert.Equal(t, int64(4042), id)
	assert.Equal(t, 2, attempts)
}
