package collaborator

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCrackStatus_Success(t *testing.T) {
	var gotPath, gotMethod string
	var body crackStatusRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewCrackClient(srv.URL, time.Second).UpdateCrackStatus(context.Background(), "crack-1", "InFixing")

	assert.Nil(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/cracks/crack-1/status", gotPath)
	assert.Equal(t, "InFixing", body.Status)
}

func TestUpdateCrackStatus_ServerErrorIsDownstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewCrackClient(srv.URL, time.Second).UpdateCrackStatus(context.Background(), "crack-1", "Completed")

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrDownstreamUnavailable, err.Type)
	assert.Equal(t, "crack", err.EntityID)
}

func TestUpdateCrackStatus_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	err := NewCrackClient(srv.URL, 20*time.Millisecond).UpdateCrackStatus(context.Background(), "crack-1", "Completed")

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrDownstreamUnavailable, err.Type)
}

func TestDeductMaterials_SendsIdempotencyKey(t *testing.T) {
	var key string
	var body deductRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get("Idempotency-Key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	materials := []entity.RepairMaterial{{MaterialID: "m-1", Quantity: 3}}
	err := NewMaterialClient(srv.URL, time.Second).DeductMaterials(context.Background(), "insp-1", materials)

	assert.Nil(t, err)
	assert.Equal(t, "insp-1", key)
	assert.Equal(t, "insp-1", body.Reference)
	assert.Equal(t, materials, body.Items)
}

func TestDeductMaterials_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"insufficient stock"}`))
	}))
	defer srv.Close()

	err := NewMaterialClient(srv.URL, time.Second).DeductMaterials(context.Background(), "insp-1", nil)

	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
}
